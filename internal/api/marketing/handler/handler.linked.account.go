package marketinghdl

import (
	"fmt"

	basehdl "marketing_content/internal/api/base/handler"
	marketingdto "marketing_content/internal/api/marketing/dto"
	models "marketing_content/internal/api/marketing/models"
	marketingsvc "marketing_content/internal/api/marketing/service"
)

// LinkedAccountHandler xử lý các request quản lý tài khoản liên kết.
// Toàn bộ thao tác là CRUD chuẩn từ BaseHandler, mapping designer/approver
// cập nhật qua update-by-id thông thường.
type LinkedAccountHandler struct {
	*basehdl.BaseHandler[models.LinkedAccount, marketingdto.LinkedAccountCreateInput, marketingdto.LinkedAccountUpdateInput]
	LinkedAccountService *marketingsvc.LinkedAccountService
}

// NewLinkedAccountHandler tạo mới LinkedAccountHandler
func NewLinkedAccountHandler() (*LinkedAccountHandler, error) {
	linkedAccountService, err := marketingsvc.NewLinkedAccountService()
	if err != nil {
		return nil, fmt.Errorf("failed to create linked account service: %v", err)
	}
	hdl := &LinkedAccountHandler{LinkedAccountService: linkedAccountService}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.LinkedAccount, marketingdto.LinkedAccountCreateInput, marketingdto.LinkedAccountUpdateInput](linkedAccountService)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}
