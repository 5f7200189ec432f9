package marketinghdl

import (
	"fmt"

	basehdl "marketing_content/internal/api/base/handler"
	marketingdto "marketing_content/internal/api/marketing/dto"
	models "marketing_content/internal/api/marketing/models"
	marketingsvc "marketing_content/internal/api/marketing/service"
	"marketing_content/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// StaffHandler xử lý các request quản lý nhân sự.
type StaffHandler struct {
	*basehdl.BaseHandler[models.Staff, marketingdto.StaffCreateInput, marketingdto.StaffUpdateInput]
	StaffService *marketingsvc.StaffService
}

// NewStaffHandler tạo mới StaffHandler
func NewStaffHandler() (*StaffHandler, error) {
	staffService, err := marketingsvc.NewStaffService()
	if err != nil {
		return nil, fmt.Errorf("failed to create staff service: %v", err)
	}
	hdl := &StaffHandler{StaffService: staffService}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.Staff, marketingdto.StaffCreateInput, marketingdto.StaffUpdateInput](staffService)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// DeactivateStaff ngừng hoạt động một nhân sự
func (h *StaffHandler) DeactivateStaff(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params marketingdto.StaffParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		staffID := utility.String2ObjectID(params.ID)
		updated, err := h.StaffService.DeactivateStaff(requestContext(c), staffID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, updated, nil)
		return nil
	})
}

// ActivateStaff mở lại hoạt động cho nhân sự
func (h *StaffHandler) ActivateStaff(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params marketingdto.StaffParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		staffID := utility.String2ObjectID(params.ID)
		updated, err := h.StaffService.ActivateStaff(requestContext(c), staffID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, updated, nil)
		return nil
	})
}
