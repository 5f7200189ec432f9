package marketingsvc

import (
	"context"
	"fmt"

	basesvc "marketing_content/internal/api/base/service"
	models "marketing_content/internal/api/marketing/models"
	"marketing_content/internal/common"
	"marketing_content/internal/global"
)

// LinkedAccountService quản lý các tài khoản mạng xã hội đã liên kết
// và mapping designer/approver của từng tài khoản.
type LinkedAccountService struct {
	*basesvc.BaseServiceMongoImpl[models.LinkedAccount]
}

// NewLinkedAccountService tạo LinkedAccountService mới.
func NewLinkedAccountService() (*LinkedAccountService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.LinkedAccounts)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.LinkedAccounts, common.ErrNotFound)
	}
	return &LinkedAccountService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.LinkedAccount](coll),
	}, nil
}

// InsertOne tạo liên kết tài khoản mới, mặc định đang kết nối.
func (s *LinkedAccountService) InsertOne(ctx context.Context, account models.LinkedAccount) (models.LinkedAccount, error) {
	account.IsActive = true
	return s.BaseServiceMongoImpl.InsertOne(ctx, account)
}
