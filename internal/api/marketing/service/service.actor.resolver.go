// Package marketingsvc - Các service cho quy trình duyệt nội dung marketing.
package marketingsvc

import (
	"context"
	"fmt"
	"time"

	basesvc "marketing_content/internal/api/base/service"
	"marketing_content/internal/api/events"
	models "marketing_content/internal/api/marketing/models"
	"marketing_content/internal/common"
	"marketing_content/internal/global"
	"marketing_content/internal/utility"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResolveActor xác định nhân sự chịu trách nhiệm cho vai trò role trên một bài đăng.
//
// Quy tắc: lấy tài khoản liên kết ĐẦU TIÊN trong danh sách (thứ tự chèn là thứ tự
// ưu tiên) và đọc mapping designer/approver cấu hình trên tài khoản đó.
// Khi danh sách rỗng, tài khoản không có trong accounts, hoặc mapping chưa cấu hình:
//   - designer: fallback về người tạo bài (luôn có người đăng được)
//   - approver: trả về nil (bước duyệt chờ được giao tay)
//
// Hàm thuần, không truy cập DB, không bao giờ trả lỗi.
func ResolveActor(post *models.SocialPost, accounts map[primitive.ObjectID]models.LinkedAccount, role string) *primitive.ObjectID {
	var mapped *primitive.ObjectID
	if len(post.LinkedAccountIDs) > 0 {
		if account, ok := accounts[post.LinkedAccountIDs[0]]; ok {
			switch role {
			case models.AccountRoleDesigner:
				mapped = account.DesignerID
			case models.AccountRoleApprover:
				mapped = account.ApproverID
			}
		}
	}
	if mapped != nil {
		return mapped
	}
	if role == models.AccountRoleDesigner {
		createdBy := post.CreatedBy
		return &createdBy
	}
	return nil
}

// ActorResolver nạp tài khoản liên kết từ DB và ủy quyền cho ResolveActor.
// Tài khoản được cache ngắn hạn vì mapping designer/approver ít thay đổi
// so với tần suất chuyển bước.
type ActorResolver struct {
	accounts *basesvc.BaseServiceMongoImpl[models.LinkedAccount]
	cache    *utility.Cache
}

// NewActorResolver tạo ActorResolver mới.
func NewActorResolver() (*ActorResolver, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.LinkedAccounts)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.LinkedAccounts, common.ErrNotFound)
	}
	r := &ActorResolver{
		accounts: basesvc.NewBaseServiceMongo[models.LinkedAccount](coll),
		cache:    utility.NewCache(30*time.Second, time.Minute),
	}
	// Cập nhật/xóa tài khoản liên kết phải xóa bản cache ngay, không chờ hết TTL
	events.OnDataChanged(func(_ context.Context, e events.DataChangeEvent) {
		if e.CollectionName != global.MongoDB_ColNames.LinkedAccounts {
			return
		}
		if id := events.GetDocumentID(e.Document); !id.IsZero() {
			r.cache.Delete("linked_account:" + id.Hex())
		}
	})
	return r, nil
}

// Resolve phân giải nhân sự cho role trên bài đăng, nạp tài khoản đầu tiên từ DB.
// Tài khoản không tồn tại hoặc lỗi đọc được coi là "không phân giải được" và
// rơi về fallback của ResolveActor, không chặn luồng chuyển bước.
func (r *ActorResolver) Resolve(ctx context.Context, post *models.SocialPost) (designer, approver *primitive.ObjectID) {
	accounts := r.loadFirstAccount(ctx, post)
	return ResolveActor(post, accounts, models.AccountRoleDesigner),
		ResolveActor(post, accounts, models.AccountRoleApprover)
}

// ResolveRole phân giải một vai trò duy nhất.
func (r *ActorResolver) ResolveRole(ctx context.Context, post *models.SocialPost, role string) *primitive.ObjectID {
	return ResolveActor(post, r.loadFirstAccount(ctx, post), role)
}

func (r *ActorResolver) loadFirstAccount(ctx context.Context, post *models.SocialPost) map[primitive.ObjectID]models.LinkedAccount {
	accounts := make(map[primitive.ObjectID]models.LinkedAccount)
	if len(post.LinkedAccountIDs) == 0 {
		return accounts
	}
	firstID := post.LinkedAccountIDs[0]
	cacheKey := "linked_account:" + firstID.Hex()
	if cached, ok := r.cache.Get(cacheKey); ok {
		if account, ok := cached.(models.LinkedAccount); ok {
			accounts[firstID] = account
			return accounts
		}
	}
	account, err := r.accounts.FindOneById(ctx, firstID)
	if err != nil {
		return accounts
	}
	r.cache.Set(cacheKey, account)
	accounts[firstID] = account
	return accounts
}
