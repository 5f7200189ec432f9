// Package marketingsvc - Test quy tắc phân giải nhân sự từ tài khoản liên kết.
package marketingsvc

import (
	"testing"

	models "marketing_content/internal/api/marketing/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveActor_LayMappingTuTaiKhoanDauTien(t *testing.T) {
	designerID := primitive.NewObjectID()
	approverID := primitive.NewObjectID()
	accountID := primitive.NewObjectID()

	post := &models.SocialPost{
		CreatedBy:        primitive.NewObjectID(),
		LinkedAccountIDs: []primitive.ObjectID{accountID},
	}
	accounts := map[primitive.ObjectID]models.LinkedAccount{
		accountID: {ID: accountID, DesignerID: &designerID, ApproverID: &approverID},
	}

	got := ResolveActor(post, accounts, models.AccountRoleDesigner)
	if got == nil || *got != designerID {
		t.Errorf("designer phải lấy từ mapping tài khoản, got %v", got)
	}
	got = ResolveActor(post, accounts, models.AccountRoleApprover)
	if got == nil || *got != approverID {
		t.Errorf("approver phải lấy từ mapping tài khoản, got %v", got)
	}
}

func TestResolveActor_ChiXetTaiKhoanDauTien(t *testing.T) {
	approverID := primitive.NewObjectID()
	firstID := primitive.NewObjectID()
	secondID := primitive.NewObjectID()

	// Tài khoản đầu không có mapping approver, tài khoản thứ hai có.
	// Chỉ tài khoản đầu được xét → approver không phân giải được.
	post := &models.SocialPost{
		CreatedBy:        primitive.NewObjectID(),
		LinkedAccountIDs: []primitive.ObjectID{firstID, secondID},
	}
	accounts := map[primitive.ObjectID]models.LinkedAccount{
		firstID:  {ID: firstID},
		secondID: {ID: secondID, ApproverID: &approverID},
	}

	if got := ResolveActor(post, accounts, models.AccountRoleApprover); got != nil {
		t.Errorf("mapping của tài khoản thứ hai không được dùng, got %v", got)
	}
}

func TestResolveActor_FallbackDesignerVeNguoiTao(t *testing.T) {
	creatorID := primitive.NewObjectID()
	post := &models.SocialPost{CreatedBy: creatorID}

	got := ResolveActor(post, map[primitive.ObjectID]models.LinkedAccount{}, models.AccountRoleDesigner)
	if got == nil || *got != creatorID {
		t.Errorf("designer không phân giải được phải fallback về người tạo bài, got %v", got)
	}
}

func TestResolveActor_FallbackApproverLaNil(t *testing.T) {
	post := &models.SocialPost{CreatedBy: primitive.NewObjectID()}

	if got := ResolveActor(post, map[primitive.ObjectID]models.LinkedAccount{}, models.AccountRoleApprover); got != nil {
		t.Errorf("approver không phân giải được phải là nil (chờ giao tay), got %v", got)
	}
}

func TestResolveActor_TaiKhoanKhongTonTai(t *testing.T) {
	creatorID := primitive.NewObjectID()
	post := &models.SocialPost{
		CreatedBy:        creatorID,
		LinkedAccountIDs: []primitive.ObjectID{primitive.NewObjectID()},
	}

	// Tài khoản đầu không nạp được (đã xóa / lỗi đọc) → fallback như danh sách rỗng
	got := ResolveActor(post, map[primitive.ObjectID]models.LinkedAccount{}, models.AccountRoleDesigner)
	if got == nil || *got != creatorID {
		t.Errorf("tài khoản không tồn tại phải fallback về người tạo bài, got %v", got)
	}
}
