package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vai trò phân giải trên tài khoản liên kết
const (
	AccountRoleDesigner = "designer" // Người thiết kế/đăng bài
	AccountRoleApprover = "approver" // Người duyệt nội dung
)

// LinkedAccount đại diện cho một tài khoản mạng xã hội đã kết nối (page/profile).
// Mỗi tài khoản mang mapping vai trò riêng (designerId và approverId), là nguồn dữ
// liệu cho việc phân giải người thực hiện các bước workflow.
type LinkedAccount struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của tài khoản liên kết

	// ===== PLATFORM =====
	Platform   string `json:"platform" bson:"platform" index:"single:1"` // facebook, instagram
	Name       string `json:"name" bson:"name"`                          // Tên page/profile
	ExternalID string `json:"externalId" bson:"externalId"`              // ID trên platform

	// ===== ROLE MAPPINGS =====
	DesignerID *primitive.ObjectID `json:"designerId,omitempty" bson:"designerId,omitempty"` // Nhân sự thiết kế/đăng bài cho tài khoản này
	ApproverID *primitive.ObjectID `json:"approverId,omitempty" bson:"approverId,omitempty"` // Nhân sự duyệt nội dung cho tài khoản này

	IsActive bool `json:"isActive" bson:"isActive"` // Tài khoản còn kết nối không

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
