package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff đại diện cho một nhân sự marketing trong hệ thống.
// Nhân sự được tham chiếu bởi assignedTo/completedBy của bước và createdBy của bài,
// và bởi mapping designer/approver trên tài khoản liên kết.
type Staff struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của nhân sự

	Name  string `json:"name" bson:"name"`                        // Tên hiển thị
	Email string `json:"email" bson:"email" index:"unique"`       // Email liên hệ (duy nhất)
	Title string `json:"title,omitempty" bson:"title,omitempty"`  // Chức danh (tùy chọn)

	IsActive bool `json:"isActive" bson:"isActive" index:"single:1"` // Nhân sự còn hoạt động không

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
