package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Số thứ tự các bước trong quy trình
const (
	StepNumberDrafting = 1 // Soạn nháp nội dung
	StepNumberApproval = 2 // Duyệt nội dung
	StepNumberPosted   = 3 // Đăng bài
)

// Trạng thái của một bước
const (
	StepStatusPending    = "pending"     // Chưa bắt đầu
	StepStatusInProgress = "in_progress" // Đang thực hiện
	StepStatusCompleted  = "completed"   // Đã hoàn thành
)

// StepNameForNumber trả về tên chuẩn của bước theo số thứ tự
func StepNameForNumber(stepNumber int) string {
	switch stepNumber {
	case StepNumberDrafting:
		return "Content Drafting"
	case StepNumberApproval:
		return "Approval"
	case StepNumberPosted:
		return "Content Posted"
	default:
		return ""
	}
}

// PostStep đại diện cho một bước trong quy trình duyệt của một bài đăng.
// Các bước chỉ tồn tại liên tục từ 1: {1}, {1,2} hoặc {1,2,3}.
// Index unique (postId, stepNumber) đảm bảo không bao giờ có hai bước trùng số
// cho cùng một bài: race khi tạo bước được DB biến thành lỗi conflict.
type PostStep struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của bước

	// ===== WORKFLOW POSITION =====
	PostID     primitive.ObjectID `json:"postId" bson:"postId" index:"single:1,compound:post_step_post_number_unique"` // Bài đăng cha
	StepNumber int                `json:"stepNumber" bson:"stepNumber" index:"compound:post_step_post_number_unique"`  // 1 = soạn nháp, 2 = duyệt, 3 = đăng bài
	Name       string             `json:"name" bson:"name"`                                                            // Tên bước (theo stepNumber)

	// ===== ASSIGNMENT =====
	AssignedTo *primitive.ObjectID `json:"assignedTo,omitempty" bson:"assignedTo,omitempty" index:"single:1,sparse"` // Nhân sự được giao (nil = chưa giao)
	DueDate    int64               `json:"dueDate,omitempty" bson:"dueDate,omitempty"`                               // Hạn hoàn thành (UnixMilli, 0 = không có)

	// ===== STATE =====
	Status string `json:"status" bson:"status" index:"single:1"` // pending, in_progress, completed

	// Notes là nhật ký chỉ-ghi-thêm: các thao tác workflow nối dòng vào cuối,
	// không bao giờ thay thế nội dung cũ.
	Notes string `json:"notes,omitempty" bson:"notes,omitempty"`

	// ===== COMPLETION =====
	CompletedAt int64               `json:"completedAt,omitempty" bson:"completedAt,omitempty"` // Thời điểm hoàn thành (0 = chưa)
	CompletedBy *primitive.ObjectID `json:"completedBy,omitempty" bson:"completedBy,omitempty"` // Nhân sự hoàn thành bước

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
