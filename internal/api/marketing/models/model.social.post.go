package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của bài đăng trong quy trình duyệt nội dung
const (
	PostStatusDraft      = "draft"       // Đang soạn nháp, được phép sửa
	PostStatusInApproval = "in_approval" // Đã gửi duyệt, khóa sửa nháp
	PostStatusApproved   = "approved"    // Đã duyệt, chờ đăng
	PostStatusPosted     = "posted"      // Đã đăng (trạng thái cuối)
	PostStatusCancelled  = "cancelled"   // Đã hủy (trạng thái cuối)
)

// SocialPost đại diện cho một bài đăng mạng xã hội đi qua quy trình duyệt 3 bước:
// soạn nháp (1) → duyệt (2) → đăng bài (3).
// CurrentStep luôn bằng stepNumber cao nhất đang tồn tại của bài.
type SocialPost struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của bài đăng

	// ===== CONTENT =====
	Title      string `json:"title" bson:"title"`                               // Tiêu đề bài đăng
	Body       string `json:"body,omitempty" bson:"body,omitempty"`             // Nội dung/caption
	DesignLink string `json:"designLink,omitempty" bson:"designLink,omitempty"` // Link tới file thiết kế (tùy chọn)

	// ===== SCHEDULING =====
	ScheduledDate int64 `json:"scheduledDate,omitempty" bson:"scheduledDate,omitempty"` // Lịch đăng dự kiến (UnixMilli, 0 = chưa lên lịch)

	// ===== WORKFLOW STATE =====
	CurrentStep  int    `json:"currentStep" bson:"currentStep"`        // Bước hiện tại (1..3), bằng stepNumber cao nhất
	Version      int    `json:"version" bson:"version"`                // Số phiên bản nháp, bắt đầu từ 1, tăng mỗi lần sửa
	Status       string `json:"status" bson:"status" index:"single:1"` // draft, in_approval, approved, posted, cancelled
	LastEditedAt int64  `json:"lastEditedAt" bson:"lastEditedAt"`      // Lần sửa nháp gần nhất (UnixMilli)

	// ===== LINKED ACCOUNTS =====
	// Danh sách tài khoản liên kết, CÓ THỨ TỰ: thứ tự quyết định kết quả phân giải
	// người duyệt/người thiết kế cho bài đăng.
	LinkedAccountIDs []primitive.ObjectID `json:"linkedAccountIds,omitempty" bson:"linkedAccountIds,omitempty"`

	// ===== OWNERSHIP =====
	CreatedBy primitive.ObjectID `json:"createdBy" bson:"createdBy" index:"single:1"` // Nhân sự tạo bài

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
