package marketingdto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SocialPostCreateInput dữ liệu đầu vào khi tạo bài đăng mới.
// Bài luôn được tạo ở trạng thái draft với bước 1 (soạn nháp) tự sinh;
// người tạo lấy từ actor context, không nhận từ body.
type SocialPostCreateInput struct {
	Title            string               `json:"title" validate:"required"`
	Body             string               `json:"body,omitempty"`
	DesignLink       string               `json:"designLink,omitempty" validate:"omitempty,url"`
	ScheduledDate    int64                `json:"scheduledDate,omitempty"`
	LinkedAccountIDs []primitive.ObjectID `json:"linkedAccountIds,omitempty"` // Thứ tự có ý nghĩa cho phân giải vai trò
}

// SocialPostUpdateInput dữ liệu đầu vào khi cập nhật bài đăng (generic CRUD).
// Sửa nội dung nháp đi qua endpoint draft riêng (có guard trạng thái + tăng version).
type SocialPostUpdateInput struct {
	Title            string               `json:"title,omitempty"`
	Body             string               `json:"body,omitempty"`
	DesignLink       string               `json:"designLink,omitempty" validate:"omitempty,url"`
	ScheduledDate    int64                `json:"scheduledDate,omitempty"`
	LinkedAccountIDs []primitive.ObjectID `json:"linkedAccountIds,omitempty"`
}

// EditDraftInput dữ liệu đầu vào khi sửa nội dung nháp (partial).
// Con trỏ phân biệt "không gửi field" với "gửi giá trị rỗng/0".
type EditDraftInput struct {
	Title            *string               `json:"title,omitempty"`
	Body             *string               `json:"body,omitempty"`
	DesignLink       *string               `json:"designLink,omitempty"`
	ScheduledDate    *int64                `json:"scheduledDate,omitempty"`
	LinkedAccountIDs *[]primitive.ObjectID `json:"linkedAccountIds,omitempty"`
}

// SocialPostParams params từ URL cho các thao tác trên một bài đăng
type SocialPostParams struct {
	ID string `uri:"id" validate:"required" transform:"str_objectid"`
}
