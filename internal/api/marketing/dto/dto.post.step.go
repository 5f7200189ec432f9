package marketingdto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostStepCreateInput dữ liệu đầu vào khi tạo bước (chỉ dùng nội bộ/seed;
// bước của workflow được service tự sinh, surface HTTP của steps là read-only).
type PostStepCreateInput struct {
	PostID     string `json:"postId" validate:"required" transform:"str_objectid"`
	StepNumber int    `json:"stepNumber" validate:"required,min=1,max=3"`
	AssignedTo string `json:"assignedTo,omitempty" transform:"str_objectid_ptr,optional"`
	DueDate    int64  `json:"dueDate,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// PostStepUpdateInput dữ liệu đầu vào khi cập nhật bước (giữ cho base handler đủ type).
type PostStepUpdateInput struct {
	Notes string `json:"notes,omitempty"`
}

// PostStepParams params từ URL cho các thao tác trên một bước
type PostStepParams struct {
	ID string `uri:"id" validate:"required" transform:"str_objectid"`
}

// CompleteStepInput dữ liệu đầu vào khi hoàn thành bước (body rỗng hợp lệ)
type CompleteStepInput struct {
	Notes string `json:"notes,omitempty"` // Ghi chú nối thêm vào nhật ký bước trước khi hoàn thành
}

// ApproveStepInput dữ liệu đầu vào khi duyệt bước approval (body rỗng hợp lệ)
type ApproveStepInput struct {
	Notes string `json:"notes,omitempty"`
}

// DisapproveStepInput dữ liệu đầu vào khi từ chối duyệt. Lý do là bắt buộc:
// dòng "✗ Disapproved: {reason}" được nối vào nhật ký bước soạn nháp.
type DisapproveStepInput struct {
	Reason string `json:"reason" validate:"required"`
}

// StepAssignmentInput dữ liệu đầu vào khi cập nhật phân công của một bước (partial).
// Con trỏ phân biệt "không gửi field" với "gửi giá trị rỗng".
// Notes gửi lên được NỐI THÊM vào nhật ký, không thay thế.
// Status không nhận completed: hoàn thành chỉ đi qua thao tác hoàn thành/duyệt.
type StepAssignmentInput struct {
	AssignedTo *primitive.ObjectID `json:"assignedTo,omitempty"`
	DueDate    *int64              `json:"dueDate,omitempty"`
	Status     *string             `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress"`
	Notes      *string             `json:"notes,omitempty"`
}

// ReminderParams params từ URL khi đếm nhắc việc của một nhân sự
type ReminderParams struct {
	StaffID string `uri:"staffId" validate:"required" transform:"str_objectid"`
}
