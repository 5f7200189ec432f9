package marketingdto

// StaffCreateInput dữ liệu đầu vào khi thêm nhân sự.
// Nhân sự mới luôn ở trạng thái hoạt động; ngưng hoạt động qua endpoint deactivate.
type StaffCreateInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Title string `json:"title,omitempty"`
}

// StaffUpdateInput dữ liệu đầu vào khi cập nhật nhân sự
type StaffUpdateInput struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Title string `json:"title,omitempty"`
}

// StaffParams params từ URL cho các thao tác trên một nhân sự
type StaffParams struct {
	ID string `uri:"id" validate:"required" transform:"str_objectid"`
}
