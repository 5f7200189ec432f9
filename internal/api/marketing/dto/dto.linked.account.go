package marketingdto

// LinkedAccountCreateInput dữ liệu đầu vào khi kết nối tài khoản mạng xã hội
type LinkedAccountCreateInput struct {
	Platform   string `json:"platform" validate:"required,oneof=facebook instagram"`
	Name       string `json:"name" validate:"required"`
	ExternalID string `json:"externalId" validate:"required"`
	DesignerID string `json:"designerId,omitempty" transform:"str_objectid_ptr,optional"`
	ApproverID string `json:"approverId,omitempty" transform:"str_objectid_ptr,optional"`
}

// LinkedAccountUpdateInput dữ liệu đầu vào khi cập nhật tài khoản liên kết
type LinkedAccountUpdateInput struct {
	Name       string `json:"name,omitempty"`
	DesignerID string `json:"designerId,omitempty" transform:"str_objectid_ptr,optional"`
	ApproverID string `json:"approverId,omitempty" transform:"str_objectid_ptr,optional"`
}
