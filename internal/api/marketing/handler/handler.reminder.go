package marketinghdl

import (
	"fmt"

	basehdl "marketing_content/internal/api/base/handler"
	marketingdto "marketing_content/internal/api/marketing/dto"
	models "marketing_content/internal/api/marketing/models"
	marketingsvc "marketing_content/internal/api/marketing/service"
	"marketing_content/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// ReminderHandler trả về số liệu nhắc việc cho badge dashboard.
// Dùng chung base handler của bước để có SafeHandler/parse/response,
// không mở thêm route CRUD nào.
type ReminderHandler struct {
	*basehdl.BaseHandler[models.PostStep, marketingdto.PostStepCreateInput, marketingdto.PostStepUpdateInput]
	ReminderService *marketingsvc.ReminderService
}

// NewReminderHandler tạo mới ReminderHandler
func NewReminderHandler() (*ReminderHandler, error) {
	reminderService, err := marketingsvc.NewReminderService()
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder service: %v", err)
	}
	postStepService, err := marketingsvc.NewPostStepService()
	if err != nil {
		return nil, fmt.Errorf("failed to create post step service: %v", err)
	}
	hdl := &ReminderHandler{ReminderService: reminderService}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.PostStep, marketingdto.PostStepCreateInput, marketingdto.PostStepUpdateInput](postStepService.BaseServiceMongoImpl)
	return hdl, nil
}

// GetStaffReminders trả về số bước quá hạn / sắp đến hạn của một nhân sự
func (h *ReminderHandler) GetStaffReminders(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params marketingdto.ReminderParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		staffID := utility.String2ObjectID(params.StaffID)
		reminders, err := h.ReminderService.GetStaffReminders(c.Context(), staffID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, reminders, nil)
		return nil
	})
}
