package marketinghdl

import (
	"fmt"

	basehdl "marketing_content/internal/api/base/handler"
	marketingdto "marketing_content/internal/api/marketing/dto"
	models "marketing_content/internal/api/marketing/models"
	marketingsvc "marketing_content/internal/api/marketing/service"
	"marketing_content/internal/logger"
	"marketing_content/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// PostStepHandler xử lý các request chuyển bước quy trình duyệt bài.
type PostStepHandler struct {
	*basehdl.BaseHandler[models.PostStep, marketingdto.PostStepCreateInput, marketingdto.PostStepUpdateInput]
	PostStepService *marketingsvc.PostStepService
}

// NewPostStepHandler tạo mới PostStepHandler
func NewPostStepHandler() (*PostStepHandler, error) {
	postStepService, err := marketingsvc.NewPostStepService()
	if err != nil {
		return nil, fmt.Errorf("failed to create post step service: %v", err)
	}
	hdl := &PostStepHandler{PostStepService: postStepService}
	hdl.BaseHandler = basehdl.NewBaseHandler[models.PostStep, marketingdto.PostStepCreateInput, marketingdto.PostStepUpdateInput](postStepService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// CompleteStep hoàn thành bước soạn nháp hoặc bước đăng bài
func (h *PostStepHandler) CompleteStep(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params marketingdto.PostStepParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		// Body tùy chọn: ghi chú nối thêm vào nhật ký bước
		var input marketingdto.CompleteStepInput
		_ = h.ParseRequestBody(c, &input)
		stepID := utility.String2ObjectID(params.ID)
		post, err := h.PostStepService.CompleteStep(requestContext(c), stepID, input.Notes)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogWorkflow("step_complete", params.ID, c, map[string]interface{}{
			"post_id":     post.ID.Hex(),
			"post_status": post.Status,
		})
		h.HandleResponse(c, post, nil)
		return nil
	})
}

// ApproveStep duyệt bước Approval, mở bước đăng bài
func (h *PostStepHandler) ApproveStep(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params marketingdto.PostStepParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input marketingdto.ApproveStepInput
		_ = h.ParseRequestBody(c, &input)
		stepID := utility.String2ObjectID(params.ID)
		post, err := h.PostStepService.ApproveStep(requestContext(c), stepID, input.Notes)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogWorkflow("step_approve", params.ID, c, map[string]interface{}{
			"post_id":     post.ID.Hex(),
			"post_status": post.Status,
		})
		h.HandleResponse(c, post, nil)
		return nil
	})
}

// DisapproveStep từ chối bước Approval, rollback bài về soạn nháp
func (h *PostStepHandler) DisapproveStep(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params marketingdto.PostStepParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input marketingdto.DisapproveStepInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		stepID := utility.String2ObjectID(params.ID)
		post, err := h.PostStepService.DisapproveStep(requestContext(c), stepID, input.Reason)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogWorkflow("step_disapprove", params.ID, c, map[string]interface{}{
			"post_id":     post.ID.Hex(),
			"post_status": post.Status,
			"reason":      input.Reason,
		})
		h.HandleResponse(c, post, nil)
		return nil
	})
}

// UpdateAssignment cập nhật giao việc (người nhận, hạn, ghi chú, trạng thái) của bước
func (h *PostStepHandler) UpdateAssignment(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params marketingdto.PostStepParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input marketingdto.StepAssignmentInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		stepID := utility.String2ObjectID(params.ID)
		step, err := h.PostStepService.UpdateStepAssignment(requestContext(c), stepID, &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, step, nil)
		return nil
	})
}
