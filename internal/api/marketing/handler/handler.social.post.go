// Package marketinghdl - Các handler HTTP cho quy trình duyệt nội dung marketing.
package marketinghdl

import (
	"context"
	"fmt"

	basehdl "marketing_content/internal/api/base/handler"
	marketingdto "marketing_content/internal/api/marketing/dto"
	models "marketing_content/internal/api/marketing/models"
	marketingsvc "marketing_content/internal/api/marketing/service"
	"marketing_content/internal/common"
	"marketing_content/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// requestContext lấy context của request kèm userID của nhân sự đang thao tác
// (đã được ActorContextMiddleware đặt vào Locals) để service ghi completedBy/createdBy.
func requestContext(c fiber.Ctx) context.Context {
	ctx := c.Context()
	if userIDStr, ok := c.Locals("user_id").(string); ok && userIDStr != "" {
		if userID, err := primitive.ObjectIDFromHex(userIDStr); err == nil {
			ctx = common.SetUserIDToContext(ctx, userID)
		}
	}
	return ctx
}

// SocialPostHandler xử lý các request liên quan đến bài đăng mạng xã hội.
type SocialPostHandler struct {
	*basehdl.BaseHandler[models.SocialPost, marketingdto.SocialPostCreateInput, marketingdto.SocialPostUpdateInput]
	SocialPostService *marketingsvc.SocialPostService
}

// NewSocialPostHandler tạo mới SocialPostHandler
func NewSocialPostHandler() (*SocialPostHandler, error) {
	socialPostService, err := marketingsvc.NewSocialPostService()
	if err != nil {
		return nil, fmt.Errorf("failed to create social post service: %v", err)
	}
	hdl := &SocialPostHandler{SocialPostService: socialPostService}
	// Truyền service (không phải base impl) để route insert-one đi qua
	// override InsertOne: tạo bài luôn kèm bước 1
	hdl.BaseHandler = basehdl.NewBaseHandler[models.SocialPost, marketingdto.SocialPostCreateInput, marketingdto.SocialPostUpdateInput](socialPostService)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// EditDraft sửa nội dung nháp của bài đăng (tăng version)
func (h *SocialPostHandler) EditDraft(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params marketingdto.SocialPostParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input marketingdto.EditDraftInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		postID := utility.String2ObjectID(params.ID)
		updated, err := h.SocialPostService.EditDraft(requestContext(c), postID, &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, updated, nil)
		return nil
	})
}

// DuplicatePost nhân bản bài đăng thành nháp mới
func (h *SocialPostHandler) DuplicatePost(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params marketingdto.SocialPostParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		postID := utility.String2ObjectID(params.ID)
		created, err := h.SocialPostService.DuplicatePost(requestContext(c), postID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, created, nil)
		return nil
	})
}

// CancelPost hủy bài đăng chưa lên sóng
func (h *SocialPostHandler) CancelPost(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params marketingdto.SocialPostParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		postID := utility.String2ObjectID(params.ID)
		updated, err := h.SocialPostService.CancelPost(requestContext(c), postID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, updated, nil)
		return nil
	})
}

// GetPostSteps trả về các bước quy trình của bài đăng theo thứ tự
func (h *SocialPostHandler) GetPostSteps(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var params marketingdto.SocialPostParams
		if err := h.ParseRequestParams(c, &params); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		postID := utility.String2ObjectID(params.ID)
		steps, err := h.SocialPostService.GetPostSteps(c.Context(), postID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, steps, nil)
		return nil
	})
}
