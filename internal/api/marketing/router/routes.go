// Package router đăng ký các route thuộc domain Marketing: bài đăng, bước quy trình,
// nhân sự, tài khoản liên kết và nhắc việc.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	marketinghdl "marketing_content/internal/api/marketing/handler"
	"marketing_content/internal/api/middleware"
	apirouter "marketing_content/internal/api/router"
)

// Register đăng ký tất cả route của quy trình duyệt nội dung lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	actorMiddleware := middleware.ActorContextMiddleware()
	requireActorMiddleware := middleware.RequireActorMiddleware()
	workflowMiddlewares := []fiber.Handler{actorMiddleware, requireActorMiddleware}
	readMiddlewares := []fiber.Handler{actorMiddleware}

	// Bài đăng: đọc + tạo mới qua insert-one (đi qua override InsertOne để luôn có
	// bước 1); sửa nội dung chỉ qua /:id/draft, đổi trạng thái chỉ qua các thao tác
	// vòng đời. Update/delete generic bị tắt vì chúng đi vòng qua guard của quy trình.
	socialPostHandler, err := marketinghdl.NewSocialPostHandler()
	if err != nil {
		return fmt.Errorf("create social post handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/marketing/posts", socialPostHandler, apirouter.ReadInsertConfig)
	apirouter.RegisterRouteWithMiddleware(v1, "/marketing/posts", "PUT", "/:id/draft", workflowMiddlewares, socialPostHandler.EditDraft)
	apirouter.RegisterRouteWithMiddleware(v1, "/marketing/posts", "POST", "/:id/duplicate", workflowMiddlewares, socialPostHandler.DuplicatePost)
	apirouter.RegisterRouteWithMiddleware(v1, "/marketing/posts", "POST", "/:id/cancel", workflowMiddlewares, socialPostHandler.CancelPost)
	apirouter.RegisterRouteWithMiddleware(v1, "/marketing/posts", "GET", "/:id/steps", readMiddlewares, socialPostHandler.GetPostSteps)

	// Bước quy trình: chỉ đọc qua CRUD, mọi thay đổi đi qua thao tác chuyển bước
	postStepHandler, err := marketinghdl.NewPostStepHandler()
	if err != nil {
		return fmt.Errorf("create post step handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/marketing/steps", postStepHandler, apirouter.ReadOnlyConfig)
	apirouter.RegisterRouteWithMiddleware(v1, "/marketing/steps", "POST", "/:id/complete", workflowMiddlewares, postStepHandler.CompleteStep)
	apirouter.RegisterRouteWithMiddleware(v1, "/marketing/steps", "POST", "/:id/approve", workflowMiddlewares, postStepHandler.ApproveStep)
	apirouter.RegisterRouteWithMiddleware(v1, "/marketing/steps", "POST", "/:id/disapprove", workflowMiddlewares, postStepHandler.DisapproveStep)
	apirouter.RegisterRouteWithMiddleware(v1, "/marketing/steps", "PUT", "/:id/assignment", workflowMiddlewares, postStepHandler.UpdateAssignment)

	// Nhân sự
	staffHandler, err := marketinghdl.NewStaffHandler()
	if err != nil {
		return fmt.Errorf("create staff handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/marketing/staffs", staffHandler, apirouter.ReadWriteConfig)
	apirouter.RegisterRouteWithMiddleware(v1, "/marketing/staffs", "POST", "/:id/deactivate", workflowMiddlewares, staffHandler.DeactivateStaff)
	apirouter.RegisterRouteWithMiddleware(v1, "/marketing/staffs", "POST", "/:id/activate", workflowMiddlewares, staffHandler.ActivateStaff)

	// Tài khoản liên kết
	linkedAccountHandler, err := marketinghdl.NewLinkedAccountHandler()
	if err != nil {
		return fmt.Errorf("create linked account handler: %w", err)
	}
	r.RegisterCRUDRoutes(v1, "/marketing/accounts", linkedAccountHandler, apirouter.ReadWriteConfig)

	// Nhắc việc cho dashboard
	reminderHandler, err := marketinghdl.NewReminderHandler()
	if err != nil {
		return fmt.Errorf("create reminder handler: %w", err)
	}
	apirouter.RegisterRouteWithMiddleware(v1, "/marketing/reminders", "GET", "/:staffId", readMiddlewares, reminderHandler.GetStaffReminders)

	return nil
}
