package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketing_content/internal/common"
	"marketing_content/internal/global"
)

// ActorContextMiddleware middleware xác định nhân sự đang thao tác.
// - Đọc X-Actor-ID (staff ID) từ header
// - Validate staff tồn tại và đang active trong collection marketing_staffs
// - Lưu user_id vào context để các handler/service phía sau sử dụng (completedBy, createdBy, ...)
// Route chỉ đọc không bắt buộc header này; route ghi sẽ tự kiểm tra user_id khi cần.
func ActorContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		actorIDStr := c.Get("X-Actor-ID")
		if actorIDStr == "" {
			// Không có header, cho phép tiếp tục nhưng không set actor context
			return c.Next()
		}

		actorID, err := primitive.ObjectIDFromHex(actorIDStr)
		if err != nil {
			// Actor ID không hợp lệ
			return c.Next()
		}

		// Kiểm tra staff tồn tại
		collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Staffs)
		if !exist {
			return c.Next()
		}

		count, err := collection.CountDocuments(context.Background(), bson.M{"_id": actorID, "isActive": true})
		if err != nil || count == 0 {
			return c.Next()
		}

		// Lưu vào context
		c.Locals("user_id", actorID.Hex())

		return c.Next()
	}
}

// RequireActorMiddleware middleware bắt buộc có actor context (dùng cho các thao tác workflow).
// Phải đăng ký SAU ActorContextMiddleware.
func RequireActorMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		userIDStr, ok := c.Locals("user_id").(string)
		if !ok || userIDStr == "" {
			HandleErrorResponse(c, common.NewError(common.ErrCodeValidationInput, common.MsgUnauthorized, common.StatusUnauthorized, nil))
			return nil
		}
		return c.Next()
	}
}
