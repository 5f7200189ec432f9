// Package marketingsvc - Test phân loại nhắc việc theo hạn (quá hạn / sắp đến hạn).
package marketingsvc

import (
	"testing"
	"time"

	models "marketing_content/internal/api/marketing/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stepDueAt tạo một bước đã giao cho actor với hạn tại thời điểm cho trước.
func stepDueAt(actorID primitive.ObjectID, due time.Time, status string) models.PostStep {
	return models.PostStep{
		AssignedTo: &actorID,
		DueDate:    due.UnixMilli(),
		Status:     status,
	}
}

func TestCountReminders_PhanLoaiTheoHan(t *testing.T) {
	actorID := primitive.NewObjectID()
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	steps := []models.PostStep{
		stepDueAt(actorID, now.AddDate(0, 0, -1), models.StepStatusInProgress), // hôm qua → quá hạn
		stepDueAt(actorID, now.AddDate(0, 0, 3), models.StepStatusPending),     // 3 ngày nữa → sắp đến hạn
		stepDueAt(actorID, now.AddDate(0, 0, 10), models.StepStatusPending),    // 10 ngày nữa → ngoài cửa sổ
	}

	counts := CountReminders(actorID, steps, now)
	assert.Equal(t, 1, counts.PastDue, "chỉ bước hạn hôm qua là quá hạn")
	assert.Equal(t, 1, counts.Upcoming, "chỉ bước hạn 3 ngày nữa là sắp đến hạn")
}

func TestCountReminders_HanHomNayLaSapDenHan(t *testing.T) {
	actorID := primitive.NewObjectID()
	now := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)

	// Hạn vào đầu ngày hôm nay: không quá hạn, tính là sắp đến hạn
	steps := []models.PostStep{
		stepDueAt(actorID, time.Date(2025, 6, 15, 0, 0, 1, 0, time.UTC), models.StepStatusInProgress),
	}

	counts := CountReminders(actorID, steps, now)
	assert.Equal(t, 0, counts.PastDue, "hạn hôm nay không được tính quá hạn")
	assert.Equal(t, 1, counts.Upcoming, "hạn hôm nay phải tính sắp đến hạn")
}

func TestCountReminders_BienDung7Ngay(t *testing.T) {
	actorID := primitive.NewObjectID()
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

	steps := []models.PostStep{
		stepDueAt(actorID, now.AddDate(0, 0, 7), models.StepStatusPending), // đúng 7 ngày → vẫn trong cửa sổ
		stepDueAt(actorID, now.AddDate(0, 0, 8), models.StepStatusPending), // 8 ngày → ngoài
	}

	counts := CountReminders(actorID, steps, now)
	assert.Equal(t, 1, counts.Upcoming, "đúng 7 ngày phải nằm trong cửa sổ sắp đến hạn")
}

func TestCountReminders_BoQuaBuocKhongDuDieuKien(t *testing.T) {
	actorID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	steps := []models.PostStep{
		stepDueAt(actorID, yesterday, models.StepStatusCompleted),            // đã hoàn thành → bỏ qua
		stepDueAt(otherID, yesterday, models.StepStatusInProgress),           // giao cho người khác → bỏ qua
		{AssignedTo: &actorID, DueDate: 0, Status: models.StepStatusPending}, // không có hạn → bỏ qua
		{AssignedTo: nil, DueDate: yesterday.UnixMilli(), Status: models.StepStatusPending}, // chưa giao → bỏ qua
	}

	counts := CountReminders(actorID, steps, now)
	assert.Equal(t, 0, counts.PastDue, "các bước không đủ điều kiện phải bị bỏ qua")
	assert.Equal(t, 0, counts.Upcoming, "các bước không đủ điều kiện phải bị bỏ qua")
}
