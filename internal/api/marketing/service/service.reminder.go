package marketingsvc

import (
	"context"
	"fmt"
	"time"

	basesvc "marketing_content/internal/api/base/service"
	models "marketing_content/internal/api/marketing/models"
	"marketing_content/internal/common"
	"marketing_content/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// ReminderCounts là số liệu nhắc việc của một nhân sự, dùng cho badge dashboard.
type ReminderCounts struct {
	PastDue  int `json:"pastDue"`  // Số bước đã quá hạn
	Upcoming int `json:"upcoming"` // Số bước đến hạn trong 7 ngày tới (tính cả hôm nay)
}

// CountReminders đếm nhắc việc của actorID trên một tập bước bất kỳ.
//
// Chỉ xét bước được giao cho actorID, chưa hoàn thành và có hạn (dueDate != 0).
// So sánh theo NGÀY, bỏ phần giờ: hạn trước hôm nay là quá hạn; từ hôm nay đến
// hết 7 ngày sau (bao cả hai đầu) là sắp đến hạn; xa hơn không tính.
// Hàm thuần, múi giờ lấy theo now để kết quả ổn định khi test.
func CountReminders(actorID primitive.ObjectID, steps []models.PostStep, now time.Time) ReminderCounts {
	today := startOfDay(now)
	horizon := today.AddDate(0, 0, 7)

	var counts ReminderCounts
	for _, step := range steps {
		if step.AssignedTo == nil || *step.AssignedTo != actorID {
			continue
		}
		if step.Status == models.StepStatusCompleted {
			continue
		}
		if step.DueDate == 0 {
			continue
		}
		due := startOfDay(time.UnixMilli(step.DueDate).In(now.Location()))
		switch {
		case due.Before(today):
			counts.PastDue++
		case !due.After(horizon):
			counts.Upcoming++
		}
	}
	return counts
}

// startOfDay cắt thời điểm về 0h cùng ngày, giữ nguyên location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StaffReminders là kết quả nhắc việc trả về cho một nhân sự:
// số liệu đếm kèm danh sách bước đang mở có hạn, sắp theo hạn gần nhất trước.
type StaffReminders struct {
	StaffID  primitive.ObjectID `json:"staffId"`
	PastDue  int                `json:"pastDue"`
	Upcoming int                `json:"upcoming"`
	Steps    []models.PostStep  `json:"steps"`
}

// ReminderService đọc các bước đang mở từ DB và tính số liệu nhắc việc.
type ReminderService struct {
	steps *basesvc.BaseServiceMongoImpl[models.PostStep]
}

// NewReminderService tạo ReminderService mới.
func NewReminderService() (*ReminderService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.PostSteps)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.PostSteps, common.ErrNotFound)
	}
	return &ReminderService{
		steps: basesvc.NewBaseServiceMongo[models.PostStep](coll),
	}, nil
}

// GetStaffReminders trả về nhắc việc của một nhân sự.
func (s *ReminderService) GetStaffReminders(ctx context.Context, staffID primitive.ObjectID) (*StaffReminders, error) {
	filter := bson.M{
		"assignedTo": staffID,
		"status":     bson.M{"$ne": models.StepStatusCompleted},
		"dueDate":    bson.M{"$gt": 0},
	}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}})
	steps, err := s.steps.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	counts := CountReminders(staffID, steps, time.Now())
	return &StaffReminders{
		StaffID:  staffID,
		PastDue:  counts.PastDue,
		Upcoming: counts.Upcoming,
		Steps:    steps,
	}, nil
}

// ScanOpenSteps gom toàn bộ bước đang mở có người nhận và có hạn, tính số liệu
// nhắc việc theo từng nhân sự. Dùng cho worker quét định kỳ.
func (s *ReminderService) ScanOpenSteps(ctx context.Context) (map[primitive.ObjectID]ReminderCounts, error) {
	filter := bson.M{
		"assignedTo": bson.M{"$exists": true},
		"status":     bson.M{"$ne": models.StepStatusCompleted},
		"dueDate":    bson.M{"$gt": 0},
	}
	steps, err := s.steps.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := make(map[primitive.ObjectID]ReminderCounts)
	for _, step := range steps {
		if step.AssignedTo == nil {
			continue
		}
		if _, done := result[*step.AssignedTo]; done {
			continue
		}
		result[*step.AssignedTo] = CountReminders(*step.AssignedTo, steps, now)
	}
	return result, nil
}
