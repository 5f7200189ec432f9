package marketingsvc

import (
	"context"
	"fmt"

	basesvc "marketing_content/internal/api/base/service"
	models "marketing_content/internal/api/marketing/models"
	"marketing_content/internal/common"
	"marketing_content/internal/global"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StaffService quản lý danh bạ nhân sự tham gia quy trình.
type StaffService struct {
	*basesvc.BaseServiceMongoImpl[models.Staff]
	steps *basesvc.BaseServiceMongoImpl[models.PostStep]
}

// NewStaffService tạo StaffService mới.
func NewStaffService() (*StaffService, error) {
	staffColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Staffs)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Staffs, common.ErrNotFound)
	}
	stepColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.PostSteps)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.PostSteps, common.ErrNotFound)
	}
	return &StaffService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Staff](staffColl),
		steps:                basesvc.NewBaseServiceMongo[models.PostStep](stepColl),
	}, nil
}

// InsertOne tạo nhân sự mới, mặc định đang hoạt động.
func (s *StaffService) InsertOne(ctx context.Context, staff models.Staff) (models.Staff, error) {
	staff.IsActive = true
	return s.BaseServiceMongoImpl.InsertOne(ctx, staff)
}

// DeactivateStaff ngừng hoạt động một nhân sự. Không chặn khi nhân sự còn
// bước đang mở: các bước đó vẫn hiển thị và có thể giao lại cho người khác,
// chỉ cảnh báo qua log để quản trị viên biết mà chuyển giao.
func (s *StaffService) DeactivateStaff(ctx context.Context, staffID primitive.ObjectID) (*models.Staff, error) {
	updated, err := s.UpdateOne(ctx, bson.M{"_id": staffID},
		bson.M{"$set": bson.M{"isActive": false}}, nil)
	if err != nil {
		return nil, err
	}
	if open, countErr := s.CountOpenSteps(ctx, staffID); countErr == nil && open > 0 {
		logrus.WithFields(logrus.Fields{
			"staffId":   staffID.Hex(),
			"openSteps": open,
		}).Warnf("⚠️ Nhân sự vừa ngừng hoạt động vẫn còn %d bước đang mở", open)
	}
	return &updated, nil
}

// ActivateStaff mở lại hoạt động cho nhân sự.
func (s *StaffService) ActivateStaff(ctx context.Context, staffID primitive.ObjectID) (*models.Staff, error) {
	updated, err := s.UpdateOne(ctx, bson.M{"_id": staffID},
		bson.M{"$set": bson.M{"isActive": true}}, nil)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// CountOpenSteps đếm số bước chưa hoàn thành đang giao cho nhân sự.
func (s *StaffService) CountOpenSteps(ctx context.Context, staffID primitive.ObjectID) (int64, error) {
	return s.steps.CountDocuments(ctx, bson.M{
		"assignedTo": staffID,
		"status":     bson.M{"$ne": models.StepStatusCompleted},
	})
}
