package marketingsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	basesvc "marketing_content/internal/api/base/service"
	marketingdto "marketing_content/internal/api/marketing/dto"
	models "marketing_content/internal/api/marketing/models"
	"marketing_content/internal/common"
	"marketing_content/internal/global"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// SocialPostService xử lý vòng đời bài đăng: tạo nháp kèm bước 1,
// sửa nháp có kiểm soát phiên bản, nhân bản, hủy và đọc danh sách bước.
type SocialPostService struct {
	*basesvc.BaseServiceMongoImpl[models.SocialPost]
	steps *basesvc.BaseServiceMongoImpl[models.PostStep]
}

// NewSocialPostService tạo SocialPostService mới.
func NewSocialPostService() (*SocialPostService, error) {
	postColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.SocialPosts)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.SocialPosts, common.ErrNotFound)
	}
	stepColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.PostSteps)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.PostSteps, common.ErrNotFound)
	}
	return &SocialPostService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.SocialPost](postColl),
		steps:                basesvc.NewBaseServiceMongo[models.PostStep](stepColl),
	}, nil
}

// InsertOne tạo bài đăng mới ở trạng thái nháp và tạo kèm bước 1 (soạn nháp).
// Mọi bài đăng hợp lệ luôn có ít nhất một bước: nếu tạo bước 1 thất bại thì
// xóa bù bài vừa chèn để không để lại bài mồ côi.
func (s *SocialPostService) InsertOne(ctx context.Context, post models.SocialPost) (models.SocialPost, error) {
	var zero models.SocialPost

	post.Status = models.PostStatusDraft
	post.CurrentStep = models.StepNumberDrafting
	if post.Version < 1 {
		post.Version = 1
	}
	post.LastEditedAt = time.Now().UnixMilli()
	if post.CreatedBy.IsZero() {
		if actorID, ok := common.GetUserIDFromContext(ctx); ok {
			post.CreatedBy = actorID
		}
	}

	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, post)
	if err != nil {
		return zero, err
	}

	if _, err := s.steps.InsertOne(ctx, newPostStep(created.ID, models.StepNumberDrafting, nil, 0)); err != nil {
		if delErr := s.DeleteById(ctx, created.ID); delErr != nil {
			logrus.WithError(delErr).WithField("postId", created.ID.Hex()).
				Error("❌ Không thể xóa bù bài đăng sau khi tạo bước 1 thất bại")
		}
		return zero, err
	}
	return created, nil
}

// EditDraft sửa nội dung nháp: chỉ các trường có trong input mới thay đổi,
// version tăng 1 và lastEditedAt được làm mới.
//
// Điều kiện sửa (status draft và đang ở bước 1) nằm ngay trong filter của
// lệnh update nên kiểm tra và ghi là một thao tác nguyên tử, hai lần sửa
// song song không thể cùng ghi đè một phiên bản.
func (s *SocialPostService) EditDraft(ctx context.Context, postID primitive.ObjectID, input *marketingdto.EditDraftInput) (*models.SocialPost, error) {
	set := bson.M{"lastEditedAt": time.Now().UnixMilli()}
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Body != nil {
		set["body"] = *input.Body
	}
	if input.DesignLink != nil {
		set["designLink"] = *input.DesignLink
	}
	if input.ScheduledDate != nil {
		set["scheduledDate"] = *input.ScheduledDate
	}
	if input.LinkedAccountIDs != nil {
		set["linkedAccountIds"] = *input.LinkedAccountIDs
	}

	filter := bson.M{
		"_id":         postID,
		"status":      models.PostStatusDraft,
		"currentStep": models.StepNumberDrafting,
	}
	update := bson.M{
		"$set": set,
		"$inc": bson.M{"version": 1},
	}
	updated, err := s.UpdateOne(ctx, filter, update, nil)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	// Phân biệt bài không tồn tại với bài không còn ở trạng thái sửa được
	post, findErr := s.FindOneById(ctx, postID)
	if findErr != nil {
		return nil, common.ErrNotFound
	}
	return nil, common.NewError(common.ErrCodeBusinessOperation,
		fmt.Sprintf("Chỉ có thể sửa nội dung khi bài đang là nháp ở bước soạn (hiện tại: %s, bước %d)", post.Status, post.CurrentStep),
		common.StatusBadRequest, nil)
}

// DuplicatePost nhân bản một bài đăng thành nháp mới: giữ nội dung và danh sách
// tài khoản liên kết, tiêu đề thêm hậu tố " (Copy)", reset lịch đăng, phiên bản
// và quy trình (bước 1 mới, trạng thái draft). Người gọi là người tạo bản sao.
func (s *SocialPostService) DuplicatePost(ctx context.Context, postID primitive.ObjectID) (*models.SocialPost, error) {
	src, err := s.FindOneById(ctx, postID)
	if err != nil {
		return nil, err
	}

	duplicated := models.SocialPost{
		Title:            src.Title + " (Copy)",
		Body:             src.Body,
		DesignLink:       src.DesignLink,
		LinkedAccountIDs: src.LinkedAccountIDs,
		CreatedBy:        src.CreatedBy,
	}
	if actorID, ok := common.GetUserIDFromContext(ctx); ok {
		duplicated.CreatedBy = actorID
	}

	created, err := s.InsertOne(ctx, duplicated)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// CancelPost hủy bài đăng chưa lên sóng (trạng thái cuối, giữ nguyên các bước
// để tra cứu). Bài đã posted hoặc đã hủy thì không hủy được nữa.
func (s *SocialPostService) CancelPost(ctx context.Context, postID primitive.ObjectID) (*models.SocialPost, error) {
	filter := bson.M{
		"_id":    postID,
		"status": bson.M{"$nin": []string{models.PostStatusPosted, models.PostStatusCancelled}},
	}
	update := bson.M{"$set": bson.M{"status": models.PostStatusCancelled}}
	opts := mongoopts.FindOneAndUpdate().SetReturnDocument(mongoopts.After)
	updated, err := s.FindOneAndUpdate(ctx, filter, update, opts)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	post, findErr := s.FindOneById(ctx, postID)
	if findErr != nil {
		return nil, common.ErrNotFound
	}
	return nil, common.NewError(common.ErrCodeBusinessOperation,
		fmt.Sprintf("Không thể hủy bài ở trạng thái %s", post.Status),
		common.StatusBadRequest, nil)
}

// GetPostSteps trả về các bước của một bài đăng theo thứ tự stepNumber tăng dần.
func (s *SocialPostService) GetPostSteps(ctx context.Context, postID primitive.ObjectID) ([]models.PostStep, error) {
	if _, err := s.FindOneById(ctx, postID); err != nil {
		return nil, err
	}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "stepNumber", Value: 1}})
	return s.steps.Find(ctx, bson.M{"postId": postID}, opts)
}
