package marketingsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

// Các dòng ghi vào nhật ký bước khi duyệt/từ chối.
const (
	noteApproved          = "✓ Approved"
	noteDisapprovedPrefix = "✗ Disapproved: "
)

// PostStepService xử lý chuyển bước của quy trình duyệt bài đăng:
// hoàn thành bước soạn/đăng, duyệt, từ chối (rollback) và giao việc.
//
// Không dùng transaction MongoDB: mỗi thao tác tựa vào guard filter +
// unique index (postId, stepNumber) + bù trừ khi bước giữa chừng thất bại.
type PostStepService struct {
	*basesvc.BaseServiceMongoImpl[models.PostStep]
	posts    *basesvc.BaseServiceMongoImpl[models.SocialPost]
	resolver *ActorResolver
}

// NewPostStepService tạo PostStepService mới.
func NewPostStepService() (*PostStepService, error) {
	stepColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.PostSteps)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.PostSteps, common.ErrNotFound)
	}
	postColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.SocialPosts)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.SocialPosts, common.ErrNotFound)
	}
	resolver, err := NewActorResolver()
	if err != nil {
		return nil, err
	}
	return &PostStepService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.PostStep](stepColl),
		posts:                basesvc.NewBaseServiceMongo[models.SocialPost](postColl),
		resolver:             resolver,
	}, nil
}

// newPostStep dựng bản ghi bước mới ở trạng thái pending.
func newPostStep(postID primitive.ObjectID, stepNumber int, assignedTo *primitive.ObjectID, dueDate int64) models.PostStep {
	return models.PostStep{
		PostID:     postID,
		StepNumber: stepNumber,
		Name:       models.StepNameForNumber(stepNumber),
		AssignedTo: assignedTo,
		DueDate:    dueDate,
		Status:     models.StepStatusPending,
	}
}

// appendNote nối một dòng mới vào nhật ký bước, giữ nguyên nội dung cũ.
func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "\n" + note
}

// postWorkflowClosed báo bài đã ở trạng thái kết thúc (posted/cancelled),
// không nhận thêm bất kỳ thao tác chuyển bước nào.
func postWorkflowClosed(status string) bool {
	return status == models.PostStatusPosted || status == models.PostStatusCancelled
}

// validatePostOpen chặn thao tác chuyển bước trên bài đã kết thúc quy trình.
func validatePostOpen(post models.SocialPost) error {
	if postWorkflowClosed(post.Status) {
		return common.NewError(common.ErrCodeBusinessOperation,
			fmt.Sprintf("Bài đăng đã ở trạng thái %s, quy trình không thể tiếp tục", post.Status),
			common.StatusBadRequest, nil)
	}
	return nil
}

// validateCompletableStep chặn hoàn thành bước duyệt trực tiếp và bước đã xong.
func validateCompletableStep(step models.PostStep) error {
	if step.StepNumber == models.StepNumberApproval {
		return common.NewError(common.ErrCodeBusinessOperation,
			"Bước duyệt không thể hoàn thành trực tiếp, hãy dùng thao tác duyệt hoặc từ chối",
			common.StatusBadRequest, nil)
	}
	if step.Status == models.StepStatusCompleted {
		return common.NewError(common.ErrCodeBusinessOperation,
			fmt.Sprintf("Bước %d (%s) đã hoàn thành trước đó", step.StepNumber, step.Name),
			common.StatusBadRequest, nil)
	}
	return nil
}

// validateApprovalStep kiểm tra bước có đang chờ ở bước duyệt không.
// action là tên thao tác ("duyệt" / "từ chối") để ghép vào thông báo lỗi.
func validateApprovalStep(step models.PostStep, action string) error {
	if step.StepNumber != models.StepNumberApproval {
		return common.NewError(common.ErrCodeBusinessOperation,
			fmt.Sprintf("Chỉ có thể %s ở bước %d (%s), bước hiện tại là %d", action, models.StepNumberApproval, models.StepNameForNumber(models.StepNumberApproval), step.StepNumber),
			common.StatusBadRequest, nil)
	}
	if step.Status == models.StepStatusCompleted {
		return common.NewError(common.ErrCodeBusinessOperation,
			fmt.Sprintf("Bước duyệt đã hoàn thành, không thể %s", action),
			common.StatusBadRequest, nil)
	}
	return nil
}

// stepInsertError đổi lỗi trùng (postId, stepNumber) thành conflict:
// một thao tác song song đã tạo bước kế tiếp, caller đọc lại dữ liệu rồi thử lại.
func stepInsertError(err error) error {
	if errors.Is(err, common.ErrMongoDuplicate) {
		return common.ErrStateConflict
	}
	return err
}

// CompleteStep hoàn thành bước soạn nháp (1) hoặc bước đăng bài (3).
//
// Bước duyệt (2) không đi qua đây: duyệt có nhánh từ chối riêng nên phải dùng
// ApproveStep / DisapproveStep.
//
// Hoàn thành bước 1 tạo bước 2 (người duyệt phân giải từ tài khoản liên kết)
// và đưa bài sang in_approval. Hoàn thành bước 3 chốt bài ở trạng thái posted.
func (s *PostStepService) CompleteStep(ctx context.Context, stepID primitive.ObjectID, notes string) (*models.SocialPost, error) {
	step, err := s.FindOneById(ctx, stepID)
	if err != nil {
		return nil, err
	}
	if err := validateCompletableStep(step); err != nil {
		return nil, err
	}
	post, err := s.posts.FindOneById(ctx, step.PostID)
	if err != nil {
		return nil, err
	}
	if err := validatePostOpen(post); err != nil {
		return nil, err
	}

	if _, err := s.markCompleted(ctx, step, notes); err != nil {
		return nil, err
	}

	switch step.StepNumber {
	case models.StepNumberDrafting:
		approver := s.resolver.ResolveRole(ctx, &post, models.AccountRoleApprover)
		created, err := s.InsertOne(ctx, newPostStep(step.PostID, models.StepNumberApproval, approver, 0))
		if err != nil {
			s.restoreStep(ctx, step)
			return nil, stepInsertError(err)
		}
		updated, err := s.advancePost(ctx, step.PostID, models.PostStatusDraft, models.PostStatusInApproval, models.StepNumberApproval)
		if err != nil {
			s.removeStep(ctx, created)
			s.restoreStep(ctx, step)
			return nil, err
		}
		return updated, nil
	case models.StepNumberPosted:
		updated, err := s.advancePost(ctx, step.PostID, models.PostStatusApproved, models.PostStatusPosted, models.StepNumberPosted)
		if err != nil {
			s.restoreStep(ctx, step)
			return nil, err
		}
		return updated, nil
	}
	return nil, common.ErrInvalidOperation
}

// ApproveStep duyệt bước 2: ghi dấu "✓ Approved" vào nhật ký, hoàn thành bước,
// tạo bước 3 giao cho designer (hạn = lịch đăng của bài) và đưa bài sang approved.
func (s *PostStepService) ApproveStep(ctx context.Context, stepID primitive.ObjectID, notes string) (*models.SocialPost, error) {
	step, err := s.FindOneById(ctx, stepID)
	if err != nil {
		return nil, err
	}
	if err := validateApprovalStep(step, "duyệt"); err != nil {
		return nil, err
	}
	post, err := s.posts.FindOneById(ctx, step.PostID)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusInApproval {
		return nil, common.NewError(common.ErrCodeBusinessOperation,
			fmt.Sprintf("Chỉ có thể duyệt bài đang chờ duyệt (hiện tại: %s)", post.Status),
			common.StatusBadRequest, nil)
	}

	approvalNote := noteApproved
	if notes != "" {
		approvalNote = notes + "\n" + noteApproved
	}
	if _, err := s.markCompleted(ctx, step, approvalNote); err != nil {
		return nil, err
	}

	designer := s.resolver.ResolveRole(ctx, &post, models.AccountRoleDesigner)
	created, err := s.InsertOne(ctx, newPostStep(step.PostID, models.StepNumberPosted, designer, post.ScheduledDate))
	if err != nil {
		s.restoreStep(ctx, step)
		return nil, stepInsertError(err)
	}
	updated, err := s.advancePost(ctx, step.PostID, models.PostStatusInApproval, models.PostStatusApproved, models.StepNumberPosted)
	if err != nil {
		s.removeStep(ctx, created)
		s.restoreStep(ctx, step)
		return nil, err
	}
	return updated, nil
}

// DisapproveStep từ chối bước duyệt và rollback toàn bộ về soạn nháp:
// ghi lý do vào nhật ký bước 1, trả bước 1 về in_progress (xóa completedAt/completedBy),
// XÓA bản ghi bước 2, đưa bài về draft/currentStep 1. Sau đó sửa nháp hợp lệ trở lại.
//
// Thứ tự cố định để sự cố giữa chừng không tạo trạng thái vô lý:
// hoàn tác bước 1 trước, xóa bước 2 sau, cập nhật bài cuối cùng.
// Xóa bước 2 thất bại thì bù trừ bằng cách trả bước 1 về trạng thái đã hoàn thành.
func (s *PostStepService) DisapproveStep(ctx context.Context, stepID primitive.ObjectID, reason string) (*models.SocialPost, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, common.NewError(common.ErrCodeValidationInput,
			"Lý do từ chối không được để trống",
			common.StatusBadRequest, nil)
	}
	step, err := s.FindOneById(ctx, stepID)
	if err != nil {
		return nil, err
	}
	if err := validateApprovalStep(step, "từ chối"); err != nil {
		return nil, err
	}
	post, err := s.posts.FindOneById(ctx, step.PostID)
	if err != nil {
		return nil, err
	}
	if post.Status != models.PostStatusInApproval {
		return nil, common.NewError(common.ErrCodeBusinessOperation,
			fmt.Sprintf("Chỉ có thể từ chối bài đang chờ duyệt (hiện tại: %s)", post.Status),
			common.StatusBadRequest, nil)
	}

	draftStep, err := s.FindOne(ctx, bson.M{"postId": step.PostID, "stepNumber": models.StepNumberDrafting}, nil)
	if err != nil {
		return nil, err
	}

	// 1) Hoàn tác bước soạn nháp, kèm lý do từ chối vào nhật ký
	revert := bson.M{
		"$set": bson.M{
			"status": models.StepStatusInProgress,
			"notes":  appendNote(draftStep.Notes, noteDisapprovedPrefix+reason),
		},
		"$unset": bson.M{"completedAt": "", "completedBy": ""},
	}
	if _, err := s.UpdateOne(ctx, bson.M{"_id": draftStep.ID}, revert, nil); err != nil {
		return nil, err
	}

	// 2) Xóa bản ghi bước duyệt
	if err := s.DeleteById(ctx, step.ID); err != nil {
		s.restoreStep(ctx, draftStep)
		return nil, err
	}

	// 3) Đưa bài về soạn nháp. Thất bại thì bù trừ theo chiều ngược:
	// tạo lại bước duyệt vừa xóa rồi trả bước soạn nháp về trạng thái cũ.
	updated, err := s.advancePost(ctx, step.PostID, models.PostStatusInApproval, models.PostStatusDraft, models.StepNumberDrafting)
	if err != nil {
		if _, insErr := s.InsertOne(ctx, step); insErr != nil {
			logrus.WithError(insErr).WithFields(logrus.Fields{
				"stepId": step.ID.Hex(),
				"postId": step.PostID.Hex(),
			}).Error("❌ Không thể tạo lại bước duyệt khi bù trừ, dữ liệu có thể không nhất quán")
		}
		s.restoreStep(ctx, draftStep)
		return nil, err
	}
	return updated, nil
}

// UpdateStepAssignment cập nhật một phần thông tin giao việc của bước:
// chỉ các trường có trong input mới thay đổi. Ghi chú luôn được NỐI THÊM
// vào nhật ký, không bao giờ ghi đè. Giao người cho bước đang pending sẽ
// tự chuyển bước sang in_progress trừ khi input chỉ định status khác.
// Không đặt được completed qua đây và không đụng tới trạng thái bài đăng.
func (s *PostStepService) UpdateStepAssignment(ctx context.Context, stepID primitive.ObjectID, input *marketingdto.StepAssignmentInput) (*models.PostStep, error) {
	step, err := s.FindOneById(ctx, stepID)
	if err != nil {
		return nil, err
	}
	if step.Status == models.StepStatusCompleted {
		return nil, common.NewError(common.ErrCodeBusinessOperation,
			"Không thể cập nhật giao việc cho bước đã hoàn thành",
			common.StatusBadRequest, nil)
	}
	if input.Status != nil && *input.Status == models.StepStatusCompleted {
		return nil, common.NewError(common.ErrCodeBusinessOperation,
			"Không thể đánh dấu hoàn thành qua giao việc, hãy dùng thao tác hoàn thành hoặc duyệt",
			common.StatusBadRequest, nil)
	}

	set := bson.M{}
	if input.AssignedTo != nil {
		set["assignedTo"] = *input.AssignedTo
	}
	if input.DueDate != nil {
		set["dueDate"] = *input.DueDate
	}
	if input.Notes != nil && *input.Notes != "" {
		set["notes"] = appendNote(step.Notes, *input.Notes)
	}
	switch {
	case input.Status != nil:
		set["status"] = *input.Status
	case input.AssignedTo != nil && step.Status == models.StepStatusPending:
		// Giao người lần đầu kích hoạt bước
		set["status"] = models.StepStatusInProgress
	}
	if len(set) == 0 {
		return &step, nil
	}

	updated, err := s.UpdateOne(ctx, bson.M{"_id": step.ID}, bson.M{"$set": set}, nil)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// markCompleted chuyển bước sang completed với guard chống hoàn thành hai lần.
// Guard thất bại nghĩa là một thao tác song song đã hoàn thành bước trước,
// trả về conflict để caller thử lại với dữ liệu mới.
func (s *PostStepService) markCompleted(ctx context.Context, step models.PostStep, notes string) (models.PostStep, error) {
	var zero models.PostStep
	set := bson.M{
		"status":      models.StepStatusCompleted,
		"completedAt": time.Now().UnixMilli(),
	}
	if actorID, ok := common.GetUserIDFromContext(ctx); ok {
		set["completedBy"] = actorID
	}
	if notes != "" {
		set["notes"] = appendNote(step.Notes, notes)
	}
	filter := bson.M{"_id": step.ID, "status": bson.M{"$ne": models.StepStatusCompleted}}
	opts := mongoopts.FindOneAndUpdate().SetReturnDocument(mongoopts.After)
	updated, err := s.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, common.ErrStateConflict
		}
		return zero, err
	}
	return updated, nil
}

// restoreStep đưa bản ghi bước về đúng trạng thái trước thao tác.
// Dùng làm bù trừ khi bước kế tiếp của một chuỗi thao tác thất bại.
func (s *PostStepService) restoreStep(ctx context.Context, prior models.PostStep) {
	set := bson.M{"status": prior.Status}
	unset := bson.M{}
	if prior.Notes != "" {
		set["notes"] = prior.Notes
	} else {
		unset["notes"] = ""
	}
	if prior.CompletedAt != 0 {
		set["completedAt"] = prior.CompletedAt
	} else {
		unset["completedAt"] = ""
	}
	if prior.CompletedBy != nil {
		set["completedBy"] = *prior.CompletedBy
	} else {
		unset["completedBy"] = ""
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if _, err := s.UpdateOne(ctx, bson.M{"_id": prior.ID}, update, nil); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"stepId":     prior.ID.Hex(),
			"postId":     prior.PostID.Hex(),
			"stepNumber": prior.StepNumber,
		}).Error("❌ Không thể bù trừ trạng thái bước, dữ liệu có thể không nhất quán")
	}
}

// removeStep xóa bản ghi bước vừa tạo trong một chuỗi thao tác thất bại.
func (s *PostStepService) removeStep(ctx context.Context, created models.PostStep) {
	if err := s.DeleteById(ctx, created.ID); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"stepId":     created.ID.Hex(),
			"postId":     created.PostID.Hex(),
			"stepNumber": created.StepNumber,
		}).Error("❌ Không thể xóa bước vừa tạo khi bù trừ, dữ liệu có thể không nhất quán")
	}
}

// advancePost chuyển trạng thái và con trỏ bước hiện tại của bài đăng.
// fromStatus nằm trong filter: bài đã bị thao tác song song đổi trạng thái
// (kể cả hủy) thì guard trượt và trả về conflict thay vì ghi đè.
func (s *PostStepService) advancePost(ctx context.Context, postID primitive.ObjectID, fromStatus string, status string, currentStep int) (*models.SocialPost, error) {
	filter := bson.M{"_id": postID, "status": fromStatus}
	update := bson.M{"$set": bson.M{"status": status, "currentStep": currentStep}}
	opts := mongoopts.FindOneAndUpdate().SetReturnDocument(mongoopts.After)
	updated, err := s.posts.FindOneAndUpdate(ctx, filter, update, opts)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrStateConflict
		}
		return nil, err
	}
	return &updated, nil
}
