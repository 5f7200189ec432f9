// Package marketingsvc - Test các helper dựng bước, nhật ký ghi chú
// và guard chuyển bước.
package marketingsvc

import (
	"errors"
	"fmt"
	"testing"

	models "marketing_content/internal/api/marketing/models"
	"marketing_content/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewPostStep_TrangThaiBanDau(t *testing.T) {
	postID := primitive.NewObjectID()
	assignee := primitive.NewObjectID()

	step := newPostStep(postID, models.StepNumberApproval, &assignee, 1700000000000)
	if step.PostID != postID {
		t.Errorf("PostID = %v, muốn %v", step.PostID, postID)
	}
	if step.StepNumber != models.StepNumberApproval {
		t.Errorf("StepNumber = %d, muốn %d", step.StepNumber, models.StepNumberApproval)
	}
	if step.Name != "Approval" {
		t.Errorf("Name = %q, muốn %q", step.Name, "Approval")
	}
	if step.Status != models.StepStatusPending {
		t.Errorf("bước mới phải ở trạng thái pending, got %q", step.Status)
	}
	if step.AssignedTo == nil || *step.AssignedTo != assignee {
		t.Errorf("AssignedTo = %v, muốn %v", step.AssignedTo, assignee)
	}
	if step.DueDate != 1700000000000 {
		t.Errorf("DueDate = %d, muốn 1700000000000", step.DueDate)
	}
}

func TestNewPostStep_KhongGiaoKhongHan(t *testing.T) {
	step := newPostStep(primitive.NewObjectID(), models.StepNumberDrafting, nil, 0)
	if step.AssignedTo != nil {
		t.Errorf("bước chưa giao phải có AssignedTo nil, got %v", step.AssignedTo)
	}
	if step.DueDate != 0 {
		t.Errorf("bước không hạn phải có DueDate 0, got %d", step.DueDate)
	}
	if step.Name != "Content Drafting" {
		t.Errorf("Name = %q, muốn %q", step.Name, "Content Drafting")
	}
}

func TestStepNameForNumber(t *testing.T) {
	cases := []struct {
		number int
		want   string
	}{
		{models.StepNumberDrafting, "Content Drafting"},
		{models.StepNumberApproval, "Approval"},
		{models.StepNumberPosted, "Content Posted"},
		{0, ""},
		{4, ""},
	}
	for _, c := range cases {
		if got := models.StepNameForNumber(c.number); got != c.want {
			t.Errorf("StepNameForNumber(%d) = %q, muốn %q", c.number, got, c.want)
		}
	}
}

func TestAppendNote_NoiDongGiuNguyenNoiDungCu(t *testing.T) {
	if got := appendNote("", noteApproved); got != noteApproved {
		t.Errorf("nhật ký rỗng không được có newline đầu dòng, got %q", got)
	}

	existing := "Bản nháp lần 2"
	got := appendNote(existing, noteDisapprovedPrefix+"thiếu hình ảnh")
	want := "Bản nháp lần 2\n✗ Disapproved: thiếu hình ảnh"
	if got != want {
		t.Errorf("appendNote = %q, muốn %q", got, want)
	}

	// Nối tiếp lần nữa vẫn giữ toàn bộ lịch sử
	got = appendNote(got, noteApproved)
	want = want + "\n" + noteApproved
	if got != want {
		t.Errorf("nhật ký phải chỉ-ghi-thêm, got %q", got)
	}
}

func TestValidateCompletableStep_BuocDuyetKhongHoanThanhTrucTiep(t *testing.T) {
	step := newPostStep(primitive.NewObjectID(), models.StepNumberApproval, nil, 0)
	if err := validateCompletableStep(step); err == nil {
		t.Error("hoàn thành trực tiếp bước duyệt phải bị từ chối")
	}
}

func TestValidateCompletableStep_BuocDaXong(t *testing.T) {
	step := newPostStep(primitive.NewObjectID(), models.StepNumberDrafting, nil, 0)
	step.Status = models.StepStatusCompleted
	if err := validateCompletableStep(step); err == nil {
		t.Error("bước đã hoàn thành không được hoàn thành lần nữa")
	}
}

func TestValidateCompletableStep_BuocHopLe(t *testing.T) {
	for _, number := range []int{models.StepNumberDrafting, models.StepNumberPosted} {
		for _, status := range []string{models.StepStatusPending, models.StepStatusInProgress} {
			step := newPostStep(primitive.NewObjectID(), number, nil, 0)
			step.Status = status
			if err := validateCompletableStep(step); err != nil {
				t.Errorf("bước %d trạng thái %s phải hoàn thành được, got %v", number, status, err)
			}
		}
	}
}

func TestValidateApprovalStep(t *testing.T) {
	// Bước 1 và 3 không duyệt/từ chối được
	for _, number := range []int{models.StepNumberDrafting, models.StepNumberPosted} {
		step := newPostStep(primitive.NewObjectID(), number, nil, 0)
		if err := validateApprovalStep(step, "duyệt"); err == nil {
			t.Errorf("duyệt ở bước %d phải bị từ chối", number)
		}
	}

	// Bước duyệt đã hoàn thành thì cả duyệt lẫn từ chối đều không hợp lệ
	completed := newPostStep(primitive.NewObjectID(), models.StepNumberApproval, nil, 0)
	completed.Status = models.StepStatusCompleted
	for _, action := range []string{"duyệt", "từ chối"} {
		if err := validateApprovalStep(completed, action); err == nil {
			t.Errorf("thao tác %q trên bước duyệt đã xong phải bị từ chối", action)
		}
	}

	pending := newPostStep(primitive.NewObjectID(), models.StepNumberApproval, nil, 0)
	if err := validateApprovalStep(pending, "duyệt"); err != nil {
		t.Errorf("bước duyệt đang chờ phải duyệt được, got %v", err)
	}
}

func TestValidatePostOpen_TrangThaiCuoiLaBatBien(t *testing.T) {
	for _, status := range []string{models.PostStatusPosted, models.PostStatusCancelled} {
		post := models.SocialPost{Status: status}
		if err := validatePostOpen(post); err == nil {
			t.Errorf("bài ở trạng thái %s không được nhận thao tác chuyển bước", status)
		}
	}
	for _, status := range []string{models.PostStatusDraft, models.PostStatusInApproval, models.PostStatusApproved} {
		post := models.SocialPost{Status: status}
		if err := validatePostOpen(post); err != nil {
			t.Errorf("bài ở trạng thái %s phải còn mở, got %v", status, err)
		}
	}
}

func TestStepInsertError_TrungBuocThanhConflict(t *testing.T) {
	if got := stepInsertError(common.ErrMongoDuplicate); !errors.Is(got, common.ErrStateConflict) {
		t.Errorf("lỗi trùng (postId, stepNumber) phải thành conflict, got %v", got)
	}

	wrapped := fmt.Errorf("insert step: %w", common.ErrMongoDuplicate)
	if got := stepInsertError(wrapped); !errors.Is(got, common.ErrStateConflict) {
		t.Errorf("lỗi trùng được wrap phải thành conflict, got %v", got)
	}

	other := errors.New("connection reset")
	if got := stepInsertError(other); got != other {
		t.Errorf("lỗi khác phải giữ nguyên, got %v", got)
	}
}
