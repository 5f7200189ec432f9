package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"marketing_content_tests/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForHealth chờ server sẵn sàng, skip test nếu không kết nối được.
func waitForHealth(t *testing.T, attempts int, delay time.Duration) {
	client := &http.Client{Timeout: 2 * time.Second}
	for i := 0; i < attempts; i++ {
		resp, err := client.Get("http://localhost:8080/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(delay)
	}
	t.Skip("⚠️ Server không chạy tại localhost:8080, bỏ qua test tích hợp")
}

// TestContentWorkflow kiểm tra toàn bộ vòng đời bài đăng qua API:
// tạo nháp → giao việc → gửi duyệt → duyệt/từ chối → đăng bài.
func TestContentWorkflow(t *testing.T) {
	waitForHealth(t, 10, 1*time.Second)

	baseURL := "http://localhost:8080/api/v1"
	client := utils.NewHTTPClient(baseURL, 10)

	// Cần một nhân sự active làm người thao tác (seed từ INITMODE hoặc tạo tay trước đó)
	resp, body, err := client.GET("/marketing/staffs/find")
	require.NoError(t, err, "không gọi được danh sách nhân sự")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	staffs := utils.ParseDataList(body)
	if len(staffs) == 0 {
		t.Skip("⚠️ Chưa có nhân sự nào, chạy server với INITMODE=true trước")
	}
	bootstrapActor, ok := staffs[0].(map[string]interface{})
	require.True(t, ok)
	client.SetActorID(bootstrapActor["id"].(string))

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	var designerID, approverID, accountID string

	t.Run("👥 Chuẩn bị nhân sự và tài khoản liên kết", func(t *testing.T) {
		resp, body, err := client.POST("/marketing/staffs/insert-one", map[string]interface{}{
			"name":  "Designer Test",
			"email": fmt.Sprintf("designer+%s@test.local", suffix),
			"title": "Designer",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "tạo designer thất bại: %s", string(body))
		designerID = utils.ParseData(body)["id"].(string)

		resp, body, err = client.POST("/marketing/staffs/insert-one", map[string]interface{}{
			"name":  "Approver Test",
			"email": fmt.Sprintf("approver+%s@test.local", suffix),
			"title": "Approver",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "tạo approver thất bại: %s", string(body))
		approverID = utils.ParseData(body)["id"].(string)

		resp, body, err = client.POST("/marketing/accounts/insert-one", map[string]interface{}{
			"platform":   "facebook",
			"name":       "Page Test " + suffix,
			"externalId": "fb_" + suffix,
			"designerId": designerID,
			"approverId": approverID,
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "tạo tài khoản liên kết thất bại: %s", string(body))
		accountID = utils.ParseData(body)["id"].(string)
	})

	// Sau khi có designer, các thao tác workflow chạy dưới danh nghĩa designer
	client.SetActorID(designerID)

	var postID, step1ID, step2ID, step3ID string

	t.Run("📝 Tạo bài đăng kèm bước soạn nháp", func(t *testing.T) {
		resp, body, err := client.POST("/marketing/posts/insert-one", map[string]interface{}{
			"title":            "Bài test " + suffix,
			"body":             "Nội dung nháp ban đầu",
			"linkedAccountIds": []string{accountID},
			"scheduledDate":    time.Now().AddDate(0, 0, 5).UnixMilli(),
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "tạo bài thất bại: %s", string(body))

		post := utils.ParseData(body)
		postID = post["id"].(string)
		assert.Equal(t, "draft", post["status"], "bài mới phải ở trạng thái draft")
		assert.Equal(t, float64(1), post["currentStep"], "bài mới phải ở bước 1")
		assert.Equal(t, float64(1), post["version"], "bài mới phải có version 1")

		resp, body, err = client.GET(fmt.Sprintf("/marketing/posts/%s/steps", postID))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		steps := utils.ParseDataList(body)
		require.Len(t, steps, 1, "bài mới phải có đúng một bước")
		step1 := steps[0].(map[string]interface{})
		step1ID = step1["id"].(string)
		assert.Equal(t, float64(1), step1["stepNumber"])
		assert.Equal(t, "pending", step1["status"])
		assert.Nil(t, step1["assignedTo"], "bước 1 mới tạo chưa được giao")
	})

	t.Run("🛡 Route update generic của bài đăng bị tắt", func(t *testing.T) {
		resp, body, err := client.PUT("/marketing/posts/update-by-id/"+postID, map[string]interface{}{
			"title": "Ghi đè ngoài quy trình",
		})
		require.NoError(t, err)
		assert.NotEqual(t, http.StatusOK, resp.StatusCode, "update generic phải bị tắt: %s", string(body))

		resp, body, err = client.GET("/marketing/posts/find-by-id/" + postID)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		post := utils.ParseData(body)
		assert.Equal(t, "Bài test "+suffix, post["title"], "nội dung không được đổi ngoài thao tác sửa nháp")
		assert.Equal(t, float64(1), post["version"], "version không được đổi ngoài thao tác sửa nháp")
	})

	t.Run("✏️ Sửa nháp tăng version", func(t *testing.T) {
		resp, body, err := client.PUT(fmt.Sprintf("/marketing/posts/%s/draft", postID), map[string]interface{}{
			"body": "Nội dung nháp đã chỉnh sửa",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "sửa nháp thất bại: %s", string(body))
		post := utils.ParseData(body)
		assert.Equal(t, float64(2), post["version"], "sửa nháp phải tăng version")
	})

	t.Run("🙋 Giao việc kích hoạt bước", func(t *testing.T) {
		resp, body, err := client.PUT(fmt.Sprintf("/marketing/steps/%s/assignment", step1ID), map[string]interface{}{
			"assignedTo": designerID,
			"dueDate":    time.Now().AddDate(0, 0, 2).UnixMilli(),
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "giao việc thất bại: %s", string(body))
		step := utils.ParseData(body)
		assert.Equal(t, "in_progress", step["status"], "giao người lần đầu phải chuyển pending → in_progress")

		// Gửi lại y hệt vẫn thành công (không phải not-found)
		resp, body, err = client.PUT(fmt.Sprintf("/marketing/steps/%s/assignment", step1ID), map[string]interface{}{
			"assignedTo": designerID,
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "giao việc lặp lại giá trị cũ phải thành công: %s", string(body))

		// Không đánh dấu hoàn thành được qua giao việc
		resp, body, err = client.PUT(fmt.Sprintf("/marketing/steps/%s/assignment", step1ID), map[string]interface{}{
			"status": "completed",
		})
		require.NoError(t, err)
		assert.NotEqual(t, http.StatusOK, resp.StatusCode, "status completed qua giao việc phải bị chặn: %s", string(body))
	})

	t.Run("✅ Hoàn thành soạn nháp tạo bước duyệt", func(t *testing.T) {
		resp, body, err := client.POST(fmt.Sprintf("/marketing/steps/%s/complete", step1ID), map[string]interface{}{
			"notes": "Nháp hoàn chỉnh",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "hoàn thành bước 1 thất bại: %s", string(body))
		post := utils.ParseData(body)
		assert.Equal(t, "in_approval", post["status"])
		assert.Equal(t, float64(2), post["currentStep"])

		resp, body, err = client.GET(fmt.Sprintf("/marketing/posts/%s/steps", postID))
		require.NoError(t, err)
		steps := utils.ParseDataList(body)
		require.Len(t, steps, 2, "hoàn thành bước 1 phải tạo bước 2")
		step2 := steps[1].(map[string]interface{})
		step2ID = step2["id"].(string)
		assert.Equal(t, float64(2), step2["stepNumber"])
		assert.Equal(t, "pending", step2["status"])
		assert.Equal(t, approverID, step2["assignedTo"], "bước duyệt phải được giao cho approver của tài khoản")
	})

	t.Run("🚫 Bước duyệt không hoàn thành trực tiếp được", func(t *testing.T) {
		resp, body, err := client.POST(fmt.Sprintf("/marketing/steps/%s/complete", step2ID), nil)
		require.NoError(t, err)
		assert.NotEqual(t, http.StatusOK, resp.StatusCode, "hoàn thành trực tiếp bước duyệt phải bị chặn: %s", string(body))

		// Bước 1 đã xong cũng không hoàn thành lần nữa được
		resp, body, err = client.POST(fmt.Sprintf("/marketing/steps/%s/complete", step1ID), nil)
		require.NoError(t, err)
		assert.NotEqual(t, http.StatusOK, resp.StatusCode, "bước đã xong không được hoàn thành lần nữa: %s", string(body))
	})

	t.Run("❌ Từ chối quay về nháp", func(t *testing.T) {
		// Từ chối không lý do phải bị chặn
		resp, body, err := client.POST(fmt.Sprintf("/marketing/steps/%s/disapprove", step2ID), map[string]interface{}{
			"reason": "   ",
		})
		require.NoError(t, err)
		assert.NotEqual(t, http.StatusOK, resp.StatusCode, "từ chối không lý do phải bị chặn: %s", string(body))

		resp, body, err = client.POST(fmt.Sprintf("/marketing/steps/%s/disapprove", step2ID), map[string]interface{}{
			"reason": "Thiếu hình ảnh minh họa",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "từ chối thất bại: %s", string(body))
		post := utils.ParseData(body)
		assert.Equal(t, "draft", post["status"], "từ chối phải đưa bài về draft")
		assert.Equal(t, float64(1), post["currentStep"])

		resp, body, err = client.GET(fmt.Sprintf("/marketing/posts/%s/steps", postID))
		require.NoError(t, err)
		steps := utils.ParseDataList(body)
		require.Len(t, steps, 1, "bước duyệt phải bị xóa sau khi từ chối")
		step1 := steps[0].(map[string]interface{})
		assert.Equal(t, "in_progress", step1["status"], "bước 1 phải quay lại in_progress")
		assert.Contains(t, step1["notes"], "Thiếu hình ảnh minh họa", "lý do từ chối phải nằm trong nhật ký bước 1")
	})

	t.Run("✔️ Gửi duyệt lại và duyệt", func(t *testing.T) {
		resp, body, err := client.POST(fmt.Sprintf("/marketing/steps/%s/complete", step1ID), nil)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "gửi duyệt lại thất bại: %s", string(body))

		resp, body, err = client.GET(fmt.Sprintf("/marketing/posts/%s/steps", postID))
		require.NoError(t, err)
		steps := utils.ParseDataList(body)
		require.Len(t, steps, 2)
		step2ID = steps[1].(map[string]interface{})["id"].(string)

		client.SetActorID(approverID)
		resp, body, err = client.POST(fmt.Sprintf("/marketing/steps/%s/approve", step2ID), map[string]interface{}{
			"notes": "Nội dung đạt",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "duyệt thất bại: %s", string(body))
		post := utils.ParseData(body)
		assert.Equal(t, "approved", post["status"])
		assert.Equal(t, float64(3), post["currentStep"])

		resp, body, err = client.GET(fmt.Sprintf("/marketing/posts/%s/steps", postID))
		require.NoError(t, err)
		steps = utils.ParseDataList(body)
		require.Len(t, steps, 3, "duyệt phải tạo bước đăng bài")
		step3 := steps[2].(map[string]interface{})
		step3ID = step3["id"].(string)
		assert.Equal(t, designerID, step3["assignedTo"], "bước đăng phải được giao cho designer của tài khoản")
	})

	t.Run("🚀 Đăng bài chốt trạng thái cuối", func(t *testing.T) {
		client.SetActorID(designerID)
		resp, body, err := client.POST(fmt.Sprintf("/marketing/steps/%s/complete", step3ID), nil)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "hoàn thành bước đăng thất bại: %s", string(body))
		post := utils.ParseData(body)
		assert.Equal(t, "posted", post["status"])

		// Bài đã đăng không thể hủy
		resp, body, err = client.POST(fmt.Sprintf("/marketing/posts/%s/cancel", postID), nil)
		require.NoError(t, err)
		assert.NotEqual(t, http.StatusOK, resp.StatusCode, "bài đã đăng không được phép hủy: %s", string(body))

		// Bài đã đăng không thể sửa nháp
		resp, body, err = client.PUT(fmt.Sprintf("/marketing/posts/%s/draft", postID), map[string]interface{}{
			"body": "Sửa sau khi đăng",
		})
		require.NoError(t, err)
		assert.NotEqual(t, http.StatusOK, resp.StatusCode, "bài đã đăng không được phép sửa nháp: %s", string(body))
	})

	t.Run("📋 Nhân bản và hủy bài", func(t *testing.T) {
		resp, body, err := client.POST(fmt.Sprintf("/marketing/posts/%s/duplicate", postID), nil)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "nhân bản thất bại: %s", string(body))
		copyPost := utils.ParseData(body)
		copyID := copyPost["id"].(string)
		assert.Equal(t, "draft", copyPost["status"], "bản sao phải bắt đầu lại từ draft")
		assert.Equal(t, float64(1), copyPost["currentStep"])
		assert.Contains(t, copyPost["title"], "(Copy)")

		resp, body, err = client.POST(fmt.Sprintf("/marketing/posts/%s/cancel", copyID), nil)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "hủy bản sao thất bại: %s", string(body))
		assert.Equal(t, "cancelled", utils.ParseData(body)["status"])

		// Bài đã hủy là trạng thái cuối: bước còn mở của nó không hoàn thành được
		resp, body, err = client.GET(fmt.Sprintf("/marketing/posts/%s/steps", copyID))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		copySteps := utils.ParseDataList(body)
		require.NotEmpty(t, copySteps)
		copyStep1ID := copySteps[0].(map[string]interface{})["id"].(string)

		resp, body, err = client.POST(fmt.Sprintf("/marketing/steps/%s/complete", copyStep1ID), nil)
		require.NoError(t, err)
		assert.NotEqual(t, http.StatusOK, resp.StatusCode, "bước của bài đã hủy không được hoàn thành: %s", string(body))

		resp, body, err = client.GET("/marketing/posts/find-by-id/" + copyID)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "cancelled", utils.ParseData(body)["status"], "bài đã hủy phải giữ nguyên trạng thái")
	})

	t.Run("⏰ Nhắc việc theo nhân sự", func(t *testing.T) {
		resp, body, err := client.GET("/marketing/reminders/" + designerID)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "lấy nhắc việc thất bại: %s", string(body))
		data := utils.ParseData(body)
		require.NotNil(t, data)
		assert.Contains(t, data, "pastDue")
		assert.Contains(t, data, "upcoming")
	})
}
