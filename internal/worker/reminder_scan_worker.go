package worker

import (
	"context"
	"time"

	marketingsvc "marketing_content/internal/api/marketing/service"
	"marketing_content/internal/logger"
)

// ReminderScanWorker worker quét nhắc việc: đọc toàn bộ bước đang mở có người nhận
// và có hạn, tính số quá hạn / sắp đến hạn theo từng nhân sự rồi ghi log cho ops.
// Chạy định kỳ (mặc định 15 phút). Không gửi email/push, chỉ ghi log cho vận hành.
type ReminderScanWorker struct {
	reminderService *marketingsvc.ReminderService
	interval        time.Duration // Khoảng thời gian giữa các lần quét
}

// NewReminderScanWorker tạo mới ReminderScanWorker.
// Tham số:
//   - interval: Khoảng thời gian giữa các lần quét (mặc định: 15 phút)
func NewReminderScanWorker(interval time.Duration) (*ReminderScanWorker, error) {
	reminderService, err := marketingsvc.NewReminderService()
	if err != nil {
		return nil, err
	}
	if interval < time.Minute {
		interval = 15 * time.Minute
	}
	return &ReminderScanWorker{
		reminderService: reminderService,
		interval:        interval,
	}, nil
}

// Start chạy worker trong vòng lặp: mỗi interval quét các bước đang mở,
// gom số liệu theo nhân sự và log những người đang có việc quá hạn.
func (w *ReminderScanWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("⏰ [REMINDER_SCAN] Starting Reminder Scan Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("⏰ [REMINDER_SCAN] Reminder Scan Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("⏰ [REMINDER_SCAN] Panic khi quét nhắc việc, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				counts, err := w.reminderService.ScanOpenSteps(ctx)
				if err != nil {
					log.WithError(err).Error("⏰ [REMINDER_SCAN] Lỗi quét các bước đang mở")
					return
				}
				if len(counts) == 0 {
					return
				}

				pastDueStaffs := 0
				for staffID, c := range counts {
					if c.PastDue == 0 {
						continue
					}
					pastDueStaffs++
					log.WithFields(map[string]interface{}{
						"staffId":  staffID.Hex(),
						"pastDue":  c.PastDue,
						"upcoming": c.Upcoming,
					}).Warn("⏰ [REMINDER_SCAN] Nhân sự có bước quá hạn")
				}

				log.WithFields(map[string]interface{}{
					"staffs":        len(counts),
					"pastDueStaffs": pastDueStaffs,
				}).Info("⏰ [REMINDER_SCAN] Đã quét nhắc việc")
			}()
		}
	}
}
