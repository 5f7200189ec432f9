package main

import (
	"context"
	"errors"

	basesvc "marketing_content/internal/api/base/service"
	models "marketing_content/internal/api/marketing/models"
	marketingsvc "marketing_content/internal/api/marketing/service"
	"marketing_content/internal/common"
	"marketing_content/internal/global"
	"marketing_content/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
)

// InitDefaultData khởi tạo dữ liệu mẫu khi chạy ở chế độ khởi tạo (INIT_MODE=true).
// Tạo nhân sự mẫu (designer + approver) và một tài khoản liên kết với mapping vai trò
// để có thể thử nghiệm quy trình duyệt ngay sau khi dựng môi trường. Idempotent:
// chạy lại không tạo trùng (email nhân sự là unique, tài khoản kiểm tra trước khi tạo).
func InitDefaultData() {
	log := logger.GetAppLogger()

	if !global.MongoDB_ServerConfig.InitMode {
		log.Info("Init mode disabled, skipping default data")
		return
	}

	log.Info("🔄 [INIT] Starting InitDefaultData...")
	// Context seed được phép ghi system data
	ctx := basesvc.WithSystemDataInsertAllowed(context.Background())

	staffService, err := marketingsvc.NewStaffService()
	if err != nil {
		log.Fatalf("Failed to initialize staff service: %v", err)
	}
	accountService, err := marketingsvc.NewLinkedAccountService()
	if err != nil {
		log.Fatalf("Failed to initialize linked account service: %v", err)
	}

	// 1. Nhân sự mẫu: một designer và một approver
	log.Info("🔄 [INIT] Step 1: Initializing sample staffs...")
	designer := seedStaff(ctx, staffService, models.Staff{
		Name:  "Nguyễn Thiết Kế",
		Email: "designer@example.com",
		Title: "Designer",
	})
	approver := seedStaff(ctx, staffService, models.Staff{
		Name:  "Trần Duyệt Bài",
		Email: "approver@example.com",
		Title: "Content Approver",
	})
	log.Info("✅ [INIT] Step 1: Sample staffs ready")

	// 2. Tài khoản liên kết mẫu với mapping vai trò đầy đủ
	log.Info("🔄 [INIT] Step 2: Initializing sample linked account...")
	existing, err := accountService.CountDocuments(ctx, bson.M{"externalId": "fb_page_sample"})
	if err != nil {
		log.Warnf("Failed to check sample linked account: %v", err)
	} else if existing > 0 {
		log.Info("✅ [INIT] Step 2: Sample linked account already exists")
	} else {
		account := models.LinkedAccount{
			Platform:   "facebook",
			Name:       "Fanpage Mẫu",
			ExternalID: "fb_page_sample",
		}
		if designer != nil {
			account.DesignerID = &designer.ID
		}
		if approver != nil {
			account.ApproverID = &approver.ID
		}
		if _, err := accountService.InsertOne(ctx, account); err != nil {
			log.Warnf("Failed to create sample linked account: %v", err)
		} else {
			log.Info("✅ [INIT] Step 2: Sample linked account created")
		}
	}

	log.Info("✅ [INIT] InitDefaultData completed")
}

// seedStaff tạo nhân sự mẫu nếu chưa có (email là unique index).
// Trả về nhân sự hiện hữu trong cả hai trường hợp, nil nếu không xác định được.
func seedStaff(ctx context.Context, service *marketingsvc.StaffService, staff models.Staff) *models.Staff {
	log := logger.GetAppLogger()

	created, err := service.InsertOne(ctx, staff)
	if err == nil {
		log.Infof("Created sample staff %s (%s)", created.Name, created.Email)
		return &created
	}
	if errors.Is(err, common.ErrMongoDuplicate) {
		found, findErr := service.FindOne(ctx, bson.M{"email": staff.Email}, nil)
		if findErr != nil {
			log.Warnf("Sample staff %s exists but could not be loaded: %v", staff.Email, findErr)
			return nil
		}
		return &found
	}
	log.Warnf("Failed to create sample staff %s: %v", staff.Email, err)
	return nil
}
