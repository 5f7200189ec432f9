package main

import (
	"context"
	"marketing_content/config"
	models "marketing_content/internal/api/marketing/models"
	"marketing_content/internal/database"
	"marketing_content/internal/global"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	// Module Marketing: quy trình duyệt nội dung (tiền tố marketing_)
	global.MongoDB_ColNames.SocialPosts = "marketing_social_posts"
	global.MongoDB_ColNames.PostSteps = "marketing_post_steps"
	global.MongoDB_ColNames.Staffs = "marketing_staffs"
	global.MongoDB_ColNames.LinkedAccounts = "marketing_linked_accounts"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khơi tạo các index cho các collection
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName_Data
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.SocialPosts), models.SocialPost{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.PostSteps), models.PostStep{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Staffs), models.Staff{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.LinkedAccounts), models.LinkedAccount{})

	// Các index nhiều trường phục vụ truy vấn workflow (nhắc việc, lịch đăng, unique tài khoản)
	if err := database.CreateWorkflowAdditionalIndexes(context.TODO(), db); err != nil {
		logrus.Warnf("Failed to create workflow additional indexes: %v", err)
	}
}
