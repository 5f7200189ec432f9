// Package database - Index bổ sung cho workflow (compound nhiều field) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"marketing_content/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateWorkflowAdditionalIndexes tạo các index bổ sung cho workflow.
// Gọi sau CreateIndexes cho từng collection workflow.
func CreateWorkflowAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	// marketing_post_steps: (assignedTo, status, dueDate) sparse, phục vụ quét nhắc việc theo người được giao
	postSteps := db.Collection(global.MongoDB_ColNames.PostSteps)
	if _, err := postSteps.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "assignedTo", Value: 1},
			{Key: "status", Value: 1},
			{Key: "dueDate", Value: 1},
		},
		Options: options.Index().SetName("post_step_assignee_due").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// marketing_social_posts: (status, scheduledDate) cho danh sách bài theo trạng thái và lịch đăng
	socialPosts := db.Collection(global.MongoDB_ColNames.SocialPosts)
	if _, err := socialPosts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "scheduledDate", Value: 1},
		},
		Options: options.Index().SetName("social_post_status_schedule"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// marketing_linked_accounts: (platform, externalId) unique, một tài khoản chỉ liên kết một lần
	linkedAccounts := db.Collection(global.MongoDB_ColNames.LinkedAccounts)
	if _, err := linkedAccounts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "platform", Value: 1},
			{Key: "externalId", Value: 1},
		},
		Options: options.Index().SetName("linked_account_platform_external_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
