package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/careermap-backend/internal/domain/cache"
	"github.com/yungbote/careermap-backend/internal/domain/catalog"
	"github.com/yungbote/careermap-backend/internal/domain/chat"
	"github.com/yungbote/careermap-backend/internal/domain/graph"
	"github.com/yungbote/careermap-backend/internal/domain/user"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&user.User{},

		// Career/skill graph
		&graph.Node{},
		&graph.Edge{},

		// Per-user generated content
		&cache.UserNodeCache{},

		// Conversation log
		&chat.ChatMessage{},

		// University catalog
		&catalog.Course{},
		&catalog.Organization{},
	)
}
