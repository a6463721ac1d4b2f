package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/careermap-backend/internal/data/repos/cache"
	"github.com/yungbote/careermap-backend/internal/data/repos/catalog"
	"github.com/yungbote/careermap-backend/internal/data/repos/chat"
	"github.com/yungbote/careermap-backend/internal/data/repos/graph"
	"github.com/yungbote/careermap-backend/internal/data/repos/user"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type NodeRepo = graph.NodeRepo
type EdgeRepo = graph.EdgeRepo

type UserNodeCacheRepo = cache.UserNodeCacheRepo
type ChatMessageRepo = chat.ChatMessageRepo
type CatalogRepo = catalog.CatalogRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo { return user.NewUserRepo(db, log) }

func NewNodeRepo(db *gorm.DB, log *logger.Logger) NodeRepo { return graph.NewNodeRepo(db, log) }
func NewEdgeRepo(db *gorm.DB, log *logger.Logger) EdgeRepo { return graph.NewEdgeRepo(db, log) }

func NewUserNodeCacheRepo(db *gorm.DB, log *logger.Logger) UserNodeCacheRepo {
	return cache.NewUserNodeCacheRepo(db, log)
}

func NewChatMessageRepo(db *gorm.DB, log *logger.Logger) ChatMessageRepo {
	return chat.NewChatMessageRepo(db, log)
}

func NewCatalogRepo(db *gorm.DB, log *logger.Logger, useVector bool) CatalogRepo {
	return catalog.NewCatalogRepo(db, log, useVector)
}
