package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/careermap-backend/internal/data/repos"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

// Repos is empty when no database is configured.
type Repos struct {
	User          repos.UserRepo
	Node          repos.NodeRepo
	Edge          repos.EdgeRepo
	UserNodeCache repos.UserNodeCacheRepo
	ChatMessage   repos.ChatMessageRepo
	Catalog       repos.CatalogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger, useVector bool) Repos {
	if db == nil {
		return Repos{}
	}
	log.Info("Wiring repos...")
	return Repos{
		User:          repos.NewUserRepo(db, log),
		Node:          repos.NewNodeRepo(db, log),
		Edge:          repos.NewEdgeRepo(db, log),
		UserNodeCache: repos.NewUserNodeCacheRepo(db, log),
		ChatMessage:   repos.NewChatMessageRepo(db, log),
		Catalog:       repos.NewCatalogRepo(db, log, useVector),
	}
}
