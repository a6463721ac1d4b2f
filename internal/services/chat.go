package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/yungbote/careermap-backend/internal/modules/chat"
	"github.com/yungbote/careermap-backend/internal/platform/apierr"
	"github.com/yungbote/careermap-backend/internal/platform/ctxutil"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

var errMissingContent = apierr.New(http.StatusBadRequest, "missing_content", errors.New("Content is required"))

type ChatService interface {
	Send(ctx context.Context, content string) (*chat.Reply, error)
}

type chatService struct {
	log       *logger.Logger
	responder *chat.Responder
}

func NewChatService(log *logger.Logger, responder *chat.Responder) ChatService {
	return &chatService{log: log.With("service", "ChatService"), responder: responder}
}

// Send replies to content and logs the exchange for signed-in callers.
func (cs *chatService) Send(ctx context.Context, content string) (*chat.Reply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errMissingContent
	}
	reply := cs.responder.Reply(ctx, content, ctxutil.University(ctx))
	cs.responder.Persist(ctx, ctxutil.UserID(ctx), content, reply.Text)
	return &reply, nil
}
