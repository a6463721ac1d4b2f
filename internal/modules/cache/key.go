package cache

import (
	"strings"

	"github.com/google/uuid"

	types "github.com/yungbote/careermap-backend/internal/domain/cache"
)

// Key identifies one cache entry. Entries are never shared across users.
type Key struct {
	UserID uuid.UUID
	NodeID string
	Kind   types.Kind
}

func NewKey(userID uuid.UUID, nodeID string, kind types.Kind) Key {
	return Key{UserID: userID, NodeID: strings.TrimSpace(nodeID), Kind: kind}
}

func (k Key) Valid() bool {
	return k.UserID != uuid.Nil && k.NodeID != "" && k.Kind.Valid()
}

// String is the Redis key form.
func (k Key) String() string {
	return "careermap:content:" + k.UserID.String() + ":" + string(k.Kind) + ":" + k.NodeID
}
