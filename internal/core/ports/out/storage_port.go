package out

import (
	"context"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

// StoragePort is the per-user key/value store the web client knows as local storage.
type StoragePort interface {
	GetItem(ctx context.Context, user domain.UserKey, key string) (string, bool, error)
	SetItem(ctx context.Context, user domain.UserKey, key, value string) error
	RemoveItems(ctx context.Context, user domain.UserKey, keys ...string) error
}

type FeedbackSyncPort interface {
	PublishFeedback(ctx context.Context, event domain.FeedbackSubmitted) error
}
