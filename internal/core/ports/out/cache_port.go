package out

import (
	"context"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

type CachePort interface {
	// Canonical consultation lists
	GetHistory(ctx context.Context, user domain.UserKey) (*domain.ConsultationHistory, bool)
	StoreHistory(ctx context.Context, history domain.ConsultationHistory)
	InvalidateHistory(ctx context.Context, user domain.UserKey)
	InvalidateAllHistory(ctx context.Context)

	// Profile form sessions
	GetProfileForm(ctx context.Context, user domain.UserKey) (*domain.ProfileSnapshot, bool)
	StoreProfileForm(ctx context.Context, user domain.UserKey, form domain.ProfileSnapshot)
	InvalidateProfileForm(ctx context.Context, user domain.UserKey)

	// Postal code lookups, expire after the configured TTL
	GetPostalAddress(ctx context.Context, cep string) (*domain.PostalAddress, bool)
	StorePostalAddress(ctx context.Context, address domain.PostalAddress)
}
