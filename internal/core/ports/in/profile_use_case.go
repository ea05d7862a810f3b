package in

import (
	"context"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

type ProfileUseCase interface {
	LoadProfile(ctx context.Context, user domain.UserKey, reload bool) (*domain.ProfileResult, error)
	GetProfile(ctx context.Context, user domain.UserKey) (*domain.ProfileSnapshot, error)

	// Field edits use dotted paths, e.g. "personal.telefone" or "endereco.cep"
	EditFields(ctx context.Context, user domain.UserKey, fields map[string]string) (*domain.ProfileSnapshot, error)
	LookupPostalCode(ctx context.Context, user domain.UserKey, cep string) (*domain.ProfileResult, error)
	SelectPhoto(ctx context.Context, user domain.UserKey, photo domain.PhotoUpload) (*domain.ProfileSnapshot, error)

	SaveSection(ctx context.Context, user domain.UserKey, section domain.Section) (*domain.SaveResult, error)
	Discard(ctx context.Context, user domain.UserKey) (*domain.ProfileResult, error)

	// Email change dialog
	ConfirmLogout(ctx context.Context, user domain.UserKey) error
	CancelLogout(ctx context.Context, user domain.UserKey) (*domain.ProfileResult, error)
}
