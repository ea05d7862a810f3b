package out

import (
	"context"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

type ProfilePort interface {
	GetProfile(ctx context.Context, user domain.UserKey) (*domain.ProfileFormData, error)
	GetAddress(ctx context.Context, user domain.UserKey) (*domain.AddressData, error)

	// Section updates return the state the server persisted
	UpdatePersonal(ctx context.Context, user domain.UserKey, data domain.PersonalData) (*domain.PersonalData, error)
	UpdateProfessional(ctx context.Context, user domain.UserKey, data domain.ProfessionalData) (*domain.ProfessionalData, error)
	UpdateAddress(ctx context.Context, user domain.UserKey, data domain.AddressData) (*domain.AddressData, error)

	// UploadPhoto returns the public URL of the stored image
	UploadPhoto(ctx context.Context, user domain.UserKey, photo domain.PhotoUpload) (string, error)
}

type PostalCodePort interface {
	LookupPostalCode(ctx context.Context, cep string) (*domain.PostalAddress, error)
}
