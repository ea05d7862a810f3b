package out

import (
	"context"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

type ConsultationPort interface {
	// Consultation history of one user, as the backend sends it
	ListHistory(ctx context.Context, user domain.UserKey) ([]domain.RawConsultation, error)

	// Export handshake; the file itself is built from the local list
	RequestExport(ctx context.Context, user domain.UserKey) error
}
