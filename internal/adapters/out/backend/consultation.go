package backend

import (
	"context"
	"strconv"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

func (a *BackendAdapter) ListHistory(ctx context.Context, user domain.UserKey) ([]domain.RawConsultation, error) {
	a.logger.Info("backend.history.fetch", out.LogFields{
		"user": user.String(),
	})

	var consultations []domain.RawConsultation
	resp, err := a.request(ctx).
		SetQueryParam("tipo", string(user.Role)).
		SetQueryParam("usuarioId", strconv.FormatInt(user.UserID, 10)).
		SetResult(&consultations).
		Get("/consulta/historico")
	if err = a.check("backend.history.fetch", resp, err, out.LogFields{"user": user.String()}); err != nil {
		return nil, err
	}

	a.logger.Debug("backend.history.fetch_success", out.LogFields{
		"user":  user.String(),
		"count": len(consultations),
	})

	return consultations, nil
}

// RequestExport is the handshake the backend expects before a history export.
func (a *BackendAdapter) RequestExport(ctx context.Context, user domain.UserKey) error {
	resp, err := a.request(ctx).
		SetQueryParam("usuarioId", strconv.FormatInt(user.UserID, 10)).
		Get("/api/historico/exportar")
	return a.check("backend.history.export", resp, err, out.LogFields{"user": user.String()})
}
