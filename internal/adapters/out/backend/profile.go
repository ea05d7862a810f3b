package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

func profilePath(user domain.UserKey, suffix string) string {
	if suffix == "" {
		return fmt.Sprintf("/perfil/%s", user.Role)
	}
	return fmt.Sprintf("/perfil/%s/%s", user.Role, suffix)
}

func userID(user domain.UserKey) string {
	return strconv.FormatInt(user.UserID, 10)
}

func (a *BackendAdapter) GetProfile(ctx context.Context, user domain.UserKey) (*domain.ProfileFormData, error) {
	a.logger.Info("backend.profile.fetch", out.LogFields{
		"user": user.String(),
	})

	var payload apiProfile
	resp, err := a.request(ctx).
		SetQueryParam("usuarioId", userID(user)).
		SetResult(&payload).
		Get(profilePath(user, ""))
	if err = a.check("backend.profile.fetch", resp, err, out.LogFields{"user": user.String()}); err != nil {
		return nil, err
	}

	profile := payload.domain(user)
	return &profile, nil
}

func (a *BackendAdapter) GetAddress(ctx context.Context, user domain.UserKey) (*domain.AddressData, error) {
	var payload apiAddress
	resp, err := a.request(ctx).
		SetQueryParam("usuarioId", userID(user)).
		SetResult(&payload).
		Get(profilePath(user, "endereco"))
	if err = a.check("backend.profile.address_fetch", resp, err, out.LogFields{"user": user.String()}); err != nil {
		return nil, err
	}

	address := fromAPIAddress(&payload)
	return &address, nil
}

func (a *BackendAdapter) UpdatePersonal(ctx context.Context, user domain.UserKey, data domain.PersonalData) (*domain.PersonalData, error) {
	var payload apiPersonal
	resp, err := a.request(ctx).
		SetQueryParam("usuarioId", userID(user)).
		SetBody(toAPIPersonal(data)).
		SetResult(&payload).
		Patch(profilePath(user, "dados-pessoais"))
	if err = a.check("backend.profile.update_personal", resp, err, out.LogFields{"user": user.String()}); err != nil {
		return nil, err
	}

	if !hasJSONBody(resp.Body()) {
		return &data, nil
	}
	saved := payload.domain()
	return &saved, nil
}

func (a *BackendAdapter) UpdateProfessional(ctx context.Context, user domain.UserKey, data domain.ProfessionalData) (*domain.ProfessionalData, error) {
	var payload apiProfessional
	resp, err := a.request(ctx).
		SetQueryParam("usuarioId", userID(user)).
		SetBody(toAPIProfessional(data)).
		SetResult(&payload).
		Patch(profilePath(user, "dados-profissionais"))
	if err = a.check("backend.profile.update_professional", resp, err, out.LogFields{"user": user.String()}); err != nil {
		return nil, err
	}

	if !hasJSONBody(resp.Body()) {
		return &data, nil
	}
	saved := payload.domain()
	return &saved, nil
}

func (a *BackendAdapter) UpdateAddress(ctx context.Context, user domain.UserKey, data domain.AddressData) (*domain.AddressData, error) {
	var payload apiAddress
	resp, err := a.request(ctx).
		SetQueryParam("usuarioId", userID(user)).
		SetBody(toAPIAddress(data)).
		SetResult(&payload).
		Patch(profilePath(user, "endereco"))
	if err = a.check("backend.profile.update_address", resp, err, out.LogFields{"user": user.String()}); err != nil {
		return nil, err
	}

	if !hasJSONBody(resp.Body()) {
		return &data, nil
	}
	saved := fromAPIAddress(&payload)
	return &saved, nil
}

func (a *BackendAdapter) UploadPhoto(ctx context.Context, user domain.UserKey, photo domain.PhotoUpload) (string, error) {
	a.logger.Info("backend.profile.photo_upload", out.LogFields{
		"user": user.String(),
		"size": len(photo.Data),
		"type": photo.ContentType,
		"file": photo.FileName,
	})

	var payload apiPhotoResponse
	resp, err := a.request(ctx).
		SetQueryParam("usuarioId", userID(user)).
		SetMultipartField("file", photo.FileName, photo.ContentType, bytes.NewReader(photo.Data)).
		SetResult(&payload).
		Post(profilePath(user, "foto"))
	if err = a.check("backend.profile.photo_upload", resp, err, out.LogFields{"user": user.String()}); err != nil {
		return "", err
	}

	if payload.URL == "" {
		a.logger.Error("backend.profile.photo_upload_failed", out.LogFields{
			"user":   user.String(),
			"reason": "missing url",
		})
		return "", &domain.NetworkError{Op: "backend.profile.photo_upload", Err: errors.New("response has no url")}
	}
	return payload.URL, nil
}

// hasJSONBody reports whether a PATCH answered with a document; some endpoints reply 204.
func hasJSONBody(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
