package profile_service

import (
	"context"
	"encoding/json"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

// storedUserData is the flat user record the web client keeps under "userData".
type storedUserData struct {
	IDUsuario      int64              `json:"idUsuario,omitempty"`
	Nome           string             `json:"nome"`
	Sobrenome      string             `json:"sobrenome"`
	Email          string             `json:"email"`
	Telefone       string             `json:"telefone"`
	DataNascimento string             `json:"dataNascimento"`
	Genero         string             `json:"genero"`
	Endereco       domain.AddressData `json:"endereco"`
	FotoURL        string             `json:"fotoUrl,omitempty"`
}

func toStoredUserData(profile domain.ProfileFormData) storedUserData {
	return storedUserData{
		IDUsuario:      profile.IDUsuario,
		Nome:           profile.Personal.Nome,
		Sobrenome:      profile.Personal.Sobrenome,
		Email:          profile.Personal.Email,
		Telefone:       profile.Personal.Telefone,
		DataNascimento: profile.Personal.DataNascimento,
		Genero:         profile.Personal.Genero,
		Endereco:       profile.Address,
		FotoURL:        profile.FotoURL,
	}
}

func (u storedUserData) profile(user domain.UserKey) domain.ProfileFormData {
	profile := domain.DefaultProfile(user)
	profile.Personal.Nome = u.Nome
	profile.Personal.Sobrenome = u.Sobrenome
	profile.Personal.Email = u.Email
	profile.Personal.Telefone = u.Telefone
	profile.Personal.DataNascimento = u.DataNascimento
	if u.Genero != "" {
		profile.Personal.Genero = u.Genero
	}
	profile.Address = u.Endereco
	profile.FotoURL = u.FotoURL
	return profile
}

// persistProfile mirrors the displayed profile into local storage. Failures are
// logged only.
func (s *ProfileService) persistProfile(ctx context.Context, user domain.UserKey, profile domain.ProfileFormData) {
	items := map[string]interface{}{
		domain.StorageKeyProfileData: profile,
		domain.StorageKeyUserData:    toStoredUserData(profile),
	}

	for key, value := range items {
		data, err := json.Marshal(value)
		if err == nil {
			err = s.storagePort.SetItem(ctx, user, key, string(data))
		}
		if err != nil {
			s.logger.Warn("profile.storage.write_failed", out.LogFields{
				"user":  user.String(),
				"key":   key,
				"error": err.Error(),
			})
		}
	}
}

// storedProfile reads profileData, then userData. Unreadable entries are skipped.
func (s *ProfileService) storedProfile(ctx context.Context, user domain.UserKey) (domain.ProfileFormData, bool) {
	if raw, ok := s.readItem(ctx, user, domain.StorageKeyProfileData); ok {
		var profile domain.ProfileFormData
		err := json.Unmarshal([]byte(raw), &profile)
		if err == nil {
			profile.IDUsuario = user.UserID
			profile.Role = user.Role
			return profile, true
		}
		s.logger.Warn("profile.storage.parse_failed", out.LogFields{
			"user":  user.String(),
			"key":   domain.StorageKeyProfileData,
			"error": err.Error(),
		})
	}

	if raw, ok := s.readItem(ctx, user, domain.StorageKeyUserData); ok {
		var stored storedUserData
		err := json.Unmarshal([]byte(raw), &stored)
		if err == nil {
			return stored.profile(user), true
		}
		s.logger.Warn("profile.storage.parse_failed", out.LogFields{
			"user":  user.String(),
			"key":   domain.StorageKeyUserData,
			"error": err.Error(),
		})
	}

	return domain.ProfileFormData{}, false
}

func (s *ProfileService) readItem(ctx context.Context, user domain.UserKey, key string) (string, bool) {
	raw, ok, err := s.storagePort.GetItem(ctx, user, key)
	if err != nil {
		s.logger.Warn("profile.storage.read_failed", out.LogFields{
			"user":  user.String(),
			"key":   key,
			"error": err.Error(),
		})
		return "", false
	}
	return raw, ok && raw != ""
}
