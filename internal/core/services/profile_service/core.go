package profile_service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/config"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/utils"
)

type ProfileService struct {
	profilePort    out.ProfilePort
	postalCodePort out.PostalCodePort
	cachePort      out.CachePort
	storagePort    out.StoragePort
	logger         out.LoggerPort
	photoMaxBytes  int64
	now            func() time.Time

	locks sync.Map
}

func NewProfileService(
	profilePort out.ProfilePort,
	postalCodePort out.PostalCodePort,
	cachePort out.CachePort,
	storagePort out.StoragePort,
	cfg *config.Config,
	logger out.LoggerPort,
) *ProfileService {
	return &ProfileService{
		profilePort:    profilePort,
		postalCodePort: postalCodePort,
		cachePort:      cachePort,
		storagePort:    storagePort,
		logger:         logger.WithModule("ProfileService"),
		photoMaxBytes:  cfg.Photo.MaxBytes,
		now:            time.Now,
	}
}

func (s *ProfileService) WithClock(now func() time.Time) *ProfileService {
	s.now = now
	return s
}

func (s *ProfileService) lock(user domain.UserKey) func() {
	mu, _ := s.locks.LoadOrStore(user.String(), &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	return mu.(*sync.Mutex).Unlock
}

var (
	notifyLoadFailed     = domain.NotifyError("Erro ao carregar perfil", "Não foi possível carregar os dados do perfil. Usando dados padrão.")
	notifyNoChanges      = domain.Notify("Nenhuma alteração detectada", "Altere algum campo para salvar")
	notifyNoPhoto        = domain.Notify("Nenhuma foto selecionada", "Selecione uma foto para atualizar")
	notifyPersonalSaved  = domain.Notify("Dados atualizados", "Todos os dados pessoais e profissionais foram atualizados com sucesso.")
	notifyProfessional   = domain.Notify("Dados profissionais atualizados", "Suas informações profissionais foram atualizadas com sucesso!")
	notifyAddressSaved   = domain.Notify("Endereço atualizado", "Seu endereço foi atualizado com sucesso!")
	notifyPhotoSaved     = domain.Notify("Foto atualizada", "Sua foto de perfil foi atualizada com sucesso!")
	notifyAddressFound   = domain.Notify("Endereço encontrado", "Os campos foram preenchidos automaticamente.")
	notifyAddressMissing = domain.NotifyError("CEP não encontrado", "Verifique o CEP informado e preencha o endereço manualmente.")
	notifyDiscarded      = domain.Notify("Alterações descartadas", "Suas alterações foram descartadas com sucesso.")
)

// Load

func (s *ProfileService) LoadProfile(ctx context.Context, user domain.UserKey, reload bool) (*domain.ProfileResult, error) {
	unlock := s.lock(user)
	defer unlock()

	if !reload {
		if form, exists := s.cachePort.GetProfileForm(ctx, user); exists {
			return &domain.ProfileResult{Snapshot: *form}, nil
		}
	}

	form, notification := s.loadLocked(ctx, user)
	return &domain.ProfileResult{Snapshot: form, Notification: notification}, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, user domain.UserKey) (*domain.ProfileSnapshot, error) {
	unlock := s.lock(user)
	defer unlock()

	form := s.formLocked(ctx, user)
	return &form, nil
}

func (s *ProfileService) formLocked(ctx context.Context, user domain.UserKey) domain.ProfileSnapshot {
	if form, exists := s.cachePort.GetProfileForm(ctx, user); exists {
		return *form
	}
	form, _ := s.loadLocked(ctx, user)
	return form
}

// loadLocked never fails: a backend failure falls back to local storage, then to
// defaults, and returns the notification the page showed in that case.
func (s *ProfileService) loadLocked(ctx context.Context, user domain.UserKey) (domain.ProfileSnapshot, *domain.Notification) {
	s.logger.Info("profile.load.started", out.LogFields{
		"user": user.String(),
	})

	var notification *domain.Notification
	profile, err := s.profilePort.GetProfile(ctx, user)
	if err == nil {
		address, addrErr := s.profilePort.GetAddress(ctx, user)
		if addrErr != nil {
			s.logger.Warn("profile.load.address_failed", out.LogFields{
				"user":  user.String(),
				"error": addrErr.Error(),
			})
		} else if address != nil {
			profile.Address = *address
		}
		profile.IDUsuario = user.UserID
		profile.Role = user.Role
		s.persistProfile(ctx, user, *profile)
	} else {
		s.logger.Error("profile.load.failed", out.LogFields{
			"user":  user.String(),
			"error": err.Error(),
		})

		fallback, found := s.storedProfile(ctx, user)
		if !found {
			fallback = domain.DefaultProfile(user)
		}
		profile = &fallback

		failed := notifyLoadFailed
		notification = &failed
	}

	form := newSnapshot(*profile, s.now())
	s.cachePort.StoreProfileForm(ctx, user, form)

	s.logger.Info("profile.load.completed", out.LogFields{
		"user":     user.String(),
		"fallback": notification != nil,
	})

	return form, notification
}

// Edits

func (s *ProfileService) EditFields(ctx context.Context, user domain.UserKey, fields map[string]string) (*domain.ProfileSnapshot, error) {
	unlock := s.lock(user)
	defer unlock()

	form := s.formLocked(ctx, user)
	working := form.Working.Clone()

	paths := make([]string, 0, len(fields))
	for path := range fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	type edit struct {
		section domain.Section
		field   string
	}
	edits := make([]edit, 0, len(paths))
	for _, path := range paths {
		section, field, err := SetField(&working, path, fields[path])
		if err != nil {
			return nil, err
		}
		edits = append(edits, edit{section: section, field: field})
	}

	form.Working = working
	for _, e := range edits {
		touch(&form, e.section, e.field)
	}
	refresh(&form)
	s.cachePort.StoreProfileForm(ctx, user, form)

	return &form, nil
}

func (s *ProfileService) LookupPostalCode(ctx context.Context, user domain.UserKey, cep string) (*domain.ProfileResult, error) {
	digits := utils.OnlyDigits(cep)
	if len(digits) < 8 {
		form, err := s.GetProfile(ctx, user)
		if err != nil {
			return nil, err
		}
		return &domain.ProfileResult{Snapshot: *form}, nil
	}

	address, err := s.lookupAddress(ctx, digits)
	if errors.Is(err, domain.ErrPostalCodeNotFound) {
		form, getErr := s.GetProfile(ctx, user)
		if getErr != nil {
			return nil, getErr
		}
		missing := notifyAddressMissing
		return &domain.ProfileResult{Snapshot: *form, Notification: &missing}, nil
	}
	if err != nil {
		s.logger.Error("profile.cep.lookup_failed", out.LogFields{
			"user":  user.String(),
			"cep":   digits,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("profile.cep.lookup_failed: %w", err)
	}

	unlock := s.lock(user)
	defer unlock()

	form := s.formLocked(ctx, user)
	form.Working.Address.Rua = address.Rua
	form.Working.Address.Bairro = address.Bairro
	form.Working.Address.Cidade = address.Cidade
	form.Working.Address.Estado = address.Estado
	form.Working.Address.Cep = utils.FormatCep(pick(address.Cep, digits))
	touch(&form, domain.SectionAddress, "endereco.cep")
	refresh(&form)
	s.cachePort.StoreProfileForm(ctx, user, form)

	found := notifyAddressFound
	return &domain.ProfileResult{Snapshot: form, Notification: &found}, nil
}

func (s *ProfileService) lookupAddress(ctx context.Context, digits string) (*domain.PostalAddress, error) {
	if address, exists := s.cachePort.GetPostalAddress(ctx, digits); exists {
		return address, nil
	}

	address, err := s.postalCodePort.LookupPostalCode(ctx, digits)
	if err != nil {
		return nil, err
	}
	s.cachePort.StorePostalAddress(ctx, *address)
	return address, nil
}

func (s *ProfileService) SelectPhoto(ctx context.Context, user domain.UserKey, photo domain.PhotoUpload) (*domain.ProfileSnapshot, error) {
	if err := s.validatePhoto(photo); err != nil {
		return nil, err
	}

	unlock := s.lock(user)
	defer unlock()

	form := s.formLocked(ctx, user)
	form.PendingPhoto = &photo
	form.PhotoPreview = photoPreview(photo)
	touch(&form, domain.SectionPhoto, "")
	refresh(&form)
	s.cachePort.StoreProfileForm(ctx, user, form)

	return &form, nil
}

func (s *ProfileService) validatePhoto(photo domain.PhotoUpload) error {
	message := ""
	switch {
	case len(photo.Data) == 0:
		message = "Arquivo vazio"
	case !strings.HasPrefix(photo.ContentType, "image/"):
		message = "Selecione um arquivo de imagem"
	case s.photoMaxBytes > 0 && int64(len(photo.Data)) > s.photoMaxBytes:
		message = fmt.Sprintf("A imagem deve ter no máximo %d MB", s.photoMaxBytes/(1024*1024))
	}
	if message == "" {
		return nil
	}
	return &domain.ValidationError{
		Message: "Foto inválida",
		Fields:  map[string]string{"foto": message},
		Cause:   domain.ErrInvalidPhoto,
	}
}

func (s *ProfileService) Discard(ctx context.Context, user domain.UserKey) (*domain.ProfileResult, error) {
	unlock := s.lock(user)
	defer unlock()

	form := s.formLocked(ctx, user)
	form.Working = form.Display.Clone()
	form.PendingPhoto = nil
	form.PhotoPreview = ""
	for section, state := range form.Sections {
		if state.Status == domain.SectionSaving {
			state.Revision++
		} else {
			state.Status = domain.SectionClean
		}
		state.Errors = nil
		state.LastError = ""
		form.Sections[section] = state
	}
	refresh(&form)
	s.cachePort.StoreProfileForm(ctx, user, form)

	discarded := notifyDiscarded
	return &domain.ProfileResult{Snapshot: form, Notification: &discarded}, nil
}

// Email change dialog

// ConfirmLogout drops the session the way the page did before sending the user to
// the login screen.
func (s *ProfileService) ConfirmLogout(ctx context.Context, user domain.UserKey) error {
	err := s.storagePort.RemoveItems(ctx, user,
		domain.StorageKeyUserData,
		domain.StorageKeyAuthToken,
		domain.StorageKeyProfileData,
	)
	if err != nil {
		s.logger.Error("profile.logout.storage_failed", out.LogFields{
			"user":  user.String(),
			"error": err.Error(),
		})
		return fmt.Errorf("profile.logout.storage_failed: %w", err)
	}

	s.cachePort.InvalidateProfileForm(ctx, user)
	s.logger.Info("profile.logout.confirmed", out.LogFields{
		"user": user.String(),
	})
	return nil
}

func (s *ProfileService) CancelLogout(ctx context.Context, user domain.UserKey) (*domain.ProfileResult, error) {
	unlock := s.lock(user)
	defer unlock()

	form := s.formLocked(ctx, user)
	form.ForceLogout = false
	s.cachePort.StoreProfileForm(ctx, user, form)

	saved := notifyPersonalSaved
	return &domain.ProfileResult{Snapshot: form, Notification: &saved}, nil
}
