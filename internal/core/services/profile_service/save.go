package profile_service

import (
	"context"
	"fmt"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

// savePlan is what a section save captured before releasing the user lock.
type savePlan struct {
	section  domain.Section
	revision int
	working  domain.ProfileFormData
	oldEmail string
	photo    *domain.PhotoUpload
}

// saveResponse holds whichever part of the profile the backend returned.
type saveResponse struct {
	personal     *domain.PersonalData
	professional *domain.ProfessionalData
	address      *domain.AddressData
	fotoURL      string
}

// SaveSection validates one section, sends it and reconciles the answer with edits
// made while the request ran. The backend call runs without the user lock.
func (s *ProfileService) SaveSection(ctx context.Context, user domain.UserKey, section domain.Section) (*domain.SaveResult, error) {
	plan, early, err := s.beginSave(ctx, user, section)
	if err != nil || early != nil {
		return early, err
	}

	s.logger.Info("profile.save.started", out.LogFields{
		"user":     user.String(),
		"section":  string(section),
		"revision": plan.revision,
	})

	response, sendErr := s.send(ctx, user, plan)
	return s.finishSave(ctx, user, plan, response, sendErr)
}

func (s *ProfileService) beginSave(ctx context.Context, user domain.UserKey, section domain.Section) (*savePlan, *domain.SaveResult, error) {
	unlock := s.lock(user)
	defer unlock()

	form := s.formLocked(ctx, user)
	state, ok := form.Sections[section]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrUnknownSection, section)
	}
	if state.Status == domain.SectionSaving {
		return nil, nil, domain.ErrSaveInFlight
	}

	var notice *domain.Notification
	switch {
	case section == domain.SectionPhoto && form.PendingPhoto == nil:
		n := notifyNoPhoto
		notice = &n
	case (section == domain.SectionPersonal || section == domain.SectionProfessional) && !state.HasChanges():
		n := notifyNoChanges
		notice = &n
	}
	if notice != nil {
		return nil, &domain.SaveResult{Section: section, Notification: notice, Snapshot: form}, nil
	}

	if err := validateSection(section, form.Working); err != nil {
		if vErr, isValidation := domain.IsValidation(err); isValidation {
			state.Errors = vErr.Fields
			state.LastError = vErr.Message
			form.Sections[section] = state
			s.cachePort.StoreProfileForm(ctx, user, form)
		}
		s.logger.Warn("profile.save.invalid", out.LogFields{
			"user":    user.String(),
			"section": string(section),
			"error":   err.Error(),
		})
		return nil, nil, err
	}

	plan := &savePlan{
		section:  section,
		revision: state.Revision,
		working:  form.Working.Clone(),
		oldEmail: form.Display.Personal.Email,
	}
	if form.PendingPhoto != nil {
		photo := *form.PendingPhoto
		plan.photo = &photo
	}

	state.Status = domain.SectionSaving
	state.Errors = nil
	state.LastError = ""
	form.Sections[section] = state
	refresh(&form)
	s.cachePort.StoreProfileForm(ctx, user, form)

	return plan, nil, nil
}

func (s *ProfileService) send(ctx context.Context, user domain.UserKey, plan *savePlan) (saveResponse, error) {
	var (
		response saveResponse
		err      error
	)
	switch plan.section {
	case domain.SectionPersonal:
		response.personal, err = s.profilePort.UpdatePersonal(ctx, user, plan.working.Personal)
	case domain.SectionProfessional:
		response.professional, err = s.profilePort.UpdateProfessional(ctx, user, plan.working.Professional)
	case domain.SectionAddress:
		response.address, err = s.profilePort.UpdateAddress(ctx, user, plan.working.Address)
	case domain.SectionPhoto:
		response.fotoURL, err = s.profilePort.UploadPhoto(ctx, user, *plan.photo)
	}
	return response, err
}

func (s *ProfileService) finishSave(ctx context.Context, user domain.UserKey, plan *savePlan, response saveResponse, sendErr error) (*domain.SaveResult, error) {
	unlock := s.lock(user)
	defer unlock()

	form := s.formLocked(ctx, user)
	state := form.Sections[plan.section]

	if sendErr != nil {
		state.Status = domain.SectionError
		state.LastError = sendErr.Error()
		form.Sections[plan.section] = state
		refresh(&form)
		s.cachePort.StoreProfileForm(ctx, user, form)

		s.logger.Error("profile.save.failed", out.LogFields{
			"user":    user.String(),
			"section": string(plan.section),
			"error":   sendErr.Error(),
		})
		return nil, fmt.Errorf("profile.save.failed: %w", sendErr)
	}

	// Newer edits keep the section dirty and stay in the working copy
	current := state.Revision == plan.revision

	result := &domain.SaveResult{Section: plan.section}
	var notice domain.Notification

	switch plan.section {
	case domain.SectionPersonal:
		saved := mergePersonal(plan.working.Personal, response.personal)
		form.Display.Personal = saved
		if current {
			form.Working.Personal = saved
		}
		if saved.Email != plan.oldEmail {
			form.ForceLogout = true
			result.ForceLogout = true
		}
		notice = notifyPersonalSaved
	case domain.SectionProfessional:
		saved := mergeProfessional(plan.working.Professional, response.professional)
		form.Display.Professional = saved
		if current {
			form.Working.Professional = saved
		}
		notice = notifyProfessional
	case domain.SectionAddress:
		saved := mergeAddress(plan.working.Address, response.address)
		form.Display.Address = saved
		if current {
			form.Working.Address = saved
		}
		notice = notifyAddressSaved
	case domain.SectionPhoto:
		form.Display.FotoURL = response.fotoURL
		form.Working.FotoURL = response.fotoURL
		if current {
			form.PendingPhoto = nil
			form.PhotoPreview = ""
		}
		notice = notifyPhotoSaved
	}

	if current {
		state.Status = domain.SectionClean
	} else {
		state.Status = domain.SectionDirty
	}
	form.Sections[plan.section] = state
	refresh(&form)
	s.cachePort.StoreProfileForm(ctx, user, form)
	s.persistProfile(ctx, user, form.Display)

	if !result.ForceLogout {
		result.Notification = &notice
	}
	result.Snapshot = form

	s.logger.Info("profile.save.completed", out.LogFields{
		"user":        user.String(),
		"section":     string(plan.section),
		"superseded":  !current,
		"forceLogout": result.ForceLogout,
	})

	return result, nil
}
