package profile_service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

func TestSaveSection_CleanSectionSkipsBackend(t *testing.T) {
	env := newTestEnv(t)
	env.load(t, testUser)

	result, err := env.service.SaveSection(context.Background(), testUser, domain.SectionPersonal)
	require.NoError(t, err)

	require.NotNil(t, result.Notification)
	assert.Equal(t, "Nenhuma alteração detectada", result.Notification.Title)
	assert.Equal(t, "Altere algum campo para salvar", result.Notification.Description)
	assert.Zero(t, env.profiles.calls())
}

func TestSaveSection_PhotoWithoutSelection(t *testing.T) {
	env := newTestEnv(t)
	env.load(t, testUser)

	result, err := env.service.SaveSection(context.Background(), testUser, domain.SectionPhoto)
	require.NoError(t, err)

	require.NotNil(t, result.Notification)
	assert.Equal(t, "Nenhuma foto selecionada", result.Notification.Title)
	assert.Zero(t, env.profiles.calls())
}

func TestSaveSection_ValidationBlocksBackend(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.load(t, testUser)
	env.edit(t, testUser, map[string]string{"email": "invalido", "nome": " "})

	_, err := env.service.SaveSection(ctx, testUser, domain.SectionPersonal)
	vErr, isValidation := domain.IsValidation(err)
	require.True(t, isValidation)
	assert.Equal(t, "Nome obrigatório", vErr.Message)
	assert.Equal(t, "Email inválido", vErr.Fields["email"])
	assert.Zero(t, env.profiles.calls())

	form, err := env.service.GetProfile(ctx, testUser)
	require.NoError(t, err)
	state := form.Sections[domain.SectionPersonal]
	assert.Equal(t, domain.SectionDirty, state.Status)
	assert.Equal(t, "Email inválido", state.Errors["email"])

	// Editing a field clears only its own error
	form = env.edit(t, testUser, map[string]string{"email": "ok@example.com"})
	assert.NotContains(t, form.Sections[domain.SectionPersonal].Errors, "email")
	assert.Contains(t, form.Sections[domain.SectionPersonal].Errors, "nome")
}

func TestSaveSection_AddressRequiresValidCep(t *testing.T) {
	env := newTestEnv(t)
	env.load(t, testUser)
	env.edit(t, testUser, map[string]string{"endereco.cep": "0123"})

	_, err := env.service.SaveSection(context.Background(), testUser, domain.SectionAddress)
	vErr, isValidation := domain.IsValidation(err)
	require.True(t, isValidation)
	assert.Equal(t, "Formato de CEP inválido. Ex: 12345-678", vErr.Fields["endereco.cep"])
}

func TestSaveSection_ProfessionalNeedsLicenseForVolunteers(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.load(t, testVolunteer)
	env.edit(t, testVolunteer, map[string]string{"crp": ""})

	_, err := env.service.SaveSection(ctx, testVolunteer, domain.SectionProfessional)
	vErr, isValidation := domain.IsValidation(err)
	require.True(t, isValidation)
	assert.Equal(t, "CRP é obrigatório", vErr.Fields["crp"])

	env.edit(t, testVolunteer, map[string]string{"crp": "06/999999", "bio": "Atendo adultos"})
	result, err := env.service.SaveSection(ctx, testVolunteer, domain.SectionProfessional)
	require.NoError(t, err)
	assert.Equal(t, "Dados profissionais atualizados", result.Notification.Title)
	assert.Equal(t, "Atendo adultos", result.Snapshot.Display.Professional.Bio)
	assert.Equal(t, domain.SectionClean, result.Snapshot.Sections[domain.SectionProfessional].Status)
}

func TestSaveSection_PersonalSuccess(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.load(t, testUser)
	env.edit(t, testUser, map[string]string{"nome": "Joana", "telefone": "1134567890"})

	result, err := env.service.SaveSection(ctx, testUser, domain.SectionPersonal)
	require.NoError(t, err)

	assert.False(t, result.ForceLogout)
	require.NotNil(t, result.Notification)
	assert.Equal(t, "Dados atualizados", result.Notification.Title)
	assert.Equal(t, "Joana", result.Snapshot.Display.Personal.Nome)
	assert.Equal(t, "(11) 3456-7890", result.Snapshot.Display.Personal.Telefone)
	assert.Equal(t, domain.SectionClean, result.Snapshot.Sections[domain.SectionPersonal].Status)
	assert.False(t, result.Snapshot.FormChanged)
	assert.Equal(t, 1, env.profiles.calls())
}

func TestSaveSection_MergesPartialServerResponse(t *testing.T) {
	env := newTestEnv(t)
	env.load(t, testUser)
	env.edit(t, testUser, map[string]string{"endereco.numero": "200", "endereco.complemento": "Apto 3"})

	result, err := env.service.SaveSection(context.Background(), testUser, domain.SectionAddress)
	require.NoError(t, err)

	address := result.Snapshot.Display.Address
	assert.Equal(t, "200", address.Numero)
	assert.Equal(t, "Apto 3", address.Complemento)
	assert.Equal(t, "Rua A", address.Rua)
	assert.Equal(t, "Endereço atualizado", result.Notification.Title)
}

func TestSaveSection_BackendFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.load(t, testUser)
	env.edit(t, testUser, map[string]string{"nome": "Joana"})
	env.profiles.updateErr = &domain.NetworkError{Op: "backend.update_personal", Status: 500}

	_, err := env.service.SaveSection(ctx, testUser, domain.SectionPersonal)
	_, isNetwork := domain.IsNetwork(err)
	require.True(t, isNetwork)

	form, err := env.service.GetProfile(ctx, testUser)
	require.NoError(t, err)
	state := form.Sections[domain.SectionPersonal]
	assert.Equal(t, domain.SectionError, state.Status)
	assert.NotEmpty(t, state.LastError)
	assert.Equal(t, "Joana", form.Working.Personal.Nome)
	assert.Equal(t, "Maria", form.Display.Personal.Nome)
	assert.True(t, form.FormChanged)

	// A failed section can be retried
	env.profiles.updateErr = nil
	result, err := env.service.SaveSection(ctx, testUser, domain.SectionPersonal)
	require.NoError(t, err)
	assert.Equal(t, "Joana", result.Snapshot.Display.Personal.Nome)
}

func TestSaveSection_Photo(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.load(t, testUser)
	_, err := env.service.SelectPhoto(ctx, testUser, domain.PhotoUpload{FileName: "a.png", ContentType: "image/png", Data: []byte("png")})
	require.NoError(t, err)

	result, err := env.service.SaveSection(ctx, testUser, domain.SectionPhoto)
	require.NoError(t, err)

	assert.Equal(t, "Foto atualizada", result.Notification.Title)
	assert.Equal(t, "https://cdn.example.com/new.png", result.Snapshot.Display.FotoURL)
	assert.Equal(t, "https://cdn.example.com/new.png", result.Snapshot.Working.FotoURL)
	assert.Nil(t, result.Snapshot.PendingPhoto)
	assert.Empty(t, result.Snapshot.PhotoPreview)
	assert.Equal(t, domain.SectionClean, result.Snapshot.Sections[domain.SectionPhoto].Status)
}

func TestSaveSection_InFlightGuardKeepsNewerEdits(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.load(t, testUser)
	env.edit(t, testUser, map[string]string{"nome": "Joana"})

	env.profiles.started = make(chan struct{})
	env.profiles.release = make(chan struct{})

	type saveOutcome struct {
		result *domain.SaveResult
		err    error
	}
	done := make(chan saveOutcome, 1)
	go func() {
		result, err := env.service.SaveSection(ctx, testUser, domain.SectionPersonal)
		done <- saveOutcome{result: result, err: err}
	}()
	<-env.profiles.started

	_, err := env.service.SaveSection(ctx, testUser, domain.SectionPersonal)
	assert.ErrorIs(t, err, domain.ErrSaveInFlight)

	form := env.edit(t, testUser, map[string]string{"sobrenome": "Costa"})
	assert.Equal(t, domain.SectionSaving, form.Sections[domain.SectionPersonal].Status)
	assert.True(t, form.FormChanged)

	close(env.profiles.release)
	outcome := <-done
	require.NoError(t, outcome.err)

	snapshot := outcome.result.Snapshot
	assert.Equal(t, "Joana", snapshot.Display.Personal.Nome)
	assert.Equal(t, "Silva", snapshot.Display.Personal.Sobrenome)
	assert.Equal(t, "Joana", snapshot.Working.Personal.Nome)
	assert.Equal(t, "Costa", snapshot.Working.Personal.Sobrenome)
	assert.Equal(t, domain.SectionDirty, snapshot.Sections[domain.SectionPersonal].Status)
	assert.True(t, snapshot.FormChanged)
}

func TestSaveSection_UnknownSection(t *testing.T) {
	env := newTestEnv(t)
	env.load(t, testUser)

	_, err := env.service.SaveSection(context.Background(), testUser, domain.Section("bogus"))
	assert.ErrorIs(t, err, domain.ErrUnknownSection)
}
