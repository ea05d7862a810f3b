package profile_service

import (
	"encoding/base64"
	"time"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

func newSnapshot(profile domain.ProfileFormData, loadedAt time.Time) domain.ProfileSnapshot {
	sections := make(map[domain.Section]domain.SectionState, len(domain.Sections))
	for _, section := range domain.Sections {
		sections[section] = domain.SectionState{Status: domain.SectionClean}
	}

	return domain.ProfileSnapshot{
		Working:  profile.Clone(),
		Display:  profile.Clone(),
		Sections: sections,
		LoadedAt: loadedAt,
	}
}

// refresh recomputes the derived flag after any state change.
func refresh(form *domain.ProfileSnapshot) {
	form.FormChanged = false
	for _, state := range form.Sections {
		if state.HasChanges() {
			form.FormChanged = true
			return
		}
	}
}

// touch records an edit. A section that is being saved stays in saving; the bumped
// revision tells the save to leave the newer edit in place.
func touch(form *domain.ProfileSnapshot, section domain.Section, field string) {
	state := form.Sections[section]
	state.Revision++
	if state.Status != domain.SectionSaving {
		state.Status = domain.SectionDirty
	}
	if field != "" && state.Errors != nil {
		delete(state.Errors, field)
		if len(state.Errors) == 0 {
			state.Errors = nil
		}
	}
	form.Sections[section] = state
}

func photoPreview(photo domain.PhotoUpload) string {
	return "data:" + photo.ContentType + ";base64," + base64.StdEncoding.EncodeToString(photo.Data)
}

func pick(server, sent string) string {
	if server != "" {
		return server
	}
	return sent
}

func mergePersonal(sent domain.PersonalData, server *domain.PersonalData) domain.PersonalData {
	if server == nil {
		return sent
	}
	return domain.PersonalData{
		Nome:           pick(server.Nome, sent.Nome),
		Sobrenome:      pick(server.Sobrenome, sent.Sobrenome),
		Email:          pick(server.Email, sent.Email),
		Telefone:       pick(server.Telefone, sent.Telefone),
		DataNascimento: pick(server.DataNascimento, sent.DataNascimento),
		Genero:         pick(server.Genero, sent.Genero),
		CPF:            pick(server.CPF, sent.CPF),
	}
}

func mergeProfessional(sent domain.ProfessionalData, server *domain.ProfessionalData) domain.ProfessionalData {
	if server == nil {
		return sent
	}
	merged := domain.ProfessionalData{
		Crp:            pick(server.Crp, sent.Crp),
		Especialidade:  pick(server.Especialidade, sent.Especialidade),
		Bio:            pick(server.Bio, sent.Bio),
		Profissao:      pick(server.Profissao, sent.Profissao),
		AreaOrientacao: pick(server.AreaOrientacao, sent.AreaOrientacao),
		ComoSoube:      pick(server.ComoSoube, sent.ComoSoube),
		Renda:          sent.Renda,
	}
	if server.Renda != nil {
		merged.Renda = server.Renda
	}
	return merged
}

func mergeAddress(sent domain.AddressData, server *domain.AddressData) domain.AddressData {
	if server == nil {
		return sent
	}
	return domain.AddressData{
		Rua:         pick(server.Rua, sent.Rua),
		Numero:      pick(server.Numero, sent.Numero),
		Complemento: pick(server.Complemento, sent.Complemento),
		Bairro:      pick(server.Bairro, sent.Bairro),
		Cidade:      pick(server.Cidade, sent.Cidade),
		Estado:      pick(server.Estado, sent.Estado),
		Cep:         pick(server.Cep, sent.Cep),
	}
}
