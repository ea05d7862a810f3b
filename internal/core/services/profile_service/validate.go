package profile_service

import (
	"strings"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/utils"
)

// validationResult keeps the title of the first failed check, the toast the form shows.
type validationResult struct {
	title  string
	fields map[string]string
}

func (v *validationResult) fail(field, title, message string) {
	if v.fields == nil {
		v.fields = make(map[string]string)
	}
	if _, exists := v.fields[field]; exists {
		return
	}
	if v.title == "" {
		v.title = title
	}
	v.fields[field] = message
}

func (v *validationResult) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return domain.NewValidationError(v.title, v.fields)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validatePersonal(data domain.PersonalData) error {
	var v validationResult

	if blank(data.Nome) {
		v.fail("nome", "Nome obrigatório", "Nome é obrigatório")
	}
	if blank(data.Sobrenome) {
		v.fail("sobrenome", "Sobrenome obrigatório", "Sobrenome é obrigatório")
	}
	if blank(data.Email) {
		v.fail("email", "Email obrigatório", "Email é obrigatório")
	} else if !utils.IsEmail(data.Email) {
		v.fail("email", "Email inválido", "Email inválido")
	}
	if blank(data.Telefone) {
		v.fail("telefone", "Telefone obrigatório", "Telefone é obrigatório")
	} else if !utils.IsPhone(data.Telefone) {
		v.fail("telefone", "Telefone inválido", "Telefone inválido - use o formato (XX) XXXXX-XXXX ou (XX) XXXX-XXXX")
	}

	return v.err()
}

func validateProfessional(role domain.Role, data domain.ProfessionalData) error {
	var v validationResult

	if role.HasLicense() {
		if blank(data.Crp) {
			v.fail("crp", "CRP obrigatório", "CRP é obrigatório")
		}
		if blank(data.Especialidade) {
			v.fail("especialidade", "Especialidade obrigatória", "Especialidade é obrigatória")
		}
	}
	if data.Renda != nil && *data.Renda < 0 {
		v.fail("renda", "Renda inválida", "Renda não pode ser negativa")
	}

	return v.err()
}

func validateAddress(data domain.AddressData) error {
	var v validationResult

	if blank(data.Cep) {
		v.fail("endereco.cep", "CEP obrigatório", "CEP é obrigatório")
	} else if !utils.IsCep(data.Cep) {
		v.fail("endereco.cep", "CEP inválido", "Formato de CEP inválido. Ex: 12345-678")
	}
	if blank(data.Numero) {
		v.fail("endereco.numero", "Número obrigatório", "Número é obrigatório")
	}

	return v.err()
}

func validateSection(section domain.Section, form domain.ProfileFormData) error {
	switch section {
	case domain.SectionPersonal:
		return validatePersonal(form.Personal)
	case domain.SectionProfessional:
		return validateProfessional(form.Role, form.Professional)
	case domain.SectionAddress:
		return validateAddress(form.Address)
	}
	return nil
}
