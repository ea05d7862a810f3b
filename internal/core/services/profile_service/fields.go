package profile_service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/utils"
)

// fieldSetter writes one form field and reports the section it belongs to.
type fieldSetter struct {
	section domain.Section
	set     func(form *domain.ProfileFormData, value string) error
}

var fieldSetters = map[string]fieldSetter{
	"nome":           personalField(func(p *domain.PersonalData, v string) { p.Nome = v }),
	"sobrenome":      personalField(func(p *domain.PersonalData, v string) { p.Sobrenome = v }),
	"email":          personalField(func(p *domain.PersonalData, v string) { p.Email = v }),
	"telefone":       personalField(func(p *domain.PersonalData, v string) { p.Telefone = utils.FormatPhone(v) }),
	"dataNascimento": personalField(func(p *domain.PersonalData, v string) { p.DataNascimento = v }),
	"genero":         personalField(func(p *domain.PersonalData, v string) { p.Genero = v }),
	"cpf":            personalField(func(p *domain.PersonalData, v string) { p.CPF = v }),

	"crp":            professionalField(func(p *domain.ProfessionalData, v string) { p.Crp = v }),
	"especialidade":  professionalField(func(p *domain.ProfessionalData, v string) { p.Especialidade = v }),
	"bio":            professionalField(func(p *domain.ProfessionalData, v string) { p.Bio = v }),
	"profissao":      professionalField(func(p *domain.ProfessionalData, v string) { p.Profissao = v }),
	"areaOrientacao": professionalField(func(p *domain.ProfessionalData, v string) { p.AreaOrientacao = v }),
	"comoSoube":      professionalField(func(p *domain.ProfessionalData, v string) { p.ComoSoube = v }),
	"renda": {
		section: domain.SectionProfessional,
		set: func(form *domain.ProfileFormData, value string) error {
			value = strings.TrimSpace(value)
			if value == "" {
				form.Professional.Renda = nil
				return nil
			}
			renda, err := strconv.ParseFloat(strings.Replace(value, ",", ".", 1), 64)
			if err != nil {
				return domain.NewValidationError("Renda inválida", map[string]string{
					"renda": "Informe um valor numérico",
				})
			}
			form.Professional.Renda = &renda
			return nil
		},
	},

	"endereco.rua":         addressField(func(a *domain.AddressData, v string) { a.Rua = v }),
	"endereco.numero":      addressField(func(a *domain.AddressData, v string) { a.Numero = v }),
	"endereco.complemento": addressField(func(a *domain.AddressData, v string) { a.Complemento = v }),
	"endereco.bairro":      addressField(func(a *domain.AddressData, v string) { a.Bairro = v }),
	"endereco.cidade":      addressField(func(a *domain.AddressData, v string) { a.Cidade = v }),
	"endereco.estado":      addressField(func(a *domain.AddressData, v string) { a.Estado = v }),
	"endereco.cep":         addressField(func(a *domain.AddressData, v string) { a.Cep = utils.FormatCep(v) }),
}

func personalField(set func(*domain.PersonalData, string)) fieldSetter {
	return fieldSetter{section: domain.SectionPersonal, set: func(form *domain.ProfileFormData, value string) error {
		set(&form.Personal, value)
		return nil
	}}
}

func professionalField(set func(*domain.ProfessionalData, string)) fieldSetter {
	return fieldSetter{section: domain.SectionProfessional, set: func(form *domain.ProfileFormData, value string) error {
		set(&form.Professional, value)
		return nil
	}}
}

func addressField(set func(*domain.AddressData, string)) fieldSetter {
	return fieldSetter{section: domain.SectionAddress, set: func(form *domain.ProfileFormData, value string) error {
		set(&form.Address, value)
		return nil
	}}
}

// fieldName accepts "telefone", "personal.telefone", "endereco.cep" and "address.cep".
func fieldName(path string) string {
	for _, prefix := range []string{"personal.", "professional."} {
		if strings.HasPrefix(path, prefix) {
			return strings.TrimPrefix(path, prefix)
		}
	}
	if strings.HasPrefix(path, "address.") {
		return "endereco." + strings.TrimPrefix(path, "address.")
	}
	return path
}

// SetField applies one edit with the same masking the form inputs use.
func SetField(form *domain.ProfileFormData, path string, value string) (domain.Section, string, error) {
	name := fieldName(path)
	setter, ok := fieldSetters[name]
	if !ok {
		return "", name, fmt.Errorf("%w: %s", domain.ErrUnknownField, path)
	}
	if err := setter.set(form, value); err != nil {
		return "", name, err
	}
	return setter.section, name, nil
}
