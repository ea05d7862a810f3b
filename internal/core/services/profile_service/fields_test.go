package profile_service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

func TestSetField(t *testing.T) {
	tests := []struct {
		path    string
		value   string
		section domain.Section
		name    string
		check   func(t *testing.T, form domain.ProfileFormData)
	}{
		{"nome", "Ana", domain.SectionPersonal, "nome", func(t *testing.T, form domain.ProfileFormData) {
			assert.Equal(t, "Ana", form.Personal.Nome)
		}},
		{"personal.telefone", "11987654321", domain.SectionPersonal, "telefone", func(t *testing.T, form domain.ProfileFormData) {
			assert.Equal(t, "(11) 98765-4321", form.Personal.Telefone)
		}},
		{"professional.especialidade", "Nutrição", domain.SectionProfessional, "especialidade", func(t *testing.T, form domain.ProfileFormData) {
			assert.Equal(t, "Nutrição", form.Professional.Especialidade)
		}},
		{"address.rua", "Rua B", domain.SectionAddress, "endereco.rua", func(t *testing.T, form domain.ProfileFormData) {
			assert.Equal(t, "Rua B", form.Address.Rua)
		}},
		{"endereco.cep", "012345678", domain.SectionAddress, "endereco.cep", func(t *testing.T, form domain.ProfileFormData) {
			assert.Equal(t, "01234-567", form.Address.Cep)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var form domain.ProfileFormData
			section, name, err := SetField(&form, tt.path, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.section, section)
			assert.Equal(t, tt.name, name)
			tt.check(t, form)
		})
	}
}

func TestSetField_Unknown(t *testing.T) {
	var form domain.ProfileFormData
	_, _, err := SetField(&form, "personal.idade", "30")
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestValidateProfessional_AssistidoNeedsNoLicense(t *testing.T) {
	assert.NoError(t, validateProfessional(domain.RoleAssistido, domain.ProfessionalData{}))

	negative := -1.0
	err := validateProfessional(domain.RoleAssistido, domain.ProfessionalData{Renda: &negative})
	vErr, ok := domain.IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, vErr.Fields, "renda")

	err = validateProfessional(domain.RoleAssistenteSocial, domain.ProfessionalData{})
	vErr, ok = domain.IsValidation(err)
	require.True(t, ok)
	assert.Len(t, vErr.Fields, 2)
}
