package backend

import (
	"strings"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/utils"
)

type apiPhone struct {
	DDD    string `json:"ddd,omitempty"`
	Numero string `json:"numero,omitempty"`
}

// apiAddress is sent whole on PATCH, so a cleared field reaches the backend as "".
type apiAddress struct {
	Cep         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Cidade      string `json:"cidade"`
	Estado      string `json:"estado"`
}

// apiProfile is the profile payload as the backend sends it.
type apiProfile struct {
	ID             int64       `json:"id,omitempty"`
	Nome           string      `json:"nome"`
	Sobrenome      string      `json:"sobrenome"`
	Email          string      `json:"email"`
	CPF            string      `json:"cpf,omitempty"`
	DataNascimento string      `json:"dataNascimento,omitempty"`
	Genero         string      `json:"genero,omitempty"`
	Telefone       *apiPhone   `json:"telefone,omitempty"`
	Endereco       *apiAddress `json:"endereco,omitempty"`
	Foto           string      `json:"foto,omitempty"`
	FotoURL        string      `json:"fotoUrl,omitempty"`

	Crp            string   `json:"crp,omitempty"`
	Especialidade  string   `json:"especialidade,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	Profissao      string   `json:"profissao,omitempty"`
	Renda          *float64 `json:"renda,omitempty"`
	AreaOrientacao string   `json:"areaOrientacao,omitempty"`
	ComoSoube      string   `json:"comoSoube,omitempty"`
}

type apiPersonal struct {
	Nome           string    `json:"nome"`
	Sobrenome      string    `json:"sobrenome"`
	Email          string    `json:"email"`
	Telefone       *apiPhone `json:"telefone,omitempty"`
	DataNascimento string    `json:"dataNascimento"`
	Genero         string    `json:"genero"`
	CPF            string    `json:"cpf"`
}

type apiProfessional struct {
	Crp            string   `json:"crp"`
	Especialidade  string   `json:"especialidade"`
	Bio            string   `json:"bio"`
	Profissao      string   `json:"profissao"`
	Renda          *float64 `json:"renda,omitempty"`
	AreaOrientacao string   `json:"areaOrientacao"`
	ComoSoube      string   `json:"comoSoube"`
}

type apiPhotoResponse struct {
	URL string `json:"url"`
}

func toAPIPhone(telefone string) *apiPhone {
	ddd, numero := utils.SplitPhone(telefone)
	if ddd == "" {
		return nil
	}
	return &apiPhone{DDD: ddd, Numero: numero}
}

func fromAPIPhone(phone *apiPhone) string {
	if phone == nil {
		return ""
	}
	return utils.FormatPhone(phone.DDD + phone.Numero)
}

func toAPIAddress(address domain.AddressData) apiAddress {
	return apiAddress{
		Cep:         address.Cep,
		Logradouro:  address.Rua,
		Numero:      address.Numero,
		Complemento: address.Complemento,
		Bairro:      address.Bairro,
		Cidade:      address.Cidade,
		Estado:      address.Estado,
	}
}

func fromAPIAddress(address *apiAddress) domain.AddressData {
	if address == nil {
		return domain.AddressData{}
	}
	return domain.AddressData{
		Cep:         utils.FormatCep(address.Cep),
		Rua:         address.Logradouro,
		Numero:      address.Numero,
		Complemento: address.Complemento,
		Bairro:      address.Bairro,
		Cidade:      address.Cidade,
		Estado:      address.Estado,
	}
}

func toAPIPersonal(data domain.PersonalData) apiPersonal {
	return apiPersonal{
		Nome:           data.Nome,
		Sobrenome:      data.Sobrenome,
		Email:          data.Email,
		Telefone:       toAPIPhone(data.Telefone),
		DataNascimento: data.DataNascimento,
		Genero:         data.Genero,
		CPF:            data.CPF,
	}
}

func (p apiPersonal) domain() domain.PersonalData {
	return domain.PersonalData{
		Nome:           p.Nome,
		Sobrenome:      p.Sobrenome,
		Email:          p.Email,
		Telefone:       fromAPIPhone(p.Telefone),
		DataNascimento: p.DataNascimento,
		Genero:         strings.ToUpper(p.Genero),
		CPF:            p.CPF,
	}
}

func toAPIProfessional(data domain.ProfessionalData) apiProfessional {
	return apiProfessional{
		Crp:            data.Crp,
		Especialidade:  data.Especialidade,
		Bio:            data.Bio,
		Profissao:      data.Profissao,
		Renda:          data.Renda,
		AreaOrientacao: data.AreaOrientacao,
		ComoSoube:      data.ComoSoube,
	}
}

func (p apiProfessional) domain() domain.ProfessionalData {
	return domain.ProfessionalData{
		Crp:            p.Crp,
		Especialidade:  p.Especialidade,
		Bio:            p.Bio,
		Profissao:      p.Profissao,
		Renda:          p.Renda,
		AreaOrientacao: p.AreaOrientacao,
		ComoSoube:      p.ComoSoube,
	}
}

func (p apiProfile) domain(user domain.UserKey) domain.ProfileFormData {
	foto := p.FotoURL
	if foto == "" {
		foto = p.Foto
	}

	return domain.ProfileFormData{
		IDUsuario: user.UserID,
		Role:      user.Role,
		Personal: domain.PersonalData{
			Nome:           p.Nome,
			Sobrenome:      p.Sobrenome,
			Email:          p.Email,
			Telefone:       fromAPIPhone(p.Telefone),
			DataNascimento: p.DataNascimento,
			Genero:         strings.ToUpper(p.Genero),
			CPF:            p.CPF,
		},
		Professional: domain.ProfessionalData{
			Crp:            p.Crp,
			Especialidade:  p.Especialidade,
			Bio:            p.Bio,
			Profissao:      p.Profissao,
			Renda:          p.Renda,
			AreaOrientacao: p.AreaOrientacao,
			ComoSoube:      p.ComoSoube,
		},
		Address: fromAPIAddress(p.Endereco),
		FotoURL: foto,
	}
}
