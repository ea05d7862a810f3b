package domain

import "time"

type Section string

const (
	SectionPersonal     Section = "personal"
	SectionProfessional Section = "professional"
	SectionAddress      Section = "address"
	SectionPhoto        Section = "photo"
)

var Sections = []Section{SectionPersonal, SectionProfessional, SectionAddress, SectionPhoto}

func ParseSection(s string) (Section, error) {
	for _, section := range Sections {
		if string(section) == s {
			return section, nil
		}
	}
	return "", ErrUnknownSection
}

type SectionStatus string

const (
	SectionClean  SectionStatus = "clean"
	SectionDirty  SectionStatus = "dirty"
	SectionSaving SectionStatus = "saving"
	SectionError  SectionStatus = "error"
)

// SectionState tracks one section of the form. Revision grows with every edit so a
// save that finishes after newer edits leaves them in place.
type SectionState struct {
	Status    SectionStatus     `json:"status"`
	Revision  int               `json:"revision"`
	Errors    map[string]string `json:"errors,omitempty"`
	LastError string            `json:"lastError,omitempty"`
}

// HasChanges reports unsaved edits, including the ones a running save is sending.
func (s SectionState) HasChanges() bool {
	return s.Status != SectionClean && s.Status != ""
}

type PersonalData struct {
	Nome           string `json:"nome"`
	Sobrenome      string `json:"sobrenome"`
	Email          string `json:"email"`
	Telefone       string `json:"telefone"`
	DataNascimento string `json:"dataNascimento"`
	Genero         string `json:"genero"`
	CPF            string `json:"cpf,omitempty"`
}

// ProfessionalData holds the role specific fields. Crp, Especialidade and Bio belong to
// volunteers and social workers, the rest to assistidos.
type ProfessionalData struct {
	Crp            string   `json:"crp,omitempty"`
	Especialidade  string   `json:"especialidade,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	Profissao      string   `json:"profissao,omitempty"`
	Renda          *float64 `json:"renda,omitempty"`
	AreaOrientacao string   `json:"areaOrientacao,omitempty"`
	ComoSoube      string   `json:"comoSoube,omitempty"`
}

type AddressData struct {
	Rua         string `json:"rua"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Cidade      string `json:"cidade"`
	Estado      string `json:"estado"`
	Cep         string `json:"cep"`
}

type ProfileFormData struct {
	IDUsuario    int64            `json:"idUsuario"`
	Role         Role             `json:"role"`
	Personal     PersonalData     `json:"personal"`
	Professional ProfessionalData `json:"professional"`
	Address      AddressData      `json:"endereco"`
	FotoURL      string           `json:"fotoUrl,omitempty"`
}

// DefaultProfile is what the form shows when neither the backend nor local storage
// produced a profile.
func DefaultProfile(key UserKey) ProfileFormData {
	return ProfileFormData{
		IDUsuario: key.UserID,
		Role:      key.Role,
		Personal:  PersonalData{Genero: "OUTRO"},
	}
}

// PostalAddress is what the postal-code lookup returns.
type PostalAddress struct {
	Cep    string `json:"cep"`
	Rua    string `json:"logradouro"`
	Bairro string `json:"bairro"`
	Cidade string `json:"localidade"`
	Estado string `json:"uf"`
}

type PhotoUpload struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"-"`
}

// ProfileSnapshot is the serializable view of a profile form.
type ProfileSnapshot struct {
	Working      ProfileFormData          `json:"working"`
	Display      ProfileFormData          `json:"display"`
	Sections     map[Section]SectionState `json:"sections"`
	FormChanged  bool                     `json:"formChanged"`
	PhotoPreview string                   `json:"photoPreview,omitempty"`
	PendingPhoto *PhotoUpload             `json:"pendingPhoto,omitempty"`
	ForceLogout  bool                     `json:"forceLogout"`
	LoadedAt     time.Time                `json:"loadedAt"`
}

// ProfileResult pairs the form with the toast an action ended with, if any.
type ProfileResult struct {
	Snapshot     ProfileSnapshot `json:"snapshot"`
	Notification *Notification   `json:"notification,omitempty"`
}

// SaveResult has no notification when the email changed: the client asks the user to
// log in again instead.
type SaveResult struct {
	Section      Section         `json:"section"`
	Notification *Notification   `json:"notification,omitempty"`
	ForceLogout  bool            `json:"forceLogout"`
	Snapshot     ProfileSnapshot `json:"snapshot"`
}

// Local storage keys shared with the web client.
const (
	StorageKeyUserData    = "userData"
	StorageKeyAuthToken   = "authToken"
	StorageKeyProfileData = "profileData"
)

// Clone copies the maps and pointers the form mutates, so cached snapshots never alias.
func (s ProfileSnapshot) Clone() ProfileSnapshot {
	clone := s
	clone.Working = s.Working.Clone()
	clone.Display = s.Display.Clone()

	clone.Sections = make(map[Section]SectionState, len(s.Sections))
	for section, state := range s.Sections {
		if state.Errors != nil {
			errs := make(map[string]string, len(state.Errors))
			for k, v := range state.Errors {
				errs[k] = v
			}
			state.Errors = errs
		}
		clone.Sections[section] = state
	}

	if s.PendingPhoto != nil {
		photo := *s.PendingPhoto
		clone.PendingPhoto = &photo
	}
	return clone
}

func (p ProfileFormData) Clone() ProfileFormData {
	clone := p
	if p.Professional.Renda != nil {
		renda := *p.Professional.Renda
		clone.Professional.Renda = &renda
	}
	return clone
}
