package domain

type NotificationVariant string

const (
	NotificationDefault     NotificationVariant = "default"
	NotificationDestructive NotificationVariant = "destructive"
)

// Notification is the user-facing toast an operation ends with.
type Notification struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Variant     NotificationVariant `json:"variant"`
}

func Notify(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: NotificationDefault}
}

func NotifyError(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: NotificationDestructive}
}

var saveFailureTitles = map[Section]string{
	SectionPersonal:     "Erro ao salvar dados pessoais",
	SectionProfessional: "Erro ao salvar dados profissionais",
	SectionAddress:      "Erro ao salvar endereço",
	SectionPhoto:        "Erro ao atualizar foto",
}

// SaveFailureNotification is the toast for a section save the backend rejected.
func SaveFailureNotification(section Section, err error) Notification {
	title, ok := saveFailureTitles[section]
	if !ok {
		title = "Erro ao salvar"
	}
	description := "Ocorreu um erro ao salvar suas informações."
	if err != nil {
		description = err.Error()
	}
	return NotifyError(title, description)
}
