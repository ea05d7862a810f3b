package domain

import (
	"fmt"
	"strconv"
)

type Role string

const (
	RoleAssistido        Role = "assistido"
	RoleVoluntario       Role = "voluntario"
	RoleAssistenteSocial Role = "assistente-social"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAssistido, RoleVoluntario, RoleAssistenteSocial:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// HasLicense reports whether the role carries a professional registration.
func (r Role) HasLicense() bool {
	return r == RoleVoluntario || r == RoleAssistenteSocial
}

// UserKey scopes per-user state: cached history, profile form and local storage.
type UserKey struct {
	Role   Role  `json:"role"`
	UserID int64 `json:"usuarioId"`
}

func (k UserKey) String() string {
	return string(k.Role) + ":" + strconv.FormatInt(k.UserID, 10)
}
