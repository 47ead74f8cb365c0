package domain

import (
	"context"
	"regexp"
	"strings"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// passwordSpecials are the special characters a password may (and must) contain.
const passwordSpecials = "@$!%*#?&"

// ValidEmail reports whether email looks like an address.
func ValidEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// SystemUserAccess is a row of the permissions list: a system user and their flags.
// swagger:model SystemUserAccess
type SystemUserAccess struct {
	SystemUser Identity `json:"systemUser"`
	Authorized bool     `json:"authorized"`
	LocalAdm   bool     `json:"localAdm"`
	GeneralAdm bool     `json:"generalAdm"`
}

// SystemUser is the detail view of a system user.
// swagger:model SystemUser
type SystemUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CPF        string `json:"CPF"`
	Email      string `json:"email"`
	Department string `json:"department"`
	CreatedAt  string `json:"createdAt"`

	CPFFormatted       string `json:"cpf_formatted,omitempty"`
	DepartmentName     string `json:"department_name,omitempty"`
	CreatedAtFormatted string `json:"created_at_formatted,omitempty"`
}

// DepartmentName returns the display name of a department code.
func DepartmentName(department string) string {
	if department == DepartmentUSM {
		return "Unidade de saúde"
	}
	return "Vigilância em saúde"
}

func validDepartment(d string) bool {
	return d == DepartmentUSM || d == DepartmentSVS
}

// PermissionsPatch carries only the access flags that changed.
type PermissionsPatch struct {
	Authorized *bool `json:"authorized,omitempty"`
	LocalAdm   *bool `json:"localAdm,omitempty"`
	GeneralAdm *bool `json:"generalAdm,omitempty"`
}

// Empty reports whether no flag changed.
func (p *PermissionsPatch) Empty() bool {
	return p.Authorized == nil && p.LocalAdm == nil && p.GeneralAdm == nil
}

// SystemUserUpdate changes a user's department and, optionally, their access flags.
type SystemUserUpdate struct {
	Department  string            `json:"department,omitempty"`
	Permissions *PermissionsPatch `json:"permissions,omitempty"`
}

// Validate rejects updates that change nothing or name an unknown department.
func (u *SystemUserUpdate) Validate() []string {
	if u.Department == "" && (u.Permissions == nil || u.Permissions.Empty()) {
		return []string{"no field changed"}
	}
	if u.Department != "" && !validDepartment(u.Department) {
		return []string{"department must be USM or SVS"}
	}
	return nil
}

// SystemUserDetailsUpdate carries only the profile fields that changed.
type SystemUserDetailsUpdate struct {
	Name       *string `json:"name,omitempty"`
	CPF        *string `json:"CPF,omitempty"`
	Email      *string `json:"email,omitempty"`
	Department *string `json:"department,omitempty"`
}

// Validate checks the changed fields. CPF is normalized to digits.
func (u *SystemUserDetailsUpdate) Validate() []string {
	if u.Name == nil && u.CPF == nil && u.Email == nil && u.Department == nil {
		return []string{"no field changed"}
	}
	var problems []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		problems = append(problems, "name must not be empty")
	}
	if u.CPF != nil {
		if !ValidCPF(*u.CPF) {
			problems = append(problems, "invalid CPF")
		} else {
			cpf := NormalizeCPF(*u.CPF)
			u.CPF = &cpf
		}
	}
	if u.Email != nil && !emailRegexp.MatchString(*u.Email) {
		problems = append(problems, "invalid email")
	}
	if u.Department != nil && !validDepartment(*u.Department) {
		problems = append(problems, "department must be USM or SVS")
	}
	return problems
}

// PasswordChange is the body of a password change.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Validate requires the current password and a strong new one.
func (p *PasswordChange) Validate() []string {
	var problems []string
	if p.CurrentPassword == "" {
		problems = append(problems, "current_password is required")
	}
	if !StrongPassword(p.NewPassword) {
		problems = append(problems, "new_password must have at least 8 characters with a letter, a digit and one of "+passwordSpecials)
	}
	return problems
}

// SignUp is the body of a system user registration.
type SignUp struct {
	Name       string `json:"name"`
	CPF        string `json:"CPF"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
}

// Validate checks every field and normalizes CPF to digits.
func (s *SignUp) Validate() []string {
	var problems []string
	if strings.TrimSpace(s.Name) == "" {
		problems = append(problems, "name is required")
	}
	if !ValidCPF(s.CPF) {
		problems = append(problems, "invalid CPF")
	} else {
		s.CPF = NormalizeCPF(s.CPF)
	}
	if !emailRegexp.MatchString(s.Email) {
		problems = append(problems, "invalid email")
	}
	if !StrongPassword(s.Password) {
		problems = append(problems, "password must have at least 8 characters with a letter, a digit and one of "+passwordSpecials)
	}
	if !validDepartment(s.Department) {
		problems = append(problems, "department must be USM or SVS")
	}
	return problems
}

// StrongPassword reports whether password has at least 8 characters drawn from
// letters, digits and passwordSpecials, with at least one of each kind.
func StrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var letter, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return letter && digit && special
}

// SystemUserService manages system users and their access flags.
type SystemUserService interface {
	List(ctx context.Context, q ListQuery) (*Page[SystemUserAccess], error)
	Get(ctx context.Context, id string) (*SystemUser, error)
	Update(ctx context.Context, id string, u *SystemUserUpdate) (*MutationResult, error)
	UpdateDetails(ctx context.Context, id string, u *SystemUserDetailsUpdate) (*MutationResult, error)
	ChangePassword(ctx context.Context, id string, p *PasswordChange) (*MutationResult, error)
	Delete(ctx context.Context, id string) (*MutationResult, error)
	SignUp(ctx context.Context, s *SignUp) (*MutationResult, error)
}
