package user

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[+\d][\d\s\-()]{6,49}$`)
)

const (
	maxEmailLength    = 50
	minNameLength     = 2
	maxNameLength     = 50
	minPasswordLength = 8
	maxPasswordLength = 30
)

// Email Value object - immutable, represents email address
type Email struct {
	value string
}

// NewEmail Create new Email value object
func NewEmail(email string) (Email, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if len(email) > maxEmailLength || !emailRegex.MatchString(email) {
		return Email{}, NewInvalidEmailError(email)
	}

	return Email{value: email}, nil
}

func (e Email) Value() string  { return e.value }
func (e Email) String() string { return e.value }

// Phone 电话号码：数字开头（或 +），允许空格、横线和括号
type Phone struct {
	value string
}

func NewPhone(phone string) (Phone, error) {
	phone = strings.TrimSpace(phone)
	if !phoneRegex.MatchString(phone) {
		return Phone{}, NewInvalidPhoneError(phone)
	}
	return Phone{value: phone}, nil
}

func (p Phone) Value() string { return p.value }

// Role 用户角色
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return RoleUser, nil
	case RoleUser, RoleAdmin:
		return r, nil
	default:
		return "", NewInvalidRoleError(s)
	}
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// ValidatePassword 8..30 位，必须同时包含大小写字母、数字和特殊字符
func ValidatePassword(plain string) error {
	n := len([]rune(plain))
	if n < minPasswordLength || n > maxPasswordLength {
		return NewWeakPasswordError()
	}

	var upper, lower, digit, special bool
	for _, r := range plain {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune("!@#$%^&*", r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return NewWeakPasswordError()
	}
	return nil
}

func normalizeName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	n := len([]rune(name))
	if n < minNameLength || n > maxNameLength {
		return "", NewInvalidNameError()
	}
	return name, nil
}
