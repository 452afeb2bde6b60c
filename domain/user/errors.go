/*
Package user 定义用户领域错误。
*/
package user

import (
	"errors"
	"fmt"

	"restaurant/domain/shared"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidEmail           = errors.New("invalid email format")
	ErrInvalidName            = errors.New("name must be 2..50 characters")
	ErrInvalidPhone           = errors.New("invalid phone number")
	ErrWeakPassword           = errors.New("password does not meet the policy")
	ErrInvalidRole            = errors.New("role must be user or admin")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrPhoneAlreadyExists     = errors.New("phone number already exists")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrConcurrentModification = errors.New("user was modified by another transaction, please retry")
)

func NewUserNotFoundError(userID string) error {
	return shared.NewError(ErrUserNotFound, shared.ErrNotFound, "user", "", "User not found: "+userID)
}

func NewConcurrentModificationError(userID string) error {
	return shared.NewError(ErrConcurrentModification, shared.ErrConflict, "user", "",
		"user "+userID+" was modified by another transaction, please retry")
}

func NewInvalidEmailError(email string) error {
	return shared.NewError(ErrInvalidEmail, shared.ErrInvalidInput, "user", "email", "invalid email format: "+email)
}

func NewInvalidNameError() error {
	return shared.NewError(ErrInvalidName, shared.ErrInvalidInput, "user", "name",
		fmt.Sprintf("name must be %d..%d characters", minNameLength, maxNameLength))
}

func NewInvalidPhoneError(phone string) error {
	return shared.NewError(ErrInvalidPhone, shared.ErrInvalidInput, "user", "phoneNumber",
		"phone number must contain digits and may include +, spaces, dashes or parentheses: "+phone)
}

func NewWeakPasswordError() error {
	return shared.NewError(ErrWeakPassword, shared.ErrInvalidInput, "user", "password",
		fmt.Sprintf("password must be %d..%d characters with upper and lower case letters, a digit and a special character",
			minPasswordLength, maxPasswordLength))
}

func NewInvalidRoleError(role string) error {
	return shared.NewError(ErrInvalidRole, shared.ErrInvalidInput, "user", "role",
		fmt.Sprintf("role must be either 'user' or 'admin', got %q", role))
}

func NewEmailAlreadyExistsError(email string) error {
	return shared.NewError(ErrEmailAlreadyExists, shared.ErrConflict, "user", "email", "email already exists: "+email)
}

func NewPhoneAlreadyExistsError(phone string) error {
	return shared.NewError(ErrPhoneAlreadyExists, shared.ErrConflict, "user", "phoneNumber", "phone number already exists: "+phone)
}

func NewInvalidCredentialsError() error {
	return shared.NewError(ErrInvalidCredentials, shared.ErrUnauthorized, "auth", "", "Invalid credentials")
}

func NewInvalidTokenError() error {
	return shared.NewError(ErrInvalidToken, shared.ErrInvalidInput, "auth", "token", "Invalid or expired token")
}
