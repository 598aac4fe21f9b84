package types

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost used by SetPassword.
var PasswordCost = bcrypt.DefaultCost

// ErrInvalidPassword is returned by SetPassword for an empty password.
var ErrInvalidPassword = errors.New("password must not be empty")

// User is an account that owns places and writes reviews. Password holds a
// bcrypt hash and is write-only: it is left out of ToMap(false).
type User struct {
	BaseModel `mapstructure:",squash"`
	Email     string `mapstructure:"email"`
	Password  string `mapstructure:"password"`
	FirstName string `mapstructure:"first_name"`
	LastName  string `mapstructure:"last_name"`
}

// Kind returns KindUser.
func (u *User) Kind() Kind { return KindUser }

// ToMap returns the serializable form of the user. The password is included
// only when includeSensitive is true.
func (u *User) ToMap(includeSensitive bool) map[string]any {
	m := u.baseMap(KindUser)
	m["email"] = u.Email
	m["first_name"] = u.FirstName
	m["last_name"] = u.LastName
	if includeSensitive {
		m["password"] = u.Password
	}
	return m
}

// SetPassword stores the bcrypt hash of plain.
func (u *User) SetPassword(plain string) error {
	hash, err := HashPassword(plain)
	if err != nil {
		return err
	}
	u.Password = hash
	return nil
}

// HashPassword returns the bcrypt hash of plain at PasswordCost.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
