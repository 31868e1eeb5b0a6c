package Models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleOperation Role = "OPERATION"
)

// ParseRole normalizes a client-supplied role claim. Comparison is
// case-insensitive; anything outside the two known roles is rejected.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToUpper(raw)) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleOperation:
		return RoleOperation, true
	}
	return "", false
}

// Principal is the authenticated identity attached to a request after
// the auth middleware has verified the token and loaded the user row.
type Principal struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

type Admin struct {
	gorm.Model
	Number      string `json:"number"`
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"uniqueIndex;not null"`
	Password    []byte `json:"-"`
	Gender      string `json:"gender,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`

	DefaultTasks []DefaultTask `json:"-" gorm:"foreignKey:AdminID"`
	NewTasks     []NewTask     `json:"-" gorm:"foreignKey:AdminID"`
}

type OperationTeamMember struct {
	gorm.Model
	Name        string `json:"name"`
	Email       string `json:"email,omitempty" gorm:"uniqueIndex;not null"`
	Password    []byte `json:"-"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

func (a *Admin) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = hash
	return nil
}

func (a *Admin) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword(a.Password, []byte(plain)) == nil
}

func (o *OperationTeamMember) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	o.Password = hash
	return nil
}

func (o *OperationTeamMember) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword(o.Password, []byte(plain)) == nil
}
