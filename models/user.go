package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserRole enum
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

// InstitutionDomain is the only email domain accepted at registration.
const InstitutionDomain = "@kiet.edu"

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName      string             `bson:"fullName" json:"fullName"`
	UniversityID  string             `bson:"universityId" json:"universityId"`
	Branch        string             `bson:"branch" json:"branch"`
	Year          string             `bson:"year" json:"year"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password,omitempty" json:"-"`
	Role          UserRole           `bson:"role" json:"role"`
	EmailVerified bool               `bson:"emailVerified" json:"emailVerified"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// InstitutionEmail reports whether the address belongs to the campus domain.
func InstitutionEmail(email string) bool {
	return strings.HasSuffix(strings.ToLower(email), InstitutionDomain)
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}
