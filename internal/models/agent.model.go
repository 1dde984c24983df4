package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Agent struct {
	BaseUUIDModel
	Login       string `gorm:"type:varchar(64);uniqueIndex;not null" json:"login"`
	DisplayName string `gorm:"type:varchar(255);not null"            json:"displayName"`
	Email       string `gorm:"type:varchar(255)"                     json:"email"`
	Password    string `gorm:"type:varchar(255);not null"            json:"-"`
	IsAdmin     bool   `gorm:"not null;default:false"                json:"isAdmin"`
}

// BeforeCreate hashes a plain-text password before it is stored.
func (a *Agent) BeforeCreate(tx *gorm.DB) error {
	if a.Password == "" || isBcryptHash(a.Password) {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = string(hash)
	return nil
}

func (a *Agent) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)) == nil
}

func isBcryptHash(value string) bool {
	_, err := bcrypt.Cost([]byte(value))
	return err == nil
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type CreateAgentRequest struct {
	Login       string `json:"login"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	IsAdmin     bool   `json:"isAdmin"`
}
