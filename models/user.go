// models/user.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      Role      `gorm:"not null;size:20;default:'User'" json:"role"`
	LastLogin time.Time `json:"lastLogin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) Validate() error {
	if blank(u.Email) {
		return invalid("email", "email cannot be empty")
	}
	if u.Password == "" {
		return invalid("password", "password cannot be empty")
	}
	if !u.Role.Valid() {
		return invalid("role", "role must be one of Admin, Coach, Player, User")
	}
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	return u.Validate()
}
