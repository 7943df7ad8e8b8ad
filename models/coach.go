// models/coach.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Jobs the front-end knows how to render.
const (
	JobCoach          = "coach"
	JobAssistantCoach = "assistant coach"
)

type Coach struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:100"`
	Job       string    `json:"job" gorm:"not null;size:50"`
	ImageURL  string    `json:"imageUrl" gorm:"size:500"`
	TeamID    *uint     `json:"teamId" gorm:"index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Coach) TableName() string {
	return "coaches"
}

func (c *Coach) Validate() error {
	if blank(c.Name) {
		return invalid("name", "name cannot be empty")
	}
	if blank(c.Job) {
		return invalid("job", "job cannot be empty")
	}
	return nil
}

func (c *Coach) BeforeSave(tx *gorm.DB) error {
	return c.Validate()
}
