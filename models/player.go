// models/player.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type Player struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:100"`
	Number    int       `json:"number" gorm:"not null;index"`
	Position  string    `json:"position" gorm:"not null;size:50"`
	Birthdate time.Time `json:"birthdate" gorm:"not null"`
	ImageURL  string    `json:"imageUrl" gorm:"size:500"`
	TeamID    *uint     `json:"teamId" gorm:"index"`
	Stats     []Stats   `json:"stats,omitempty" gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
	Matches   []Match   `json:"matches,omitempty" gorm:"many2many:match_players"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Player) TableName() string {
	return "players"
}

func (p *Player) Validate() error {
	if blank(p.Name) {
		return invalid("name", "name cannot be empty")
	}
	if blank(p.Position) {
		return invalid("position", "position cannot be empty")
	}
	if p.Number < 0 {
		return invalid("number", "number cannot be negative")
	}
	if p.Birthdate.IsZero() {
		return invalid("birthdate", "birthdate is required")
	}
	if p.Birthdate.After(time.Now()) {
		return invalid("birthdate", "birthdate cannot be in the future")
	}
	return nil
}

func (p *Player) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}
