// models/stats.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Stats is one season line for a player.
type Stats struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PlayerID    uint      `json:"playerId" gorm:"not null;index"`
	Appearances int       `json:"appearances" gorm:"default:0"`
	Goals       int       `json:"goals" gorm:"default:0"`
	Assists     int       `json:"assists" gorm:"default:0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Stats) TableName() string {
	return "stats"
}

func (s *Stats) Validate() error {
	if s.PlayerID == 0 {
		return invalid("playerId", "player id is required")
	}
	if s.Appearances < 0 {
		return invalid("appearances", "appearances cannot be negative")
	}
	if s.Goals < 0 {
		return invalid("goals", "goals cannot be negative")
	}
	if s.Assists < 0 {
		return invalid("assists", "assists cannot be negative")
	}
	return nil
}

func (s *Stats) BeforeSave(tx *gorm.DB) error {
	return s.Validate()
}
