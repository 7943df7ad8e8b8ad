// models/match.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Match scores stay nil until the game has been played.
type Match struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Location     string    `json:"location" gorm:"not null;size:200"`
	Date         time.Time `json:"date" gorm:"not null"`
	HomeTeamName string    `json:"homeTeamName" gorm:"not null;size:100"`
	AwayTeamName string    `json:"awayTeamName" gorm:"not null;size:100"`
	HomeScore    *int      `json:"homeScore"`
	AwayScore    *int      `json:"awayScore"`
	Players      []Player  `json:"players,omitempty" gorm:"many2many:match_players"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Match) TableName() string {
	return "matches"
}

// Played reports whether both scores have been recorded.
func (m Match) Played() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

func (m *Match) Validate() error {
	if blank(m.Location) {
		return invalid("location", "location is required")
	}
	if m.Date.IsZero() {
		return invalid("date", "date is required")
	}
	if blank(m.HomeTeamName) {
		return invalid("homeTeamName", "home team name is required")
	}
	if blank(m.AwayTeamName) {
		return invalid("awayTeamName", "away team name is required")
	}
	if m.HomeScore != nil && *m.HomeScore < 0 {
		return invalid("homeScore", "home score cannot be negative")
	}
	if m.AwayScore != nil && *m.AwayScore < 0 {
		return invalid("awayScore", "away score cannot be negative")
	}
	return nil
}

func (m *Match) BeforeSave(tx *gorm.DB) error {
	return m.Validate()
}
