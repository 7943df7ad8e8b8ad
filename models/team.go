// models/team.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type Team struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:100;uniqueIndex"`
	GoalsFor  int       `json:"goalsFor" gorm:"default:0"`
	GoalsAg   int       `json:"goalsAg" gorm:"default:0"`
	Points    int       `json:"points" gorm:"default:0"`
	Players   []Player  `json:"players,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL"`
	Coaches   []Coach   `json:"coaches,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Team) TableName() string {
	return "teams"
}

// GoalDifference is goals scored minus goals conceded.
func (t Team) GoalDifference() int {
	return t.GoalsFor - t.GoalsAg
}

func (t *Team) Validate() error {
	if blank(t.Name) {
		return invalid("name", "name cannot be empty")
	}
	if t.GoalsFor < 0 {
		return invalid("goalsFor", "goals for cannot be negative")
	}
	if t.GoalsAg < 0 {
		return invalid("goalsAg", "goals against cannot be negative")
	}
	if t.Points < 0 {
		return invalid("points", "points cannot be negative")
	}
	return nil
}

func (t *Team) BeforeSave(tx *gorm.DB) error {
	return t.Validate()
}
