// database/migrate.go - Database Migration Runner
package database

import (
	"fmt"

	"clubhouse/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Models lists every persisted type in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.Team{},
		&models.Player{},
		&models.Coach{},
		&models.Stats{},
		&models.Match{},
		&models.User{},
	}
}

var indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_matches_date ON matches(date DESC)",
	"CREATE INDEX IF NOT EXISTS idx_match_players_player ON match_players(player_id)",
	"CREATE INDEX IF NOT EXISTS idx_teams_points ON teams(points DESC)",
}

// RunMigrations creates or updates every table and the secondary indexes.
func RunMigrations(db *gorm.DB, logger zerolog.Logger) error {
	logger.Info().Msg("running database migrations")

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	logger.Info().Int("tables", len(Models())).Msg("migrations completed")
	return nil
}
