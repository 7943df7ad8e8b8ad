package seed

import (
	"context"
	"fmt"
	"strings"

	"clubhouse/auth"
	"clubhouse/models"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Summary counts the rows written by Apply.
type Summary struct {
	Teams   int
	Coaches int
	Players int
	Stats   int
	Matches int
	Lineups int
	Users   int
}

// Apply writes the whole file in one transaction. Nothing is written when
// any record fails.
func Apply(ctx context.Context, db *gorm.DB, f *File, logger zerolog.Logger) (Summary, error) {
	var sum Summary
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		teamIDs := make(map[string]uint, len(f.Teams))
		for _, t := range f.Teams {
			team := t.model()
			if err := tx.Omit("Players", "Coaches").Create(&team).Error; err != nil {
				return fmt.Errorf("team %q: %w", t.Name, err)
			}
			teamIDs[t.Name] = team.ID
			sum.Teams++
		}

		teamRef := func(name string) (*uint, error) {
			if name == "" {
				return nil, nil
			}
			id, ok := teamIDs[name]
			if !ok {
				return nil, fmt.Errorf("unknown team %q", name)
			}
			return &id, nil
		}

		for _, c := range f.Coaches {
			teamID, err := teamRef(c.Team)
			if err != nil {
				return fmt.Errorf("coach %q: %w", c.Name, err)
			}
			coach := c.model(teamID)
			if err := tx.Create(&coach).Error; err != nil {
				return fmt.Errorf("coach %q: %w", c.Name, err)
			}
			sum.Coaches++
		}

		playerIDs := make(map[int]uint, len(f.Players))
		for _, p := range f.Players {
			teamID, err := teamRef(p.Team)
			if err != nil {
				return fmt.Errorf("player %q: %w", p.Name, err)
			}
			player := p.model(teamID)
			if err := tx.Omit("Stats", "Matches").Create(&player).Error; err != nil {
				return fmt.Errorf("player %q: %w", p.Name, err)
			}
			playerIDs[p.Number] = player.ID
			sum.Players++

			for _, s := range p.Stats {
				line := s.model(player.ID)
				if err := tx.Create(&line).Error; err != nil {
					return fmt.Errorf("stats for player %q: %w", p.Name, err)
				}
				sum.Stats++
			}
		}

		for _, m := range f.Matches {
			match := m.model()
			if err := tx.Omit("Players").Create(&match).Error; err != nil {
				return fmt.Errorf("match %s v %s: %w", m.HomeTeam, m.AwayTeam, err)
			}
			sum.Matches++
			if len(m.Lineup) == 0 {
				continue
			}

			lineup := make([]models.Player, 0, len(m.Lineup))
			for _, n := range m.Lineup {
				id, ok := playerIDs[n]
				if !ok {
					return fmt.Errorf("match %s v %s: unknown player number %d", m.HomeTeam, m.AwayTeam, n)
				}
				lineup = append(lineup, models.Player{ID: id})
			}
			if err := tx.Model(&match).Omit("Players.*").Association("Players").Append(lineup); err != nil {
				return fmt.Errorf("lineup for %s v %s: %w", m.HomeTeam, m.AwayTeam, err)
			}
			sum.Lineups += len(lineup)
		}

		for _, u := range f.Users {
			hash, err := auth.HashPassword(u.Password)
			if err != nil {
				return fmt.Errorf("user %q: %w", u.Email, err)
			}
			user := models.User{
				Email:    strings.ToLower(strings.TrimSpace(u.Email)),
				Password: hash,
				Role:     u.role(),
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("user %q: %w", u.Email, err)
			}
			sum.Users++
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	logger.Info().
		Int("teams", sum.Teams).
		Int("coaches", sum.Coaches).
		Int("players", sum.Players).
		Int("stats", sum.Stats).
		Int("matches", sum.Matches).
		Int("lineup_entries", sum.Lineups).
		Int("users", sum.Users).
		Msg("seed applied")
	return sum, nil
}

// Reset removes every club record so a seed can be applied from scratch.
func Reset(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"match_players", "stats", "matches", "players", "coaches", "teams", "users"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("reset %s: %w", table, err)
			}
		}
		return nil
	})
}
