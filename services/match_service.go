// services/match_service.go - Fixtures, results and lineups
package services

import (
	"context"
	"errors"
	"time"

	"clubhouse/auth"
	"clubhouse/models"
	"clubhouse/repository"

	"github.com/jonboulle/clockwork"
)

type MatchStore interface {
	FindAll(ctx context.Context) ([]models.Match, error)
	FindByID(ctx context.Context, id uint) (*models.Match, error)
	FindPlayers(ctx context.Context, matchID uint) ([]models.Player, error)
	Create(ctx context.Context, match *models.Match) error
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id uint) error
	AddPlayers(ctx context.Context, matchID uint, playerIDs []uint) (*models.Match, error)
}

// Live event types published after a successful write.
const (
	MatchCreated = "match.created"
	MatchUpdated = "match.updated"
	MatchDeleted = "match.deleted"
	MatchLineup  = "match.players"
)

type MatchEvent struct {
	Type    string        `json:"type"`
	MatchID uint          `json:"matchId"`
	Match   *models.Match `json:"match,omitempty"`
	At      time.Time     `json:"at"`
}

// MatchNotifier receives match events, e.g. to push them to live clients.
// Publish must not block.
type MatchNotifier interface {
	Publish(event MatchEvent)
}

type MatchInput struct {
	Location     string    `json:"location" validate:"required,max=200"`
	Date         time.Time `json:"date" validate:"required"`
	HomeTeamName string    `json:"homeTeamName" validate:"required,max=100"`
	AwayTeamName string    `json:"awayTeamName" validate:"required,max=100"`
	HomeScore    *int      `json:"homeScore" validate:"omitempty,gte=0"`
	AwayScore    *int      `json:"awayScore" validate:"omitempty,gte=0"`
}

type MatchUpdate struct {
	Location     *string    `json:"location" validate:"omitempty,min=1,max=200"`
	Date         *time.Time `json:"date"`
	HomeTeamName *string    `json:"homeTeamName" validate:"omitempty,min=1,max=100"`
	AwayTeamName *string    `json:"awayTeamName" validate:"omitempty,min=1,max=100"`
	HomeScore    *int       `json:"homeScore" validate:"omitempty,gte=0"`
	AwayScore    *int       `json:"awayScore" validate:"omitempty,gte=0"`
	// ClearScores resets both scores so the match counts as not played.
	// It is applied before HomeScore and AwayScore.
	ClearScores bool `json:"clearScores"`
}

type LineupInput struct {
	PlayerIDs []uint `json:"player_ids" validate:"dive,gt=0"`
}

type MatchService struct {
	matches  MatchStore
	notifier MatchNotifier
	clock    clockwork.Clock
}

func NewMatchService(matches MatchStore, notifier MatchNotifier, clock clockwork.Clock) *MatchService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MatchService{matches: matches, notifier: notifier, clock: clock}
}

func (s *MatchService) GetAll(ctx context.Context, id auth.Identity) ([]models.Match, error) {
	if err := Authorize(id, ViewMatches); err != nil {
		return nil, err
	}
	return s.matches.FindAll(ctx)
}

func (s *MatchService) GetByID(ctx context.Context, id auth.Identity, matchID uint) (*models.Match, error) {
	if err := Authorize(id, ViewMatches); err != nil {
		return nil, err
	}
	match, err := s.matches.FindByID(ctx, matchID)
	if err != nil {
		return nil, storeError(err, "match with id %d not found", matchID)
	}
	return match, nil
}

func (s *MatchService) Players(ctx context.Context, id auth.Identity, matchID uint) ([]models.Player, error) {
	if err := Authorize(id, ViewMatches); err != nil {
		return nil, err
	}
	players, err := s.matches.FindPlayers(ctx, matchID)
	if err != nil {
		return nil, storeError(err, "match with id %d not found", matchID)
	}
	return players, nil
}

func (s *MatchService) Add(ctx context.Context, id auth.Identity, in MatchInput) (*models.Match, error) {
	if err := Authorize(id, ManageMatches); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	match := &models.Match{
		Location:     in.Location,
		Date:         in.Date,
		HomeTeamName: in.HomeTeamName,
		AwayTeamName: in.AwayTeamName,
		HomeScore:    in.HomeScore,
		AwayScore:    in.AwayScore,
	}
	if err := s.matches.Create(ctx, match); err != nil {
		return nil, storeError(err, "match could not be created")
	}

	s.publish(MatchCreated, match.ID, match)
	return match, nil
}

func (s *MatchService) Update(ctx context.Context, id auth.Identity, matchID uint, in MatchUpdate) (*models.Match, error) {
	if err := Authorize(id, ManageMatches); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	match, err := s.matches.FindByID(ctx, matchID)
	if err != nil {
		return nil, storeError(err, "match with id %d not found", matchID)
	}
	if in.Location != nil {
		match.Location = *in.Location
	}
	if in.Date != nil {
		match.Date = *in.Date
	}
	if in.HomeTeamName != nil {
		match.HomeTeamName = *in.HomeTeamName
	}
	if in.AwayTeamName != nil {
		match.AwayTeamName = *in.AwayTeamName
	}
	if in.ClearScores {
		match.HomeScore = nil
		match.AwayScore = nil
	}
	if in.HomeScore != nil {
		match.HomeScore = in.HomeScore
	}
	if in.AwayScore != nil {
		match.AwayScore = in.AwayScore
	}

	if err := s.matches.Update(ctx, match); err != nil {
		return nil, storeError(err, "match with id %d not found", matchID)
	}

	s.publish(MatchUpdated, match.ID, match)
	return match, nil
}

func (s *MatchService) Delete(ctx context.Context, id auth.Identity, matchID uint) error {
	if err := Authorize(id, ManageMatches); err != nil {
		return err
	}
	if err := s.matches.Delete(ctx, matchID); err != nil {
		return storeError(err, "match with id %d not found", matchID)
	}

	s.publish(MatchDeleted, matchID, nil)
	return nil
}

// AddPlayers puts players into the lineup of a match and returns the match
// with its full lineup.
func (s *MatchService) AddPlayers(ctx context.Context, id auth.Identity, matchID uint, in LineupInput) (*models.Match, error) {
	if err := Authorize(id, PickLineups); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	current, err := s.matches.FindByID(ctx, matchID)
	if err != nil {
		return nil, storeError(err, "match with id %d not found", matchID)
	}
	if len(in.PlayerIDs) == 0 {
		return current, nil
	}

	match, err := s.matches.AddPlayers(ctx, matchID, uniqueIDs(in.PlayerIDs))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "one or more players for match %d not found", matchID)
		}
		return nil, err
	}

	s.publish(MatchLineup, match.ID, match)
	return match, nil
}

func (s *MatchService) publish(kind string, matchID uint, match *models.Match) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(MatchEvent{Type: kind, MatchID: matchID, Match: match, At: s.clock.Now().UTC()})
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
