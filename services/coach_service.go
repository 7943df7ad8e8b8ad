// services/coach_service.go
package services

import (
	"context"

	"clubhouse/auth"
	"clubhouse/models"
)

type CoachStore interface {
	FindAll(ctx context.Context) ([]models.Coach, error)
	FindByID(ctx context.Context, id uint) (*models.Coach, error)
	Create(ctx context.Context, coach *models.Coach) error
	Update(ctx context.Context, coach *models.Coach) error
	Delete(ctx context.Context, id uint) error
}

type CoachInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Job      string `json:"job" validate:"required,max=50"`
	ImageURL string `json:"imageUrl" validate:"omitempty,max=500"`
	TeamID   *uint  `json:"teamId"`
}

type CoachUpdate struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Job      *string `json:"job" validate:"omitempty,min=1,max=50"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,max=500"`
	TeamID   *uint   `json:"teamId"`
}

type CoachService struct {
	coaches CoachStore
	teams   TeamLookup
}

func NewCoachService(coaches CoachStore, teams TeamLookup) *CoachService {
	return &CoachService{coaches: coaches, teams: teams}
}

// GetAll is public: the landing page lists the staff without signing in.
func (s *CoachService) GetAll(ctx context.Context) ([]models.Coach, error) {
	return s.coaches.FindAll(ctx)
}

func (s *CoachService) Add(ctx context.Context, id auth.Identity, in CoachInput) (*models.Coach, error) {
	if err := Authorize(id, ManageCoaches); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	if err := checkTeam(ctx, s.teams, in.TeamID); err != nil {
		return nil, err
	}

	coach := &models.Coach{
		Name:     in.Name,
		Job:      in.Job,
		ImageURL: in.ImageURL,
		TeamID:   in.TeamID,
	}
	if err := s.coaches.Create(ctx, coach); err != nil {
		return nil, storeError(err, "coach could not be created")
	}
	return coach, nil
}

func (s *CoachService) Update(ctx context.Context, id auth.Identity, coachID uint, in CoachUpdate) (*models.Coach, error) {
	if err := Authorize(id, ManageCoaches); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	coach, err := s.coaches.FindByID(ctx, coachID)
	if err != nil {
		return nil, storeError(err, "coach with id %d not found", coachID)
	}
	if in.TeamID != nil {
		if err := checkTeam(ctx, s.teams, in.TeamID); err != nil {
			return nil, err
		}
		coach.TeamID = in.TeamID
	}
	if in.Name != nil {
		coach.Name = *in.Name
	}
	if in.Job != nil {
		coach.Job = *in.Job
	}
	if in.ImageURL != nil {
		coach.ImageURL = *in.ImageURL
	}

	if err := s.coaches.Update(ctx, coach); err != nil {
		return nil, storeError(err, "coach with id %d not found", coachID)
	}
	return coach, nil
}

func (s *CoachService) Remove(ctx context.Context, id auth.Identity, coachID uint) error {
	if err := Authorize(id, ManageCoaches); err != nil {
		return err
	}
	return storeError(s.coaches.Delete(ctx, coachID), "coach with id %d not found", coachID)
}
