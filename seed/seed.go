// Package seed reads club fixture files used to populate a fresh database.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"clubhouse/models"

	"gopkg.in/yaml.v3"
)

// File is the top level of a seed document. Coaches and players refer to
// their team by name; match lineups refer to players by shirt number.
type File struct {
	Teams   []Team   `yaml:"teams"`
	Coaches []Coach  `yaml:"coaches"`
	Players []Player `yaml:"players"`
	Matches []Match  `yaml:"matches"`
	Users   []User   `yaml:"users"`
}

type Team struct {
	Name     string `yaml:"name"`
	GoalsFor int    `yaml:"goals_for"`
	GoalsAg  int    `yaml:"goals_against"`
	Points   int    `yaml:"points"`
}

type Coach struct {
	Name     string `yaml:"name"`
	Job      string `yaml:"job"`
	ImageURL string `yaml:"image_url"`
	Team     string `yaml:"team"`
}

type Player struct {
	Name      string     `yaml:"name"`
	Number    int        `yaml:"number"`
	Position  string     `yaml:"position"`
	Birthdate time.Time  `yaml:"birthdate"`
	ImageURL  string     `yaml:"image_url"`
	Team      string     `yaml:"team"`
	Stats     []StatLine `yaml:"stats"`
}

type StatLine struct {
	Appearances int `yaml:"appearances"`
	Goals       int `yaml:"goals"`
	Assists     int `yaml:"assists"`
}

type Match struct {
	Location  string    `yaml:"location"`
	Date      time.Time `yaml:"date"`
	HomeTeam  string    `yaml:"home_team"`
	AwayTeam  string    `yaml:"away_team"`
	HomeScore *int      `yaml:"home_score"`
	AwayScore *int      `yaml:"away_score"`
	Lineup    []int     `yaml:"lineup"`
}

// User carries a plain-text password; it is hashed when applied.
type User struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// Parse decodes a seed document. Unknown keys are rejected so typos in a
// fixture surface instead of being silently ignored.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &f, nil
}

func Load(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

func (t Team) model() models.Team {
	return models.Team{Name: t.Name, GoalsFor: t.GoalsFor, GoalsAg: t.GoalsAg, Points: t.Points}
}

// A coach listed without a job is seeded as head coach.
func (c Coach) model(teamID *uint) models.Coach {
	job := c.Job
	if strings.TrimSpace(job) == "" {
		job = models.JobCoach
	}
	return models.Coach{Name: c.Name, Job: job, ImageURL: c.ImageURL, TeamID: teamID}
}

func (p Player) model(teamID *uint) models.Player {
	return models.Player{
		Name:      p.Name,
		Number:    p.Number,
		Position:  p.Position,
		Birthdate: p.Birthdate,
		ImageURL:  p.ImageURL,
		TeamID:    teamID,
	}
}

func (s StatLine) model(playerID uint) models.Stats {
	return models.Stats{PlayerID: playerID, Appearances: s.Appearances, Goals: s.Goals, Assists: s.Assists}
}

func (m Match) model() models.Match {
	return models.Match{
		Location:     m.Location,
		Date:         m.Date,
		HomeTeamName: m.HomeTeam,
		AwayTeamName: m.AwayTeam,
		HomeScore:    m.HomeScore,
		AwayScore:    m.AwayScore,
	}
}

func (u User) role() models.Role {
	if u.Role == "" {
		return models.RoleUser
	}
	return models.Role(u.Role)
}
