package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"clubhouse/auth"
	"clubhouse/models"
	"clubhouse/repository"

	"github.com/jonboulle/clockwork"
)

var born = time.Date(2001, 5, 17, 0, 0, 0, 0, time.UTC)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name   string
		id     auth.Identity
		action Action
		want   error
	}{
		{"anonymous viewer", anonymous, ViewPlayers, ErrUnauthenticated},
		{"fan can view players", fan, ViewPlayers, nil},
		{"coach manages players", coach, ManagePlayers, nil},
		{"player cannot manage players", player, ManagePlayers, ErrForbidden},
		{"coach cannot remove players", coach, RemovePlayers, ErrForbidden},
		{"admin removes players", admin, RemovePlayers, nil},
		{"coach cannot manage coaches", coach, ManageCoaches, ErrForbidden},
		{"coach picks lineups", coach, PickLineups, nil},
		{"coach cannot manage matches", coach, ManageMatches, ErrForbidden},
		{"coach updates stats", coach, ManageStats, nil},
		{"fan cannot update stats", fan, ManageStats, ErrForbidden},
		{"coach cannot list users", coach, ViewUsers, ErrForbidden},
		{"admin lists users", admin, ViewUsers, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.id, tt.action)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPlayerServiceAdd(t *testing.T) {
	ctx := context.Background()
	players := newFakePlayers(models.Player{Name: "Jude", Number: 5, Position: "Midfielder", Birthdate: born})
	svc := NewPlayerService(players, newFakeTeams())

	in := PlayerInput{Name: "Kylian", Number: intPtr(9), Position: "Forward", Birthdate: born}
	got, err := svc.Add(ctx, coach, in)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.ID == 0 || got.Number != 9 {
		t.Fatalf("unexpected player %+v", got)
	}

	dup := PlayerInput{Name: "Other", Number: intPtr(5), Position: "Defender", Birthdate: born}
	_, err = svc.Add(ctx, admin, dup)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err.Error() != "player with number 5 already exists" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	if _, err := svc.Add(ctx, player, in); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Add(ctx, anonymous, in); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestPlayerServiceAddValidates(t *testing.T) {
	svc := NewPlayerService(newFakePlayers(), newFakeTeams())

	tests := []struct {
		name string
		in   PlayerInput
	}{
		{"missing number", PlayerInput{Name: "A", Position: "Forward", Birthdate: born}},
		{"negative number", PlayerInput{Name: "A", Number: intPtr(-1), Position: "Forward", Birthdate: born}},
		{"missing name", PlayerInput{Number: intPtr(1), Position: "Forward", Birthdate: born}},
		{"missing birthdate", PlayerInput{Name: "A", Number: intPtr(1), Position: "Forward"}},
		{"unknown team", PlayerInput{Name: "A", Number: intPtr(1), Position: "Forward", Birthdate: born, TeamID: uintPtr(42)}},
		{"future birthdate", PlayerInput{Name: "A", Number: intPtr(1), Position: "Forward", Birthdate: time.Now().AddDate(1, 0, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Add(context.Background(), admin, tt.in); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestPlayerServiceGetByIDNotFound(t *testing.T) {
	svc := NewPlayerService(newFakePlayers(), nil)

	_, err := svc.GetByID(context.Background(), fan, 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err.Error() != "player with id 1 not found" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestPlayerServiceUpdateWithStat(t *testing.T) {
	ctx := context.Background()
	players := newFakePlayers(models.Player{Name: "Fede", Number: 15, Position: "Midfielder", Birthdate: born})
	row := players.rows[1]
	row.Stats = []models.Stats{{ID: 7, PlayerID: 1, Appearances: 3}}
	players.rows[1] = row

	svc := NewPlayerService(players, newFakeTeams())
	got, err := svc.Update(ctx, coach, 1, PlayerUpdate{
		Position: strPtr("Winger"),
		Stat:     &StatsUpdate{ID: 7, Goals: intPtr(2)},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.Position != "Winger" || got.Name != "Fede" {
		t.Fatalf("unexpected player %+v", got)
	}
	if len(got.Stats) != 1 || got.Stats[0].Goals != 2 || got.Stats[0].Appearances != 3 {
		t.Fatalf("unexpected stats %+v", got.Stats)
	}

	_, err = svc.Update(ctx, coach, 1, PlayerUpdate{Stat: &StatsUpdate{ID: 99, Goals: intPtr(1)}})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign stats, got %v", err)
	}
}

func TestPlayerServiceUpdateNumberConflict(t *testing.T) {
	players := newFakePlayers(
		models.Player{Name: "Thibaut", Number: 1, Position: "Goalkeeper", Birthdate: born},
		models.Player{Name: "Andriy", Number: 13, Position: "Goalkeeper", Birthdate: born},
	)
	svc := NewPlayerService(players, nil)

	if _, err := svc.Update(context.Background(), admin, 2, PlayerUpdate{Number: intPtr(1)}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := svc.Update(context.Background(), admin, 2, PlayerUpdate{Number: intPtr(13), Name: strPtr("Lunin")}); err != nil {
		t.Fatalf("expected keeping own number to pass, got %v", err)
	}
}

func TestPlayerServiceRemove(t *testing.T) {
	players := newFakePlayers(models.Player{Name: "Dani", Number: 2, Position: "Defender", Birthdate: born})
	svc := NewPlayerService(players, nil)

	if err := svc.Remove(context.Background(), coach, 1); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Remove(context.Background(), admin, 1); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := svc.Remove(context.Background(), admin, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCoachService(t *testing.T) {
	ctx := context.Background()
	teams := newFakeTeams(models.Team{Name: "Real Madrid"})
	svc := NewCoachService(newFakeCoaches(), teams)

	if _, err := svc.Add(ctx, coach, CoachInput{Name: "Carlo", Job: models.JobCoach}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	c, err := svc.Add(ctx, admin, CoachInput{Name: "Carlo", Job: models.JobCoach, TeamID: uintPtr(1)})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if _, err := svc.Update(ctx, admin, c.ID, CoachUpdate{Job: strPtr("")}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty job, got %v", err)
	}
	updated, err := svc.Update(ctx, admin, c.ID, CoachUpdate{Job: strPtr(models.JobAssistantCoach)})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Job != models.JobAssistantCoach || updated.Name != "Carlo" {
		t.Fatalf("unexpected coach %+v", updated)
	}

	all, err := svc.GetAll(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("expected one public coach, got %d (%v)", len(all), err)
	}

	if err := svc.Remove(ctx, admin, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamServiceStandings(t *testing.T) {
	teams := newFakeTeams(
		models.Team{Name: "Valencia", Points: 10, GoalsFor: 9, GoalsAg: 9},
		models.Team{Name: "Betis", Points: 12, GoalsFor: 14, GoalsAg: 11},
		models.Team{Name: "Villarreal", Points: 12, GoalsFor: 15, GoalsAg: 10},
	)
	svc := NewTeamService(teams)

	if _, err := svc.Standings(context.Background(), anonymous); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	table, err := svc.Standings(context.Background(), fan)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if table[0].Name != "Villarreal" || table[0].Position != 1 || table[0].GoalDifference != 5 {
		t.Fatalf("unexpected leader %+v", table[0])
	}
	if table[2].Name != "Valencia" || table[2].Position != 3 {
		t.Fatalf("unexpected last place %+v", table[2])
	}
}

func TestTeamServiceAddAndUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewTeamService(newFakeTeams(models.Team{Name: "Osasuna"}))

	if _, err := svc.Add(ctx, admin, TeamInput{Name: "Osasuna"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := svc.Add(ctx, admin, TeamInput{Name: "Getafe", Points: -1}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	team, err := svc.Add(ctx, admin, TeamInput{Name: "Getafe"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	updated, err := svc.Update(ctx, admin, team.ID, TeamUpdate{Points: intPtr(3), GoalsFor: intPtr(2)})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Points != 3 || updated.GoalsFor != 2 || updated.Name != "Getafe" {
		t.Fatalf("unexpected team %+v", updated)
	}

	if err := svc.Delete(ctx, coach, team.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestMatchServicePublishesEvents(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	notifier := &recordingNotifier{}
	players := newFakePlayers(models.Player{Name: "Iker", Number: 1, Position: "Goalkeeper", Birthdate: born})
	svc := NewMatchService(newFakeMatches(players), notifier, clock)

	in := MatchInput{
		Location:     "Mestalla",
		Date:         time.Date(2025, 2, 1, 18, 30, 0, 0, time.UTC),
		HomeTeamName: "Valencia",
		AwayTeamName: "Real Madrid",
	}
	if _, err := svc.Add(ctx, coach, in); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	m, err := svc.Add(ctx, admin, in)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if _, err := svc.Update(ctx, admin, m.ID, MatchUpdate{HomeScore: intPtr(1), AwayScore: intPtr(2)}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	lineup, err := svc.AddPlayers(ctx, coach, m.ID, LineupInput{PlayerIDs: []uint{1, 1}})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(lineup.Players) != 1 {
		t.Fatalf("expected duplicate ids to collapse, got %d players", len(lineup.Players))
	}

	if err := svc.Delete(ctx, admin, m.ID); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	want := []string{MatchCreated, MatchUpdated, MatchLineup, MatchDeleted}
	if len(notifier.events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(notifier.events))
	}
	for i, kind := range want {
		if notifier.events[i].Type != kind {
			t.Fatalf("event %d: expected %s, got %s", i, kind, notifier.events[i].Type)
		}
		if !notifier.events[i].At.Equal(clock.Now().UTC()) {
			t.Fatalf("event %d: expected fake clock time, got %s", i, notifier.events[i].At)
		}
	}
}

func TestMatchServiceAddPlayersErrors(t *testing.T) {
	ctx := context.Background()
	players := newFakePlayers()
	matches := newFakeMatches(players)
	svc := NewMatchService(matches, nil, nil)

	if _, err := svc.AddPlayers(ctx, coach, 1, LineupInput{PlayerIDs: []uint{1}}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing match, got %v", err)
	}
	if _, err := svc.AddPlayers(ctx, coach, 1, LineupInput{PlayerIDs: []uint{0}}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for zero player id, got %v", err)
	}
	if _, err := svc.AddPlayers(ctx, coach, 1, LineupInput{PlayerIDs: []uint{}}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty lineup on missing match, got %v", err)
	}

	m := &models.Match{Location: "Anoeta", Date: born, HomeTeamName: "Real Sociedad", AwayTeamName: "Athletic"}
	if err := matches.Create(ctx, m); err != nil {
		t.Fatalf("seed match: %v", err)
	}
	if _, err := svc.AddPlayers(ctx, player, m.ID, LineupInput{PlayerIDs: []uint{1}}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.AddPlayers(ctx, admin, m.ID, LineupInput{PlayerIDs: []uint{404}}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing player, got %v", err)
	}
}

func TestMatchServiceEmptyLineupReturnsMatch(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	players := newFakePlayers(models.Player{Name: "Unai", Number: 1, Position: "Goalkeeper", Birthdate: born})
	matches := newFakeMatches(players)
	svc := NewMatchService(matches, notifier, clockwork.NewFakeClock())

	m := &models.Match{Location: "Anoeta", Date: born, HomeTeamName: "Real Sociedad", AwayTeamName: "Athletic"}
	if err := matches.Create(ctx, m); err != nil {
		t.Fatalf("seed match: %v", err)
	}
	if _, err := matches.AddPlayers(ctx, m.ID, []uint{1}); err != nil {
		t.Fatalf("seed lineup: %v", err)
	}

	got, err := svc.AddPlayers(ctx, coach, m.ID, LineupInput{PlayerIDs: []uint{}})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.ID != m.ID || len(got.Players) != 1 {
		t.Fatalf("expected unchanged match with 1 player, got %+v", got)
	}
	if len(notifier.events) != 0 {
		t.Fatalf("expected no events for empty lineup, got %d", len(notifier.events))
	}
}

func TestMatchServiceClearScores(t *testing.T) {
	ctx := context.Background()
	svc := NewMatchService(newFakeMatches(newFakePlayers()), nil, nil)

	m, err := svc.Add(ctx, admin, MatchInput{
		Location:     "Mestalla",
		Date:         born,
		HomeTeamName: "Valencia",
		AwayTeamName: "Villarreal",
		HomeScore:    intPtr(3),
		AwayScore:    intPtr(0),
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !m.Played() {
		t.Fatal("expected match with scores to count as played")
	}

	got, err := svc.Update(ctx, admin, m.ID, MatchUpdate{ClearScores: true})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.Played() || got.HomeScore != nil || got.AwayScore != nil {
		t.Fatalf("expected scores cleared, got %v-%v", got.HomeScore, got.AwayScore)
	}

	got, err = svc.Update(ctx, admin, m.ID, MatchUpdate{ClearScores: true, HomeScore: intPtr(1), AwayScore: intPtr(1)})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.HomeScore == nil || *got.HomeScore != 1 || got.AwayScore == nil || *got.AwayScore != 1 {
		t.Fatalf("expected new scores to apply after clearing, got %v-%v", got.HomeScore, got.AwayScore)
	}
}

func TestStatsService(t *testing.T) {
	ctx := context.Background()
	players := newFakePlayers(models.Player{Name: "Karim", Number: 9, Position: "Forward", Birthdate: born})
	svc := NewStatsService(newFakeStats(), players)

	if _, err := svc.AddToPlayer(ctx, fan, 1, StatsInput{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	_, err := svc.AddToPlayer(ctx, coach, 2, StatsInput{})
	if !errors.Is(err, ErrNotFound) || err.Error() != "player with id 2 not found" {
		t.Fatalf("expected player not found, got %v", err)
	}
	if _, err := svc.AddToPlayer(ctx, coach, 1, StatsInput{Goals: -1}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}

	line, err := svc.AddToPlayer(ctx, coach, 1, StatsInput{Appearances: 30, Goals: 20, Assists: 8})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	updated, err := svc.Update(ctx, coach, line.ID, StatsUpdate{Goals: intPtr(21)})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if updated.Goals != 21 || updated.Assists != 8 {
		t.Fatalf("unexpected stats %+v", updated)
	}

	if err := svc.Remove(ctx, coach, line.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Remove(ctx, admin, line.ID); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestUserServiceSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	users := newFakeUsers()
	svc := NewUserService(users, stubTokens{}, clock)

	u, err := svc.Signup(ctx, SignupInput{Email: " Coach@Club.test ", Password: "whistle-blower", Role: "Coach"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if u.Email != "coach@club.test" || u.Role != models.RoleCoach {
		t.Fatalf("unexpected user %+v", u)
	}
	if u.Password == "whistle-blower" {
		t.Fatal("expected password to be hashed")
	}

	_, err = svc.Signup(ctx, SignupInput{Email: "coach@club.test", Password: "whistle-blower"})
	if !errors.Is(err, ErrConflict) || err.Error() != "user with email coach@club.test already exists" {
		t.Fatalf("expected duplicate email conflict, got %v", err)
	}

	res, err := svc.Login(ctx, LoginInput{Email: "coach@club.test", Password: "whistle-blower"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if res.Message != "User authenticated" || res.Token != "token-for-coach@club.test" || res.Role != models.RoleCoach {
		t.Fatalf("unexpected login result %+v", res)
	}
	if !users.lastLogin[u.ID].Equal(clock.Now().UTC()) {
		t.Fatalf("expected last login to be recorded, got %s", users.lastLogin[u.ID])
	}

	_, err = svc.Login(ctx, LoginInput{Email: "coach@club.test", Password: "wrong-password"})
	if !errors.Is(err, ErrUnauthenticated) || err.Error() != "incorrect password" {
		t.Fatalf("expected incorrect password, got %v", err)
	}
	_, err = svc.Login(ctx, LoginInput{Email: "ghost@club.test", Password: "whistle-blower"})
	if !errors.Is(err, ErrUnauthenticated) || err.Error() != "user not found" {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestUserServiceSignupRules(t *testing.T) {
	svc := NewUserService(newFakeUsers(), stubTokens{}, nil)

	if _, err := svc.Signup(context.Background(), SignupInput{Email: "boss@club.test", Password: "long-enough", Role: "Admin"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin signup, got %v", err)
	}
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "not-an-email", Password: "long-enough"}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for bad email, got %v", err)
	}

	u, err := svc.Signup(context.Background(), SignupInput{Email: "fan@club.test", Password: "long-enough"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if u.Role != models.RoleUser {
		t.Fatalf("expected default role User, got %s", u.Role)
	}

	if _, err := svc.GetAll(context.Background(), coach); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	all, err := svc.GetAll(context.Background(), admin)
	if err != nil || len(all) != 1 {
		t.Fatalf("expected one user, got %d (%v)", len(all), err)
	}
}

// staleUsers misses on lookup so the second signup reaches Create, as when
// two requests for the same email race.
type staleUsers struct {
	*fakeUsers
}

func (staleUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, repository.ErrNotFound
}

func TestUserServiceSignupRaceIsConflict(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(staleUsers{newFakeUsers()}, stubTokens{}, nil)

	if _, err := svc.Signup(ctx, SignupInput{Email: "fan@club.test", Password: "long-enough"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	_, err := svc.Signup(ctx, SignupInput{Email: "fan@club.test", Password: "long-enough"})
	if !errors.Is(err, ErrConflict) || err.Error() != "user with email fan@club.test already exists" {
		t.Fatalf("expected duplicate email conflict, got %v", err)
	}
}
