package services

import (
	"context"
	"sort"
	"time"

	"clubhouse/auth"
	"clubhouse/models"
	"clubhouse/repository"
)

var (
	admin     = auth.Identity{Email: "admin@club.test", Role: models.RoleAdmin}
	coach     = auth.Identity{Email: "coach@club.test", Role: models.RoleCoach}
	player    = auth.Identity{Email: "player@club.test", Role: models.RolePlayer}
	fan       = auth.Identity{Email: "fan@club.test", Role: models.RoleUser}
	anonymous = auth.Identity{}
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func uintPtr(v uint) *uint    { return &v }

type fakePlayers struct {
	rows   map[uint]models.Player
	nextID uint
}

func newFakePlayers(seed ...models.Player) *fakePlayers {
	f := &fakePlayers{rows: map[uint]models.Player{}}
	for _, p := range seed {
		_ = f.Create(context.Background(), &p)
	}
	return f
}

func (f *fakePlayers) FindAll(ctx context.Context) ([]models.Player, error) {
	out := make([]models.Player, 0, len(f.rows))
	for _, p := range f.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (f *fakePlayers) FindByID(ctx context.Context, id uint) (*models.Player, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Stats = append([]models.Stats(nil), p.Stats...)
	return &p, nil
}

func (f *fakePlayers) FindByNumber(ctx context.Context, number int) (*models.Player, error) {
	for _, p := range f.rows {
		if p.Number == number {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePlayers) Create(ctx context.Context, p *models.Player) error {
	if err := p.Validate(); err != nil {
		return err
	}
	f.nextID++
	p.ID = f.nextID
	f.rows[p.ID] = *p
	return nil
}

func (f *fakePlayers) Update(ctx context.Context, p *models.Player, stats *models.Stats) error {
	existing, ok := f.rows[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := p.Validate(); err != nil {
		return err
	}
	lines := existing.Stats
	if stats != nil {
		if err := stats.Validate(); err != nil {
			return err
		}
		for i := range lines {
			if lines[i].ID == stats.ID {
				lines[i] = *stats
			}
		}
	}
	updated := *p
	updated.Stats = lines
	f.rows[p.ID] = updated
	return nil
}

func (f *fakePlayers) Delete(ctx context.Context, id uint) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeTeams struct {
	rows   map[uint]models.Team
	nextID uint
}

func newFakeTeams(seed ...models.Team) *fakeTeams {
	f := &fakeTeams{rows: map[uint]models.Team{}}
	for _, t := range seed {
		_ = f.Create(context.Background(), &t)
	}
	return f
}

func (f *fakeTeams) FindAll(ctx context.Context) ([]models.Team, error) {
	out := make([]models.Team, 0, len(f.rows))
	for _, t := range f.rows {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeTeams) Standings(ctx context.Context) ([]models.Team, error) {
	out, _ := f.FindAll(ctx)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Name < b.Name
	})
	return out, nil
}

func (f *fakeTeams) FindByID(ctx context.Context, id uint) (*models.Team, error) {
	t, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (f *fakeTeams) FindByName(ctx context.Context, name string) (*models.Team, error) {
	for _, t := range f.rows {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTeams) Create(ctx context.Context, t *models.Team) error {
	if err := t.Validate(); err != nil {
		return err
	}
	f.nextID++
	t.ID = f.nextID
	f.rows[t.ID] = *t
	return nil
}

func (f *fakeTeams) Update(ctx context.Context, t *models.Team) error {
	if _, ok := f.rows[t.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := t.Validate(); err != nil {
		return err
	}
	f.rows[t.ID] = *t
	return nil
}

func (f *fakeTeams) Delete(ctx context.Context, id uint) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeCoaches struct {
	rows   map[uint]models.Coach
	nextID uint
}

func newFakeCoaches() *fakeCoaches {
	return &fakeCoaches{rows: map[uint]models.Coach{}}
}

func (f *fakeCoaches) FindAll(ctx context.Context) ([]models.Coach, error) {
	out := make([]models.Coach, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCoaches) FindByID(ctx context.Context, id uint) (*models.Coach, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCoaches) Create(ctx context.Context, c *models.Coach) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f.nextID++
	c.ID = f.nextID
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeCoaches) Update(ctx context.Context, c *models.Coach) error {
	if _, ok := f.rows[c.ID]; !ok {
		return repository.ErrNotFound
	}
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeCoaches) Delete(ctx context.Context, id uint) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeMatches struct {
	rows    map[uint]models.Match
	players *fakePlayers
	nextID  uint
}

func newFakeMatches(players *fakePlayers) *fakeMatches {
	return &fakeMatches{rows: map[uint]models.Match{}, players: players}
}

func (f *fakeMatches) FindAll(ctx context.Context) ([]models.Match, error) {
	out := make([]models.Match, 0, len(f.rows))
	for _, m := range f.rows {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMatches) FindByID(ctx context.Context, id uint) (*models.Match, error) {
	m, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (f *fakeMatches) FindPlayers(ctx context.Context, matchID uint) ([]models.Player, error) {
	m, ok := f.rows[matchID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m.Players, nil
}

func (f *fakeMatches) Create(ctx context.Context, m *models.Match) error {
	if err := m.Validate(); err != nil {
		return err
	}
	f.nextID++
	m.ID = f.nextID
	f.rows[m.ID] = *m
	return nil
}

func (f *fakeMatches) Update(ctx context.Context, m *models.Match) error {
	if _, ok := f.rows[m.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := m.Validate(); err != nil {
		return err
	}
	f.rows[m.ID] = *m
	return nil
}

func (f *fakeMatches) Delete(ctx context.Context, id uint) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeMatches) AddPlayers(ctx context.Context, matchID uint, ids []uint) (*models.Match, error) {
	m, ok := f.rows[matchID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, id := range ids {
		p, err := f.players.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		m.Players = append(m.Players, *p)
	}
	f.rows[matchID] = m
	return &m, nil
}

type fakeStats struct {
	rows   map[uint]models.Stats
	nextID uint
}

func newFakeStats() *fakeStats {
	return &fakeStats{rows: map[uint]models.Stats{}}
}

func (f *fakeStats) FindAll(ctx context.Context) ([]models.Stats, error) {
	out := make([]models.Stats, 0, len(f.rows))
	for _, s := range f.rows {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStats) FindByID(ctx context.Context, id uint) (*models.Stats, error) {
	s, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (f *fakeStats) Create(ctx context.Context, s *models.Stats) error {
	if err := s.Validate(); err != nil {
		return err
	}
	f.nextID++
	s.ID = f.nextID
	f.rows[s.ID] = *s
	return nil
}

func (f *fakeStats) Update(ctx context.Context, s *models.Stats) error {
	if _, ok := f.rows[s.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := s.Validate(); err != nil {
		return err
	}
	f.rows[s.ID] = *s
	return nil
}

func (f *fakeStats) Delete(ctx context.Context, id uint) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeUsers struct {
	rows      map[string]models.User
	nextID    uint
	lastLogin map[uint]time.Time
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{rows: map[string]models.User{}, lastLogin: map[uint]time.Time{}}
}

func (f *fakeUsers) FindAll(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.rows))
	for _, u := range f.rows {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.rows[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) Create(ctx context.Context, u *models.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if _, ok := f.rows[u.Email]; ok {
		return repository.ErrDuplicate
	}
	f.nextID++
	u.ID = f.nextID
	f.rows[u.Email] = *u
	return nil
}

func (f *fakeUsers) TouchLogin(ctx context.Context, id uint, at time.Time) error {
	f.lastLogin[id] = at
	return nil
}

type recordingNotifier struct {
	events []MatchEvent
}

func (n *recordingNotifier) Publish(e MatchEvent) {
	n.events = append(n.events, e)
}

type stubTokens struct{}

func (stubTokens) Issue(email string, role models.Role) (string, error) {
	return "token-for-" + email, nil
}
