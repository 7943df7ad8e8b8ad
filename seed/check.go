package seed

import (
	"fmt"
	"strings"

	"clubhouse/models"
)

// Problem is one invalid record in a seed file.
type Problem struct {
	Section string
	Index   int
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s[%d]: %s", p.Section, p.Index, p.Message)
}

// Check validates every record with the same rules the database hooks
// apply, and checks the cross references between sections.
func Check(f *File) []Problem {
	var problems []Problem
	add := func(section string, i int, format string, args ...interface{}) {
		problems = append(problems, Problem{Section: section, Index: i, Message: fmt.Sprintf(format, args...)})
	}
	validate := func(section string, i int, v interface{ Validate() error }) {
		if err := v.Validate(); err != nil {
			add(section, i, "%s", err.Error())
		}
	}

	teams := make(map[string]bool, len(f.Teams))
	for i, t := range f.Teams {
		m := t.model()
		validate("teams", i, &m)
		if teams[t.Name] {
			add("teams", i, "duplicate team name %q", t.Name)
		}
		teams[t.Name] = true
	}

	knownTeam := func(section string, i int, name string) {
		if name != "" && !teams[name] {
			add(section, i, "unknown team %q", name)
		}
	}

	for i, c := range f.Coaches {
		m := c.model(nil)
		validate("coaches", i, &m)
		knownTeam("coaches", i, c.Team)
	}

	numbers := make(map[int]bool, len(f.Players))
	for i, p := range f.Players {
		m := p.model(nil)
		validate("players", i, &m)
		knownTeam("players", i, p.Team)
		if numbers[p.Number] {
			add("players", i, "duplicate player number %d", p.Number)
		}
		numbers[p.Number] = true
		for j, s := range p.Stats {
			line := s.model(uint(i + 1))
			if err := line.Validate(); err != nil {
				add("players", i, "stats[%d]: %s", j, err.Error())
			}
		}
	}

	for i, m := range f.Matches {
		mm := m.model()
		validate("matches", i, &mm)
		for _, n := range m.Lineup {
			if !numbers[n] {
				add("matches", i, "lineup refers to unknown player number %d", n)
			}
		}
	}

	emails := make(map[string]bool, len(f.Users))
	for i, u := range f.Users {
		email := strings.ToLower(strings.TrimSpace(u.Email))
		m := models.User{Email: email, Password: u.Password, Role: u.role()}
		validate("users", i, &m)
		if emails[email] {
			add("users", i, "duplicate email %q", email)
		}
		emails[email] = true
	}

	return problems
}
