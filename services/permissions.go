// services/permissions.go
package services

import (
	"clubhouse/auth"
	"clubhouse/models"
)

// Action names one guarded service operation.
type Action string

const (
	ViewPlayers   Action = "players:view"
	ManagePlayers Action = "players:manage"
	RemovePlayers Action = "players:remove"

	ManageCoaches Action = "coaches:manage"

	ViewTeams   Action = "teams:view"
	ManageTeams Action = "teams:manage"

	ViewMatches   Action = "matches:view"
	ManageMatches Action = "matches:manage"
	PickLineups   Action = "matches:lineup"

	ViewStats   Action = "stats:view"
	ManageStats Action = "stats:manage"
	RemoveStats Action = "stats:remove"

	ViewUsers Action = "users:view"
)

// anyRole marks actions open to every signed-in caller.
var anyRole = []models.Role{models.RoleAdmin, models.RoleCoach, models.RolePlayer, models.RoleUser}

var permissions = map[Action][]models.Role{
	ViewPlayers:   anyRole,
	ManagePlayers: {models.RoleAdmin, models.RoleCoach},
	RemovePlayers: {models.RoleAdmin},

	ManageCoaches: {models.RoleAdmin},

	ViewTeams:   anyRole,
	ManageTeams: {models.RoleAdmin},

	ViewMatches:   anyRole,
	ManageMatches: {models.RoleAdmin},
	PickLineups:   {models.RoleAdmin, models.RoleCoach},

	ViewStats:   anyRole,
	ManageStats: {models.RoleAdmin, models.RoleCoach},
	RemoveStats: {models.RoleAdmin},

	ViewUsers: {models.RoleAdmin},
}

var denials = map[Action]string{
	ManagePlayers: "you do not have the permission to manage players",
	RemovePlayers: "only admin can remove a player",
	ManageCoaches: "only admin has the permission to manage coaches",
	ManageTeams:   "only admin has the permission to manage teams",
	ManageMatches: "only admin has the permission to manage matches",
	PickLineups:   "you do not have the permission to add players to a match",
	ManageStats:   "you are not authorized to update stats",
	RemoveStats:   "only admin can remove stats",
	ViewUsers:     "only admin can list users",
}

// Authorize checks the caller against the allow-list for action.
func Authorize(id auth.Identity, action Action) error {
	if !id.Authenticated() {
		return newError(ErrUnauthenticated, "authentication required")
	}
	if id.Role.In(permissions[action]...) {
		return nil
	}
	msg, ok := denials[action]
	if !ok {
		msg = "you do not have the permission to perform this action"
	}
	return newError(ErrForbidden, "%s", msg)
}
