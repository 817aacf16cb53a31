// Package access decides which authenticated actor may touch which station.
// Status-changing operations route through here before any device command is
// published.
package access

import (
	"context"
	"errors"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/internal/repository"
)

var (
	ErrUnauthorized = errors.New("missing or invalid token")
	ErrForbidden    = errors.New("actor may not access this station")
)

// Actor is the authenticated principal attached to a request.
type Actor struct {
	Role       model.Role        `json:"role"`
	SuperAdmin *model.SuperAdmin `json:"super_admin,omitempty"`
	Admin      *model.Admin      `json:"admin,omitempty"`
	User       *model.User       `json:"user,omitempty"`
}

// ID returns the numeric id of whichever principal the actor holds.
func (a Actor) ID() int64 {
	switch a.Role {
	case model.RoleSuperAdmin:
		if a.SuperAdmin != nil {
			return a.SuperAdmin.ID
		}
	case model.RoleAdmin:
		if a.Admin != nil {
			return a.Admin.ID
		}
	case model.RoleUser:
		if a.User != nil {
			return a.User.ID
		}
	}
	return 0
}

type Gate struct {
	stations    *repository.StationRepository
	assignments *repository.AssignmentRepository
	accounts    *repository.AccountRepository
}

func NewGate(stations *repository.StationRepository, assignments *repository.AssignmentRepository, accounts *repository.AccountRepository) *Gate {
	return &Gate{
		stations:    stations,
		assignments: assignments,
		accounts:    accounts,
	}
}

// CanAccessStation reports whether the actor may operate on the station.
// Superadmins see everything. An admin sees stations registered under their
// own portal id. A user sees only stations currently assigned to them.
func (g *Gate) CanAccessStation(ctx context.Context, actor Actor, station *model.Station) (bool, error) {
	switch actor.Role {
	case model.RoleSuperAdmin:
		return true, nil

	case model.RoleAdmin:
		if actor.Admin == nil || station.CreatedByAdminID == nil {
			return false, nil
		}
		creator, err := g.accounts.GetAdmin(ctx, *station.CreatedByAdminID)
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return creator.PortalID == actor.Admin.PortalID, nil

	case model.RoleUser:
		if actor.User == nil {
			return false, nil
		}
		return g.assignments.ExistsForUserStation(ctx, actor.User.ID, station.StationID)
	}

	return false, nil
}

// CanAccessStationID is CanAccessStation with a lookup by station id.
func (g *Gate) CanAccessStationID(ctx context.Context, actor Actor, stationID string) (bool, error) {
	station, err := g.stations.GetByStationID(ctx, stationID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return g.CanAccessStation(ctx, actor, station)
}
