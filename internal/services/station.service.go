package services

import (
	"context"
	"errors"

	"github.com/ssafuel/station-gateway/internal/access"
	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/internal/repository"
)

var ErrForbidden = errors.New("actor may not perform this operation")

type StationStore interface {
	Create(ctx context.Context, s *model.Station) (*model.Station, error)
	GetByStationID(ctx context.Context, stationID string) (*model.Station, error)
	List(ctx context.Context) ([]*model.Station, error)
	ListByAdmin(ctx context.Context, adminID int64) ([]*model.Station, error)
	ListByIDs(ctx context.Context, stationIDs []string) ([]*model.Station, error)
	Update(ctx context.Context, stationID string, req model.StationUpdateRequest) (*model.Station, error)
	Delete(ctx context.Context, stationID string) error
}

type AssignmentStore interface {
	Replace(ctx context.Context, a *model.Assignment) (*model.Assignment, error)
	GetByStation(ctx context.Context, stationID string) (*model.Assignment, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Assignment, error)
	Delete(ctx context.Context, stationID string) error
}

type StationService struct {
	stations    StationStore
	assignments AssignmentStore
	gate        *access.Gate
}

func NewStationService(stations StationStore, assignments AssignmentStore, gate *access.Gate) *StationService {
	return &StationService{
		stations:    stations,
		assignments: assignments,
		gate:        gate,
	}
}

// Create registers a station owned by the calling admin. Superadmins may
// also create stations; those have no owning admin.
func (s *StationService) Create(ctx context.Context, actor access.Actor, req model.StationCreateRequest) (*model.Station, error) {
	if actor.Role != model.RoleAdmin && actor.Role != model.RoleSuperAdmin {
		return nil, ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	station := &model.Station{
		Name:        req.Name,
		StationID:   req.StationID,
		Location:    req.Location,
		Description: req.Description,
		Category:    req.Category,
		Status:      model.StationStatusActive,
	}
	if actor.Role == model.RoleAdmin && actor.Admin != nil {
		id := actor.Admin.ID
		station.CreatedByAdminID = &id
	}

	return s.stations.Create(ctx, station)
}

func (s *StationService) Get(ctx context.Context, actor access.Actor, stationID string) (*model.Station, error) {
	station, err := s.stations.GetByStationID(ctx, stationID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	ok, err := s.gate.CanAccessStation(ctx, actor, station)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return station, nil
}

// List returns the stations visible to the actor: all of them for a
// superadmin, owned stations for an admin, assigned stations for a user.
func (s *StationService) List(ctx context.Context, actor access.Actor) ([]*model.Station, error) {
	switch actor.Role {
	case model.RoleSuperAdmin:
		return s.stations.List(ctx)

	case model.RoleAdmin:
		if actor.Admin == nil {
			return nil, ErrForbidden
		}
		return s.stations.ListByAdmin(ctx, actor.Admin.ID)

	case model.RoleUser:
		if actor.User == nil {
			return nil, ErrForbidden
		}
		assignments, err := s.assignments.ListByUser(ctx, actor.User.ID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(assignments))
		for i, a := range assignments {
			ids[i] = a.StationID
		}
		return s.stations.ListByIDs(ctx, ids)
	}

	return nil, ErrForbidden
}

func (s *StationService) Update(ctx context.Context, actor access.Actor, stationID string, req model.StationUpdateRequest) (*model.Station, error) {
	if err := s.authorize(ctx, actor, stationID); err != nil {
		return nil, err
	}
	updated, err := s.stations.Update(ctx, stationID, req)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return updated, nil
}

// Delete hard-deletes the station and cascades to devices and assignments.
func (s *StationService) Delete(ctx context.Context, actor access.Actor, stationID string) error {
	if err := s.authorize(ctx, actor, stationID); err != nil {
		return err
	}
	return mapNotFound(s.stations.Delete(ctx, stationID))
}

// Assign binds the station to a user, replacing any prior assignment.
func (s *StationService) Assign(ctx context.Context, actor access.Actor, stationID string, userID int64) (*model.Assignment, error) {
	if actor.Role != model.RoleAdmin && actor.Role != model.RoleSuperAdmin {
		return nil, ErrForbidden
	}
	if err := s.authorize(ctx, actor, stationID); err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		UserID:    userID,
		StationID: stationID,
	}
	if actor.Admin != nil {
		assignment.AdminID = actor.Admin.ID
		name := actor.Admin.Name
		assignment.AdminName = &name
	}

	return s.assignments.Replace(ctx, assignment)
}

func (s *StationService) Unassign(ctx context.Context, actor access.Actor, stationID string) error {
	if actor.Role != model.RoleAdmin && actor.Role != model.RoleSuperAdmin {
		return ErrForbidden
	}
	if err := s.authorize(ctx, actor, stationID); err != nil {
		return err
	}
	return mapNotFound(s.assignments.Delete(ctx, stationID))
}

func (s *StationService) authorize(ctx context.Context, actor access.Actor, stationID string) error {
	station, err := s.stations.GetByStationID(ctx, stationID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	ok, err := s.gate.CanAccessStation(ctx, actor, station)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
