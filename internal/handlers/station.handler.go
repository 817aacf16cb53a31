package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/ssafuel/station-gateway/internal/access"
	"github.com/ssafuel/station-gateway/internal/model"
	xhttp "github.com/ssafuel/station-gateway/pkg/http"
)

type StationAPI interface {
	Create(ctx context.Context, actor access.Actor, req model.StationCreateRequest) (*model.Station, error)
	Get(ctx context.Context, actor access.Actor, stationID string) (*model.Station, error)
	List(ctx context.Context, actor access.Actor) ([]*model.Station, error)
	Update(ctx context.Context, actor access.Actor, stationID string, req model.StationUpdateRequest) (*model.Station, error)
	Delete(ctx context.Context, actor access.Actor, stationID string) error
	Assign(ctx context.Context, actor access.Actor, stationID string, userID int64) (*model.Assignment, error)
	Unassign(ctx context.Context, actor access.Actor, stationID string) error
}

type StationHandler struct {
	svc StationAPI
}

func RegisterStationRoutes(e *router.Group, h *StationHandler, auth *Authenticator) {
	e.POST("/stations", auth.Wrap(h.CreateStation))
	e.GET("/stations", auth.Wrap(h.ListStations))
	e.GET("/stations/{station_id}", auth.Wrap(h.GetStation))
	e.PUT("/stations/{station_id}", auth.Wrap(h.UpdateStation))
	e.DELETE("/stations/{station_id}", auth.Wrap(h.DeleteStation))
	e.POST("/stations/{station_id}/assignment", auth.Wrap(h.AssignStation))
	e.DELETE("/stations/{station_id}/assignment", auth.Wrap(h.UnassignStation))
}

func NewStationHandler(stationService StationAPI) *StationHandler {
	return &StationHandler{
		svc: stationService,
	}
}

type assignRequest struct {
	UserID int64 `json:"user_id"`
}

type stationListResponse struct {
	Items []*model.Station `json:"items"`
}

func (h *StationHandler) CreateStation(ctx *xhttp.RequestCtx, actor access.Actor) {
	var req model.StationCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	station, err := h.svc.Create(ctx, actor, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, station)
}

func (h *StationHandler) GetStation(ctx *xhttp.RequestCtx, actor access.Actor) {
	station, err := h.svc.Get(ctx, actor, param(ctx, "station_id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, station)
}

func (h *StationHandler) ListStations(ctx *xhttp.RequestCtx, actor access.Actor) {
	items, err := h.svc.List(ctx, actor)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, stationListResponse{Items: items})
}

func (h *StationHandler) UpdateStation(ctx *xhttp.RequestCtx, actor access.Actor) {
	var req model.StationUpdateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	station, err := h.svc.Update(ctx, actor, param(ctx, "station_id"), req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, station)
}

func (h *StationHandler) DeleteStation(ctx *xhttp.RequestCtx, actor access.Actor) {
	if err := h.svc.Delete(ctx, actor, param(ctx, "station_id")); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "deleted"})
}

func (h *StationHandler) AssignStation(ctx *xhttp.RequestCtx, actor access.Actor) {
	var req assignRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.UserID == 0 {
		writeError(ctx, xhttp.StatusBadRequest, "user_id is required")
		return
	}

	assignment, err := h.svc.Assign(ctx, actor, param(ctx, "station_id"), req.UserID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, assignment)
}

func (h *StationHandler) UnassignStation(ctx *xhttp.RequestCtx, actor access.Actor) {
	if err := h.svc.Unassign(ctx, actor, param(ctx, "station_id")); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "unassigned"})
}
