package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/ssafuel/station-gateway/internal/access"
	"github.com/ssafuel/station-gateway/internal/model"
	xhttp "github.com/ssafuel/station-gateway/pkg/http"
)

type DeviceAPI interface {
	CreateBowser(ctx context.Context, b *model.Bowser) (*model.Bowser, error)
	GetBowser(ctx context.Context, bowserID string) (*model.Bowser, error)
	ListBowsers(ctx context.Context, stationID string) ([]*model.Bowser, error)
	UpdateBowser(ctx context.Context, bowserID string, req model.DeviceUpdateRequest) (*model.Bowser, error)
	DeleteBowser(ctx context.Context, bowserID string) error

	CreateStationary(ctx context.Context, s *model.Stationary) (*model.Stationary, error)
	GetStationary(ctx context.Context, stationaryID string) (*model.Stationary, error)
	ListStationaries(ctx context.Context, stationID string) ([]*model.Stationary, error)
	UpdateStationary(ctx context.Context, stationaryID string, req model.DeviceUpdateRequest) (*model.Stationary, error)
	DeleteStationary(ctx context.Context, stationaryID string) error

	CreateTank(ctx context.Context, t *model.Tank) (*model.Tank, error)
	GetTank(ctx context.Context, tankID string) (*model.Tank, error)
	ListTanks(ctx context.Context, stationID string) ([]*model.Tank, error)
	UpdateTank(ctx context.Context, tankID string, req model.DeviceUpdateRequest) (*model.Tank, error)
	DeleteTank(ctx context.Context, tankID string) error
}

// StationGate answers whether an actor may touch devices of a station.
type StationGate interface {
	CanAccessStationID(ctx context.Context, actor access.Actor, stationID string) (bool, error)
}

type DeviceHandler struct {
	svc  DeviceAPI
	gate StationGate
}

func RegisterDeviceRoutes(e *router.Group, h *DeviceHandler, auth *Authenticator) {
	e.POST("/devices/bowsers", auth.Wrap(h.CreateBowser))
	e.GET("/devices/bowsers", auth.Wrap(h.ListBowsers))
	e.GET("/devices/bowsers/{id}", auth.Wrap(h.GetBowser))
	e.PUT("/devices/bowsers/{id}", auth.Wrap(h.UpdateBowser))
	e.DELETE("/devices/bowsers/{id}", auth.Wrap(h.DeleteBowser))

	e.POST("/devices/stationaries", auth.Wrap(h.CreateStationary))
	e.GET("/devices/stationaries", auth.Wrap(h.ListStationaries))
	e.GET("/devices/stationaries/{id}", auth.Wrap(h.GetStationary))
	e.PUT("/devices/stationaries/{id}", auth.Wrap(h.UpdateStationary))
	e.DELETE("/devices/stationaries/{id}", auth.Wrap(h.DeleteStationary))

	e.POST("/devices/tanks", auth.Wrap(h.CreateTank))
	e.GET("/devices/tanks", auth.Wrap(h.ListTanks))
	e.GET("/devices/tanks/{id}", auth.Wrap(h.GetTank))
	e.PUT("/devices/tanks/{id}", auth.Wrap(h.UpdateTank))
	e.DELETE("/devices/tanks/{id}", auth.Wrap(h.DeleteTank))
}

func NewDeviceHandler(deviceService DeviceAPI, gate StationGate) *DeviceHandler {
	return &DeviceHandler{
		svc:  deviceService,
		gate: gate,
	}
}

// requireStationAccess answers false after writing the response when the
// actor may not touch the station.
func (h *DeviceHandler) requireStationAccess(ctx *xhttp.RequestCtx, actor access.Actor, stationID string) bool {
	if stationID == "" {
		writeError(ctx, xhttp.StatusBadRequest, "station_id is required")
		return false
	}
	ok, err := h.gate.CanAccessStationID(ctx, actor, stationID)
	if err != nil {
		writeServiceError(ctx, err)
		return false
	}
	if !ok {
		writeError(ctx, xhttp.StatusForbidden, access.ErrForbidden.Error())
		return false
	}
	return true
}

/* --------------------------------- Bowsers ---------------------------------- */

func (h *DeviceHandler) CreateBowser(ctx *xhttp.RequestCtx, actor access.Actor) {
	var b model.Bowser
	if err := readJSON(ctx, &b); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if !h.requireStationAccess(ctx, actor, b.StationID) {
		return
	}

	created, err := h.svc.CreateBowser(ctx, &b)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *DeviceHandler) GetBowser(ctx *xhttp.RequestCtx, actor access.Actor) {
	b, err := h.svc.GetBowser(ctx, param(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if !h.requireStationAccess(ctx, actor, b.StationID) {
		return
	}
	writeJSON(ctx, xhttp.StatusOK, b)
}

func (h *DeviceHandler) ListBowsers(ctx *xhttp.RequestCtx, actor access.Actor) {
	stationID := query(ctx, "station_id")
	if !h.requireStationAccess(ctx, actor, stationID) {
		return
	}

	items, err := h.svc.ListBowsers(ctx, stationID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]any{"items": items})
}

func (h *DeviceHandler) UpdateBowser(ctx *xhttp.RequestCtx, actor access.Actor) {
	var req model.DeviceUpdateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	current, err := h.svc.GetBowser(ctx, param(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if !h.requireStationAccess(ctx, actor, current.StationID) {
		return
	}

	updated, err := h.svc.UpdateBowser(ctx, current.BowserID, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, updated)
}

func (h *DeviceHandler) DeleteBowser(ctx *xhttp.RequestCtx, actor access.Actor) {
	current, err := h.svc.GetBowser(ctx, param(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if !h.requireStationAccess(ctx, actor, current.StationID) {
		return
	}

	if err := h.svc.DeleteBowser(ctx, current.BowserID); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "deleted"})
}

/* ------------------------------- Stationaries ------------------------------- */

func (h *DeviceHandler) CreateStationary(ctx *xhttp.RequestCtx, actor access.Actor) {
	var st model.Stationary
	if err := readJSON(ctx, &st); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if !h.requireStationAccess(ctx, actor, st.StationID) {
		return
	}

	created, err := h.svc.CreateStationary(ctx, &st)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *DeviceHandler) GetStationary(ctx *xhttp.RequestCtx, actor access.Actor) {
	st, err := h.svc.GetStationary(ctx, param(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if !h.requireStationAccess(ctx, actor, st.StationID) {
		return
	}
	writeJSON(ctx, xhttp.StatusOK, st)
}

func (h *DeviceHandler) ListStationaries(ctx *xhttp.RequestCtx, actor access.Actor) {
	stationID := query(ctx, "station_id")
	if !h.requireStationAccess(ctx, actor, stationID) {
		return
	}

	items, err := h.svc.ListStationaries(ctx, stationID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]any{"items": items})
}

func (h *DeviceHandler) UpdateStationary(ctx *xhttp.RequestCtx, actor access.Actor) {
	var req model.DeviceUpdateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	current, err := h.svc.GetStationary(ctx, param(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if !h.requireStationAccess(ctx, actor, current.StationID) {
		return
	}

	updated, err := h.svc.UpdateStationary(ctx, current.StationaryID, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, updated)
}

func (h *DeviceHandler) DeleteStationary(ctx *xhttp.RequestCtx, actor access.Actor) {
	current, err := h.svc.GetStationary(ctx, param(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if !h.requireStationAccess(ctx, actor, current.StationID) {
		return
	}

	if err := h.svc.DeleteStationary(ctx, current.StationaryID); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "deleted"})
}

/* ---------------------------------- Tanks ----------------------------------- */

func (h *DeviceHandler) CreateTank(ctx *xhttp.RequestCtx, actor access.Actor) {
	var t model.Tank
	if err := readJSON(ctx, &t); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if !h.requireStationAccess(ctx, actor, t.StationID) {
		return
	}

	created, err := h.svc.CreateTank(ctx, &t)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *DeviceHandler) GetTank(ctx *xhttp.RequestCtx, actor access.Actor) {
	t, err := h.svc.GetTank(ctx, param(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if !h.requireStationAccess(ctx, actor, t.StationID) {
		return
	}
	writeJSON(ctx, xhttp.StatusOK, t)
}

func (h *DeviceHandler) ListTanks(ctx *xhttp.RequestCtx, actor access.Actor) {
	stationID := query(ctx, "station_id")
	if !h.requireStationAccess(ctx, actor, stationID) {
		return
	}

	items, err := h.svc.ListTanks(ctx, stationID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]any{"items": items})
}

func (h *DeviceHandler) UpdateTank(ctx *xhttp.RequestCtx, actor access.Actor) {
	var req model.DeviceUpdateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	current, err := h.svc.GetTank(ctx, param(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if !h.requireStationAccess(ctx, actor, current.StationID) {
		return
	}

	updated, err := h.svc.UpdateTank(ctx, current.TankID, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, updated)
}

func (h *DeviceHandler) DeleteTank(ctx *xhttp.RequestCtx, actor access.Actor) {
	current, err := h.svc.GetTank(ctx, param(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if !h.requireStationAccess(ctx, actor, current.StationID) {
		return
	}

	if err := h.svc.DeleteTank(ctx, current.TankID); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "deleted"})
}
