package handlers

import (
	"context"
	"strconv"

	"github.com/fasthttp/router"
	"github.com/ssafuel/station-gateway/internal/access"
	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/internal/services"
	xhttp "github.com/ssafuel/station-gateway/pkg/http"
)

type AssetAPI interface {
	Check(ctx context.Context, rawBarcode string) (services.AssetCheck, error)
	Create(ctx context.Context, req model.AssetBarcodeCreateRequest, createdByAdminID, createdByUserID *int64) (*model.AssetBarcode, error)
	List(ctx context.Context) ([]*model.AssetBarcode, error)
	Update(ctx context.Context, id int64, a *model.AssetBarcode) (*model.AssetBarcode, error)
	Delete(ctx context.Context, id int64) error
}

type AssetHandler struct {
	svc AssetAPI
}

func RegisterAssetRoutes(e *router.Group, h *AssetHandler, auth *Authenticator) {
	e.POST("/assets", auth.Wrap(h.CreateAsset))
	e.GET("/assets", auth.Wrap(h.ListAssets))
	e.GET("/assets/check", auth.Wrap(h.CheckAsset))
	e.PUT("/assets/{id}", auth.Wrap(h.UpdateAsset))
	e.DELETE("/assets/{id}", auth.Wrap(h.DeleteAsset))
}

func NewAssetHandler(assetService AssetAPI) *AssetHandler {
	return &AssetHandler{
		svc: assetService,
	}
}

type assetCheckResponse struct {
	BarcodeNumber string  `json:"barnum"`
	ModelNumber   string  `json:"modnum"`
	Valid         int     `json:"valid"`
	Volume        float64 `json:"volume"`
}

func (h *AssetHandler) CreateAsset(ctx *xhttp.RequestCtx, actor access.Actor) {
	var req model.AssetBarcodeCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	var adminID, userID *int64
	switch actor.Role {
	case model.RoleAdmin:
		if actor.Admin != nil {
			id := actor.Admin.ID
			adminID = &id
		}
	case model.RoleUser:
		if actor.User != nil {
			id := actor.User.ID
			userID = &id
		}
	}

	asset, err := h.svc.Create(ctx, req, adminID, userID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, asset)
}

func (h *AssetHandler) ListAssets(ctx *xhttp.RequestCtx, _ access.Actor) {
	items, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]any{"items": items})
}

// CheckAsset answers the same validity verdict the dispensers get over the
// broker, for portal-side verification of a scanned barcode.
func (h *AssetHandler) CheckAsset(ctx *xhttp.RequestCtx, _ access.Actor) {
	raw := query(ctx, "barcode")
	if raw == "" {
		writeError(ctx, xhttp.StatusBadRequest, "barcode is required")
		return
	}

	check, err := h.svc.Check(ctx, raw)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, assetCheckResponse{
		BarcodeNumber: check.BarcodeNumber,
		ModelNumber:   check.ModelNumber,
		Valid:         check.Valid,
		Volume:        check.Volume,
	})
}

func (h *AssetHandler) UpdateAsset(ctx *xhttp.RequestCtx, _ access.Actor) {
	id, err := strconv.ParseInt(param(ctx, "id"), 10, 64)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid asset id")
		return
	}

	var a model.AssetBarcode
	if err := readJSON(ctx, &a); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	updated, err := h.svc.Update(ctx, id, &a)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, updated)
}

func (h *AssetHandler) DeleteAsset(ctx *xhttp.RequestCtx, _ access.Actor) {
	id, err := strconv.ParseInt(param(ctx, "id"), 10, 64)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid asset id")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "deleted"})
}
