package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fasthttp/router"
	"github.com/ssafuel/station-gateway/internal/access"
	"github.com/ssafuel/station-gateway/internal/model"
	xhttp "github.com/ssafuel/station-gateway/pkg/http"
)

// ingestKeyHeader carries the shared secret the bridge presents on every
// relayed telemetry payload.
const ingestKeyHeader = "TZ-KEY"

type IngestAPI interface {
	Ingest(ctx context.Context, env *model.TelemetryEnvelope) (*model.Transaction, bool, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*model.Transaction, error)
	List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error)
}

type IoTHandler struct {
	svc    IngestAPI
	apiKey string
}

// RegisterIngestRoutes hangs the ingestion endpoint off the router root. The
// path is a deployed-bridge contract and stays outside API versioning.
func RegisterIngestRoutes(r *router.Router, h *IoTHandler) {
	r.POST("/iot/update/", h.Update)
}

func RegisterTransactionRoutes(e *router.Group, h *IoTHandler, auth *Authenticator) {
	e.GET("/transactions", auth.Wrap(h.ListTransactions))
	e.GET("/transactions/{transaction_id}", auth.Wrap(h.GetTransaction))
}

func NewIoTHandler(ingestService IngestAPI, apiKey string) *IoTHandler {
	return &IoTHandler{
		svc:    ingestService,
		apiKey: apiKey,
	}
}

type ingestResponse struct {
	Status      string             `json:"status"`
	Transaction *model.Transaction `json:"transaction"`
}

type transactionListResponse struct {
	Items []*model.Transaction `json:"items"`
	Total int64                `json:"total"`
}

// Update ingests one telemetry envelope relayed from the broker. Delivery is
// idempotent on transaction id: a replay answers 200 instead of 201.
func (h *IoTHandler) Update(ctx *xhttp.RequestCtx) {
	if string(ctx.Request.Header.Peek(ingestKeyHeader)) != h.apiKey {
		writeError(ctx, xhttp.StatusUnauthorized, "missing or invalid "+ingestKeyHeader)
		return
	}

	var env model.TelemetryEnvelope
	if err := readJSON(ctx, &env); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	t, created, err := h.svc.Ingest(ctx, &env)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	if created {
		writeJSON(ctx, xhttp.StatusCreated, ingestResponse{Status: "created", Transaction: t})
		return
	}
	writeJSON(ctx, xhttp.StatusOK, ingestResponse{Status: "updated", Transaction: t})
}

func (h *IoTHandler) GetTransaction(ctx *xhttp.RequestCtx, _ access.Actor) {
	t, err := h.svc.GetByTransactionID(ctx, param(ctx, "transaction_id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, t)
}

func (h *IoTHandler) ListTransactions(ctx *xhttp.RequestCtx, _ access.Actor) {
	var f model.TransactionFilter

	if v := query(ctx, "device_id"); v != "" {
		f.DeviceID = &v
	}
	if v := query(ctx, "station_id"); v != "" {
		f.StationID = &v
	}
	if v := query(ctx, "type"); v != "" {
		t := model.DeviceType(v)
		f.Type = &t
	}
	if v := query(ctx, "transaction_id"); v != "" {
		f.TransactionID = &v
	}
	if v := query(ctx, "from"); v != "" {
		if t, e := parseTime(v); e == nil {
			f.From = &t
		}
	}
	if v := query(ctx, "to"); v != "" {
		if t, e := parseTime(v); e == nil {
			f.To = &t
		}
	}
	if v := query(ctx, "limit"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Limit = n
		}
	}
	if v := query(ctx, "offset"); v != "" {
		if n, e := strconv.Atoi(v); e == nil {
			f.Offset = n
		}
	}
	if strings.EqualFold(query(ctx, "order"), "desc") {
		f.Desc = true
	}

	items, total, err := h.svc.List(ctx, f)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, transactionListResponse{Items: items, Total: total})
}

func parseTime(s string) (time.Time, error) {
	// Accept RFC3339 or YYYY-MM-DD
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
