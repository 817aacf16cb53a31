package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ssafuel/station-gateway/internal/barcode"
	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/internal/repository"
)

type AssetStore interface {
	Create(ctx context.Context, a *model.AssetBarcode) (*model.AssetBarcode, error)
	FindByModel(ctx context.Context, modelCode string) (*model.AssetBarcode, error)
	List(ctx context.Context) ([]*model.AssetBarcode, error)
	Update(ctx context.Context, id int64, a *model.AssetBarcode) (*model.AssetBarcode, error)
	Delete(ctx context.Context, id int64) error
}

// AssetCheck is the answer sent back to a dispenser that scanned a barcode.
// Valid is a sentinel flag; Volume is zero unless the asset checks out.
type AssetCheck struct {
	BarcodeNumber string
	ModelNumber   string
	Valid         int
	Volume        float64
}

type AssetService struct {
	assets AssetStore
	now    func() time.Time
}

func NewAssetService(assets AssetStore) *AssetService {
	return &AssetService{
		assets: assets,
		now:    time.Now,
	}
}

// Check validates a scanned barcode. The raw scan is first normalized to a
// model code; the asset must exist, be active, and be inside its validity
// window. An unknown or expired asset is a normal outcome, not an error.
func (s *AssetService) Check(ctx context.Context, rawBarcode string) (AssetCheck, error) {
	check := AssetCheck{
		BarcodeNumber: rawBarcode,
		Valid:         model.FlagInactive,
	}

	modelCode := barcode.Extract(rawBarcode)
	check.ModelNumber = modelCode
	if modelCode == "" {
		return check, nil
	}

	asset, err := s.assets.FindByModel(ctx, modelCode)
	if errors.Is(err, repository.ErrNotFound) {
		return check, nil
	}
	if err != nil {
		return check, err
	}

	// The validity window is inclusive of its last instant, and stored status
	// casing is not trusted.
	if strings.EqualFold(asset.Status, "active") && !asset.Validity.Before(s.now()) {
		check.Valid = model.FlagActive
		check.Volume = asset.Volume
	}

	return check, nil
}

func (s *AssetService) Create(ctx context.Context, req model.AssetBarcodeCreateRequest, createdByAdminID, createdByUserID *int64) (*model.AssetBarcode, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	return s.assets.Create(ctx, &model.AssetBarcode{
		Model:            barcode.Extract(req.Model),
		Volume:           req.Volume,
		Descriptions:     req.Descriptions,
		Validity:         req.Validity,
		Status:           status,
		CreatedByAdminID: createdByAdminID,
		CreatedByUserID:  createdByUserID,
	})
}

func (s *AssetService) List(ctx context.Context) ([]*model.AssetBarcode, error) {
	return s.assets.List(ctx)
}

func (s *AssetService) Update(ctx context.Context, id int64, a *model.AssetBarcode) (*model.AssetBarcode, error) {
	updated, err := s.assets.Update(ctx, id, a)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return updated, nil
}

func (s *AssetService) Delete(ctx context.Context, id int64) error {
	if err := s.assets.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return nil
}
