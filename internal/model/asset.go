package model

import (
	"errors"
	"time"
)

// AssetBarcode maps a canonical model code to a validity window and a
// dispensed volume. Owned by the admin or user who registered it.
type AssetBarcode struct {
	ID               int64     `json:"id"`
	Model            string    `json:"model"`
	Volume           float64   `json:"volume"`
	Descriptions     *string   `json:"descriptions,omitempty"`
	Validity         time.Time `json:"validity"`
	Status           string    `json:"status"`
	CreatedByUserID  *int64    `json:"created_by_user_id,omitempty"`
	CreatedByAdminID *int64    `json:"created_by_admin_id,omitempty"`
}

type AssetBarcodeCreateRequest struct {
	Model        string    `json:"model"`
	Volume       float64   `json:"volume"`
	Descriptions *string   `json:"descriptions"`
	Validity     time.Time `json:"validity"`
	Status       string    `json:"status"`
}

func (r AssetBarcodeCreateRequest) Validate() error {
	if r.Model == "" {
		return errors.New("model is required")
	}
	if r.Volume <= 0 {
		return errors.New("volume must be positive")
	}
	if r.Validity.IsZero() {
		return errors.New("validity is required")
	}
	return nil
}
