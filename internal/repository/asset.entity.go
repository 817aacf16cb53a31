package repository

import (
	"time"

	"github.com/ssafuel/station-gateway/internal/model"
)

type AssetBarcodeEntity struct {
	ID               int64     `db:"id"                  gorm:"primaryKey;autoIncrement;column:id"`
	Model            string    `db:"model"               gorm:"column:model;not null;uniqueIndex"`
	Volume           float64   `db:"volume"              gorm:"column:volume;not null"`
	Descriptions     *string   `db:"descriptions"        gorm:"column:descriptions"`
	Validity         time.Time `db:"validity"            gorm:"column:validity;not null"`
	Status           string    `db:"status"              gorm:"column:status;not null;default:active"`
	CreatedByUserID  *int64    `db:"created_by_user_id"  gorm:"column:created_by_user_id;index"`
	CreatedByAdminID *int64    `db:"created_by_admin_id" gorm:"column:created_by_admin_id;index"`
}

func (AssetBarcodeEntity) TableName() string { return "asset_barcodes" }

func toAssetBarcodeEntity(a *model.AssetBarcode) *AssetBarcodeEntity {
	if a == nil {
		return nil
	}
	return &AssetBarcodeEntity{
		ID:               a.ID,
		Model:            a.Model,
		Volume:           a.Volume,
		Descriptions:     a.Descriptions,
		Validity:         a.Validity,
		Status:           a.Status,
		CreatedByUserID:  a.CreatedByUserID,
		CreatedByAdminID: a.CreatedByAdminID,
	}
}

func toAssetBarcodeModel(e *AssetBarcodeEntity) *model.AssetBarcode {
	if e == nil {
		return nil
	}
	return &model.AssetBarcode{
		ID:               e.ID,
		Model:            e.Model,
		Volume:           e.Volume,
		Descriptions:     e.Descriptions,
		Validity:         e.Validity,
		Status:           e.Status,
		CreatedByUserID:  e.CreatedByUserID,
		CreatedByAdminID: e.CreatedByAdminID,
	}
}

func toAssetBarcodeModels(entities []*AssetBarcodeEntity) []*model.AssetBarcode {
	models := make([]*model.AssetBarcode, len(entities))
	for i, e := range entities {
		models[i] = toAssetBarcodeModel(e)
	}
	return models
}
