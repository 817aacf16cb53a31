package repository

import (
	"context"
	"errors"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/pkg/pg"
	"gorm.io/gorm"
)

type AssetRepository struct {
	*pg.DB
}

func NewAssetRepository(db *pg.DB) *AssetRepository {
	return &AssetRepository{
		db,
	}
}

func (r *AssetRepository) Create(ctx context.Context, a *model.AssetBarcode) (*model.AssetBarcode, error) {
	entity := toAssetBarcodeEntity(a)
	entity.ID = 0
	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toAssetBarcodeModel(entity), nil
}

// FindByModel looks up the asset registered under the canonical model code.
func (r *AssetRepository) FindByModel(ctx context.Context, modelCode string) (*model.AssetBarcode, error) {
	var entity AssetBarcodeEntity
	err := r.Read(ctx).WithContext(ctx).Where("model = ?", modelCode).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toAssetBarcodeModel(&entity), nil
}

func (r *AssetRepository) List(ctx context.Context) ([]*model.AssetBarcode, error) {
	var entities []*AssetBarcodeEntity
	if err := r.Read(ctx).WithContext(ctx).Order("id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toAssetBarcodeModels(entities), nil
}

func (r *AssetRepository) Update(ctx context.Context, id int64, a *model.AssetBarcode) (*model.AssetBarcode, error) {
	entity := toAssetBarcodeEntity(a)
	entity.ID = 0
	res := r.Write(ctx).WithContext(ctx).
		Model(&AssetBarcodeEntity{}).
		Where("id = ?", id).
		Updates(entity)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var updated AssetBarcodeEntity
	if err := r.Read(ctx).WithContext(ctx).First(&updated, id).Error; err != nil {
		return nil, err
	}
	return toAssetBarcodeModel(&updated), nil
}

func (r *AssetRepository) Delete(ctx context.Context, id int64) error {
	res := r.Write(ctx).WithContext(ctx).Delete(&AssetBarcodeEntity{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
