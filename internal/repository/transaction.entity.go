package repository

import (
	"time"

	"github.com/ssafuel/station-gateway/internal/model"
)

type TransactionEntity struct {
	ID        int64   `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	DeviceID  string  `db:"device_id"  gorm:"column:device_id;not null;index"`
	StationID *string `db:"station_id" gorm:"column:station_id"`

	ToDate *string `db:"to_date" gorm:"column:to_date"`
	ToTime *string `db:"to_time" gorm:"column:to_time"`

	TransactionID *string  `db:"transaction_id" gorm:"column:transaction_id;uniqueIndex"`
	Volume        *float64 `db:"volume"         gorm:"column:volume"`
	Amount        *float64 `db:"amount"         gorm:"column:amount"`
	UnitPrice     *float64 `db:"unit_price"     gorm:"column:unit_price"`
	TotalVolume   *float64 `db:"total_volume"   gorm:"column:total_volume"`
	TotalAmount   *float64 `db:"total_amount"   gorm:"column:total_amount"`
	PumpStatus    *string  `db:"pump_status"    gorm:"column:pump_status"`

	BowserID      *string `db:"bowser_id"      gorm:"column:bowser_id"`
	PumpID        *string `db:"pump_id"        gorm:"column:pump_id"`
	VehicleNumber *string `db:"vehicle_number" gorm:"column:vehicle_number"`
	MobileNumber  *string `db:"mobile_number"  gorm:"column:mobile_number"`
	BarcodeNumber *string `db:"barcode_number" gorm:"column:barcode_number"`

	StationaryID     *string `db:"stationary_id"      gorm:"column:stationary_id"`
	StationaryPumpID *string `db:"stationary_pump_id" gorm:"column:stationary_pump_id"`
	AttendantID      *string `db:"attendant_id"       gorm:"column:attendant_id"`

	TankID *string `db:"tank_id" gorm:"column:tank_id"`

	Type string `db:"type" gorm:"column:type;not null;index"`

	Temperature *float64 `db:"temperature" gorm:"column:temperature"`
	Humidity    *float64 `db:"humidity"    gorm:"column:humidity"`

	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (TransactionEntity) TableName() string { return "transactions" }

func toTransactionEntity(t *model.Transaction) *TransactionEntity {
	if t == nil {
		return nil
	}
	return &TransactionEntity{
		ID:               t.ID,
		DeviceID:         t.DeviceID,
		StationID:        t.StationID,
		ToDate:           t.ToDate,
		ToTime:           t.ToTime,
		TransactionID:    t.TransactionID,
		Volume:           t.Volume,
		Amount:           t.Amount,
		UnitPrice:        t.UnitPrice,
		TotalVolume:      t.TotalVolume,
		TotalAmount:      t.TotalAmount,
		PumpStatus:       t.PumpStatus,
		BowserID:         t.BowserID,
		PumpID:           t.PumpID,
		VehicleNumber:    t.VehicleNumber,
		MobileNumber:     t.MobileNumber,
		BarcodeNumber:    t.BarcodeNumber,
		StationaryID:     t.StationaryID,
		StationaryPumpID: t.StationaryPumpID,
		AttendantID:      t.AttendantID,
		TankID:           t.TankID,
		Type:             string(t.Type),
		Temperature:      t.Temperature,
		Humidity:         t.Humidity,
		CreatedAt:        t.CreatedAt,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:               e.ID,
		DeviceID:         e.DeviceID,
		StationID:        e.StationID,
		ToDate:           e.ToDate,
		ToTime:           e.ToTime,
		TransactionID:    e.TransactionID,
		Volume:           e.Volume,
		Amount:           e.Amount,
		UnitPrice:        e.UnitPrice,
		TotalVolume:      e.TotalVolume,
		TotalAmount:      e.TotalAmount,
		PumpStatus:       e.PumpStatus,
		BowserID:         e.BowserID,
		PumpID:           e.PumpID,
		VehicleNumber:    e.VehicleNumber,
		MobileNumber:     e.MobileNumber,
		BarcodeNumber:    e.BarcodeNumber,
		StationaryID:     e.StationaryID,
		StationaryPumpID: e.StationaryPumpID,
		AttendantID:      e.AttendantID,
		TankID:           e.TankID,
		Type:             model.DeviceType(e.Type),
		Temperature:      e.Temperature,
		Humidity:         e.Humidity,
		CreatedAt:        e.CreatedAt,
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	if entities == nil {
		return nil
	}
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}
