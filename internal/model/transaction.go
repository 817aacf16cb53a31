package model

import "time"

// DeviceType is the stored transaction type tag derived from the payload
// discriminator key.
type DeviceType string

const (
	DeviceTypeBowser     DeviceType = "bowser"
	DeviceTypeStationary DeviceType = "stationary"
	DeviceTypeTank       DeviceType = "tank"
)

// Transaction is one telemetry event from a field device. The record is
// keyed logically by TransactionID: re-ingesting the same id updates the
// stored row instead of appending, which tolerates retransmission by
// unreliable devices. Optional fields are pointers so absent values stay
// NULL and partial updates leave them untouched.
type Transaction struct {
	ID        int64   `json:"id"`
	DeviceID  string  `json:"devID"`
	StationID *string `json:"stnID,omitempty"`

	ToDate *string `json:"todate,omitempty"`
	ToTime *string `json:"totime,omitempty"`

	TransactionID *string  `json:"trnsid,omitempty"`
	Volume        *float64 `json:"trnvol,omitempty"`
	Amount        *float64 `json:"trnamt,omitempty"`
	UnitPrice     *float64 `json:"utpriz,omitempty"`
	TotalVolume   *float64 `json:"totvol,omitempty"`
	TotalAmount   *float64 `json:"totamt,omitempty"`
	PumpStatus    *string  `json:"pmpsts,omitempty"`

	BowserID      *string `json:"bwsrid,omitempty"`
	PumpID        *string `json:"pumpid,omitempty"`
	VehicleNumber *string `json:"vehnum,omitempty"`
	MobileNumber  *string `json:"mobnum,omitempty"`
	BarcodeNumber *string `json:"barnum,omitempty"`

	StationaryID     *string `json:"stanid,omitempty"`
	StationaryPumpID *string `json:"pmpid,omitempty"`
	AttendantID      *string `json:"attnid,omitempty"`

	TankID *string `json:"tankid,omitempty"`

	Type DeviceType `json:"type"`

	Temperature *float64 `json:"tmprtr,omitempty"`
	Humidity    *float64 `json:"hmidty,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TransactionFilter controls List queries.
type TransactionFilter struct {
	DeviceID      *string
	StationID     *string
	Type          *DeviceType
	TransactionID *string
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
	Desc          bool
}
