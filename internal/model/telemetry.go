package model

import "errors"

var (
	ErrNoDiscriminator        = errors.New("payload must include exactly one of bowser / stan / tank")
	ErrAmbiguousDiscriminator = errors.New("payload includes more than one of bowser / stan / tank")
	ErrMissingDeviceID        = errors.New("devID is required")
)

// TelemetryEnvelope is the inbound transaction payload as devices publish it.
// Exactly one of Bowser, Stan, Tank must be present; the key doubles as the
// device-type tag. Field names are a wire contract with deployed firmware and
// must not be renamed.
type TelemetryEnvelope struct {
	DeviceID    string   `json:"devID"`
	ToDate      *string  `json:"todate,omitempty"`
	ToTime      *string  `json:"totime,omitempty"`
	Temperature *float64 `json:"tmprtr,omitempty"`
	Humidity    *float64 `json:"hmidty,omitempty"`

	Bowser *BowserEvent     `json:"bowser,omitempty"`
	Stan   *StationaryEvent `json:"stan,omitempty"`
	Tank   *TankEvent       `json:"tank,omitempty"`
}

// TransactionEvent carries the fields common to all three device categories.
type TransactionEvent struct {
	TransactionID *string  `json:"trnsid,omitempty"`
	Volume        *float64 `json:"trnvol,omitempty"`
	Amount        *float64 `json:"trnamt,omitempty"`
	UnitPrice     *float64 `json:"utpriz,omitempty"`
	TotalVolume   *float64 `json:"totvol,omitempty"`
	TotalAmount   *float64 `json:"totamt,omitempty"`
	PumpStatus    *string  `json:"pmpsts,omitempty"`
	BarcodeNumber *string  `json:"barnum,omitempty"`
	MobileNumber  *string  `json:"mobnum,omitempty"`
}

type BowserEvent struct {
	TransactionEvent
	BowserID      *string `json:"bwsrid,omitempty"`
	PumpID        *string `json:"pumpid,omitempty"`
	VehicleNumber *string `json:"vehnum,omitempty"`
}

type StationaryEvent struct {
	TransactionEvent
	StationaryID  *string `json:"stanid,omitempty"`
	PumpID        *string `json:"pmpid,omitempty"`
	AttendantID   *string `json:"attnid,omitempty"`
	VehicleNumber *string `json:"vehnum,omitempty"`
}

type TankEvent struct {
	TransactionEvent
	TankID *string `json:"tankid,omitempty"`
}

// Normalize validates the discriminator and flattens the envelope into a
// Transaction record. Absent fields stay nil so the upsert path only touches
// supplied columns.
func (e *TelemetryEnvelope) Normalize() (*Transaction, error) {
	if e.DeviceID == "" {
		return nil, ErrMissingDeviceID
	}

	present := 0
	if e.Bowser != nil {
		present++
	}
	if e.Stan != nil {
		present++
	}
	if e.Tank != nil {
		present++
	}
	if present == 0 {
		return nil, ErrNoDiscriminator
	}
	if present > 1 {
		return nil, ErrAmbiguousDiscriminator
	}

	t := &Transaction{
		DeviceID:    e.DeviceID,
		ToDate:      e.ToDate,
		ToTime:      e.ToTime,
		Temperature: e.Temperature,
		Humidity:    e.Humidity,
	}

	var common TransactionEvent
	switch {
	case e.Bowser != nil:
		t.Type = DeviceTypeBowser
		t.BowserID = e.Bowser.BowserID
		t.PumpID = e.Bowser.PumpID
		t.VehicleNumber = e.Bowser.VehicleNumber
		common = e.Bowser.TransactionEvent
	case e.Stan != nil:
		t.Type = DeviceTypeStationary
		t.StationaryID = e.Stan.StationaryID
		t.StationaryPumpID = e.Stan.PumpID
		t.AttendantID = e.Stan.AttendantID
		t.VehicleNumber = e.Stan.VehicleNumber
		common = e.Stan.TransactionEvent
	case e.Tank != nil:
		t.Type = DeviceTypeTank
		t.TankID = e.Tank.TankID
		common = e.Tank.TransactionEvent
	}

	t.TransactionID = common.TransactionID
	t.Volume = common.Volume
	t.Amount = common.Amount
	t.UnitPrice = common.UnitPrice
	t.TotalVolume = common.TotalVolume
	t.TotalAmount = common.TotalAmount
	t.PumpStatus = common.PumpStatus
	t.BarcodeNumber = common.BarcodeNumber
	t.MobileNumber = common.MobileNumber

	return t, nil
}
