package services

import (
	"context"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/pkg/logger"
)

// ConfigPublisher pushes the authorization config frame to one device
// channel. Implementations are fire-and-forget.
type ConfigPublisher interface {
	PublishConfig(deviceMqttID string, admFlg, usrFlg int, devtyp string)
}

type DeviceStore interface {
	DeviceDirectory

	CreateBowser(ctx context.Context, b *model.Bowser) (*model.Bowser, error)
	GetBowser(ctx context.Context, bowserID string) (*model.Bowser, error)
	ListBowsersByStation(ctx context.Context, stationID string) ([]*model.Bowser, error)
	UpdateBowser(ctx context.Context, bowserID string, req model.DeviceUpdateRequest) (*model.Bowser, error)
	DeleteBowser(ctx context.Context, bowserID string) error

	CreateStationary(ctx context.Context, s *model.Stationary) (*model.Stationary, error)
	GetStationary(ctx context.Context, stationaryID string) (*model.Stationary, error)
	ListStationariesByStation(ctx context.Context, stationID string) ([]*model.Stationary, error)
	UpdateStationary(ctx context.Context, stationaryID string, req model.DeviceUpdateRequest) (*model.Stationary, error)
	DeleteStationary(ctx context.Context, stationaryID string) error

	CreateTank(ctx context.Context, t *model.Tank) (*model.Tank, error)
	GetTank(ctx context.Context, tankID string) (*model.Tank, error)
	ListTanksByStation(ctx context.Context, stationID string) ([]*model.Tank, error)
	UpdateTank(ctx context.Context, tankID string, req model.DeviceUpdateRequest) (*model.Tank, error)
	DeleteTank(ctx context.Context, tankID string) error
}

// DeviceService wraps device CRUD and owns the config-push trigger: a status
// transition, and only a real transition, sends fresh authorization flags to
// the device.
type DeviceService struct {
	devices   DeviceStore
	flags     *FlagService
	publisher ConfigPublisher
}

func NewDeviceService(devices DeviceStore, flags *FlagService, publisher ConfigPublisher) *DeviceService {
	return &DeviceService{
		devices:   devices,
		flags:     flags,
		publisher: publisher,
	}
}

func (s *DeviceService) CreateBowser(ctx context.Context, b *model.Bowser) (*model.Bowser, error) {
	if err := model.ValidateMqttID(b.MqttID); err != nil {
		return nil, &ValidationError{Field: "mqtt_id", Err: err}
	}
	if b.Status == "" {
		b.Status = model.DeviceStatusActive
	}
	return s.devices.CreateBowser(ctx, b)
}

func (s *DeviceService) GetBowser(ctx context.Context, bowserID string) (*model.Bowser, error) {
	b, err := s.devices.GetBowser(ctx, bowserID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return b, nil
}

func (s *DeviceService) UpdateBowser(ctx context.Context, bowserID string, req model.DeviceUpdateRequest) (*model.Bowser, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}
	req.PumpCount = nil

	current, err := s.devices.GetBowser(ctx, bowserID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	updated, err := s.devices.UpdateBowser(ctx, bowserID, req)
	if err != nil {
		return nil, mapNotFound(err)
	}

	s.maybePushConfig(ctx, current.Status, updated.Status, updated.StationID, updated.MqttID, model.DeviceKindBowser)
	return updated, nil
}

func (s *DeviceService) DeleteBowser(ctx context.Context, bowserID string) error {
	return mapNotFound(s.devices.DeleteBowser(ctx, bowserID))
}

func (s *DeviceService) ListBowsers(ctx context.Context, stationID string) ([]*model.Bowser, error) {
	return s.devices.ListBowsersByStation(ctx, stationID)
}

func (s *DeviceService) CreateStationary(ctx context.Context, st *model.Stationary) (*model.Stationary, error) {
	if err := model.ValidateMqttID(st.MqttID); err != nil {
		return nil, &ValidationError{Field: "mqtt_id", Err: err}
	}
	if st.Status == "" {
		st.Status = model.DeviceStatusActive
	}
	return s.devices.CreateStationary(ctx, st)
}

func (s *DeviceService) GetStationary(ctx context.Context, stationaryID string) (*model.Stationary, error) {
	st, err := s.devices.GetStationary(ctx, stationaryID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return st, nil
}

func (s *DeviceService) UpdateStationary(ctx context.Context, stationaryID string, req model.DeviceUpdateRequest) (*model.Stationary, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}
	req.PumpCount = nil

	current, err := s.devices.GetStationary(ctx, stationaryID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	updated, err := s.devices.UpdateStationary(ctx, stationaryID, req)
	if err != nil {
		return nil, mapNotFound(err)
	}

	s.maybePushConfig(ctx, current.Status, updated.Status, updated.StationID, updated.MqttID, model.DeviceKindStationary)
	return updated, nil
}

func (s *DeviceService) DeleteStationary(ctx context.Context, stationaryID string) error {
	return mapNotFound(s.devices.DeleteStationary(ctx, stationaryID))
}

func (s *DeviceService) ListStationaries(ctx context.Context, stationID string) ([]*model.Stationary, error) {
	return s.devices.ListStationariesByStation(ctx, stationID)
}

func (s *DeviceService) CreateTank(ctx context.Context, t *model.Tank) (*model.Tank, error) {
	if err := model.ValidateMqttID(t.MqttID); err != nil {
		return nil, &ValidationError{Field: "mqtt_id", Err: err}
	}
	if t.Status == "" {
		t.Status = model.DeviceStatusActive
	}
	if t.PumpCount == 0 {
		t.PumpCount = 1
	}
	return s.devices.CreateTank(ctx, t)
}

func (s *DeviceService) GetTank(ctx context.Context, tankID string) (*model.Tank, error) {
	t, err := s.devices.GetTank(ctx, tankID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return t, nil
}

func (s *DeviceService) UpdateTank(ctx context.Context, tankID string, req model.DeviceUpdateRequest) (*model.Tank, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	current, err := s.devices.GetTank(ctx, tankID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	updated, err := s.devices.UpdateTank(ctx, tankID, req)
	if err != nil {
		return nil, mapNotFound(err)
	}

	s.maybePushConfig(ctx, current.Status, updated.Status, updated.StationID, updated.MqttID, model.DeviceKindTank)
	return updated, nil
}

func (s *DeviceService) DeleteTank(ctx context.Context, tankID string) error {
	return mapNotFound(s.devices.DeleteTank(ctx, tankID))
}

func (s *DeviceService) ListTanks(ctx context.Context, stationID string) ([]*model.Tank, error) {
	return s.devices.ListTanksByStation(ctx, stationID)
}

// maybePushConfig publishes fresh flags only on a real status transition.
// Publishing on every save would flood the channel with identical frames.
func (s *DeviceService) maybePushConfig(ctx context.Context, before, after model.DeviceStatus, stationID, mqttID string, kind model.DeviceKind) {
	if s.publisher == nil || before == after {
		return
	}

	admFlg, usrFlg := s.flags.StationFlags(ctx, stationID)
	logger.Info("device status changed, pushing config",
		"mqtt_id", mqttID, "devtyp", kind.ConfigCode(), "admflg", admFlg, "usrflg", usrFlg)
	s.publisher.PublishConfig(mqttID, admFlg, usrFlg, kind.ConfigCode())
}
