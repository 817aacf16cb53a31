package services

import (
	"context"
	"errors"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/internal/repository"
)

// DeviceDirectory is the registry lookup surface the resolver probes.
type DeviceDirectory interface {
	FindActiveBowserByMqttID(ctx context.Context, mqttID string) (*model.Bowser, error)
	FindActiveStationaryByMqttID(ctx context.Context, mqttID string) (*model.Stationary, error)
	FindActiveTankByMqttID(ctx context.Context, mqttID string) (*model.Tank, error)
}

// Resolution maps a messaging-channel id to the owning station and the
// category-specific device id. Both fields are empty when nothing matched;
// the caller still answers the device so it is not left hanging.
type Resolution struct {
	StationID string
	SubID     string
	Kind      model.DeviceKind
}

type ResolverService struct {
	devices DeviceDirectory
}

func NewResolverService(devices DeviceDirectory) *ResolverService {
	return &ResolverService{devices: devices}
}

// Resolve probes bowsers, then stationaries, then tanks, in that fixed
// order. An inactive record is no match and falls through to the next
// category. A miss is not an error; only an infrastructure failure is.
func (s *ResolverService) Resolve(ctx context.Context, deviceID string) (Resolution, error) {
	if b, err := s.devices.FindActiveBowserByMqttID(ctx, deviceID); err == nil {
		return Resolution{StationID: b.StationID, SubID: b.BowserID, Kind: model.DeviceKindBowser}, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return Resolution{}, err
	}

	if st, err := s.devices.FindActiveStationaryByMqttID(ctx, deviceID); err == nil {
		return Resolution{StationID: st.StationID, SubID: st.StationaryID, Kind: model.DeviceKindStationary}, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return Resolution{}, err
	}

	if tk, err := s.devices.FindActiveTankByMqttID(ctx, deviceID); err == nil {
		return Resolution{StationID: tk.StationID, SubID: tk.TankID, Kind: model.DeviceKindTank}, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return Resolution{}, err
	}

	return Resolution{}, nil
}
