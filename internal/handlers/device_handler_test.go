package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ssafuel/station-gateway/internal/access"
	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockDeviceService struct {
	mock.Mock
}

func (m *MockDeviceService) CreateBowser(ctx context.Context, b *model.Bowser) (*model.Bowser, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bowser), args.Error(1)
}

func (m *MockDeviceService) GetBowser(ctx context.Context, bowserID string) (*model.Bowser, error) {
	args := m.Called(ctx, bowserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bowser), args.Error(1)
}

func (m *MockDeviceService) ListBowsers(ctx context.Context, stationID string) ([]*model.Bowser, error) {
	args := m.Called(ctx, stationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Bowser), args.Error(1)
}

func (m *MockDeviceService) UpdateBowser(ctx context.Context, bowserID string, req model.DeviceUpdateRequest) (*model.Bowser, error) {
	args := m.Called(ctx, bowserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bowser), args.Error(1)
}

func (m *MockDeviceService) DeleteBowser(ctx context.Context, bowserID string) error {
	return m.Called(ctx, bowserID).Error(0)
}

func (m *MockDeviceService) CreateStationary(ctx context.Context, s *model.Stationary) (*model.Stationary, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stationary), args.Error(1)
}

func (m *MockDeviceService) GetStationary(ctx context.Context, stationaryID string) (*model.Stationary, error) {
	args := m.Called(ctx, stationaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stationary), args.Error(1)
}

func (m *MockDeviceService) ListStationaries(ctx context.Context, stationID string) ([]*model.Stationary, error) {
	args := m.Called(ctx, stationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Stationary), args.Error(1)
}

func (m *MockDeviceService) UpdateStationary(ctx context.Context, stationaryID string, req model.DeviceUpdateRequest) (*model.Stationary, error) {
	args := m.Called(ctx, stationaryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stationary), args.Error(1)
}

func (m *MockDeviceService) DeleteStationary(ctx context.Context, stationaryID string) error {
	return m.Called(ctx, stationaryID).Error(0)
}

func (m *MockDeviceService) CreateTank(ctx context.Context, t *model.Tank) (*model.Tank, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tank), args.Error(1)
}

func (m *MockDeviceService) GetTank(ctx context.Context, tankID string) (*model.Tank, error) {
	args := m.Called(ctx, tankID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tank), args.Error(1)
}

func (m *MockDeviceService) ListTanks(ctx context.Context, stationID string) ([]*model.Tank, error) {
	args := m.Called(ctx, stationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Tank), args.Error(1)
}

func (m *MockDeviceService) UpdateTank(ctx context.Context, tankID string, req model.DeviceUpdateRequest) (*model.Tank, error) {
	args := m.Called(ctx, tankID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tank), args.Error(1)
}

func (m *MockDeviceService) DeleteTank(ctx context.Context, tankID string) error {
	return m.Called(ctx, tankID).Error(0)
}

type stubGate struct {
	allow bool
	err   error
}

func (g *stubGate) CanAccessStationID(_ context.Context, _ access.Actor, _ string) (bool, error) {
	return g.allow, g.err
}

func TestDeviceHandler_CreateBowser(t *testing.T) {
	t.Run("accessible station creates the device", func(t *testing.T) {
		svc := new(MockDeviceService)
		h := NewDeviceHandler(svc, &stubGate{allow: true})

		svc.On("CreateBowser", mock.Anything, mock.MatchedBy(func(b *model.Bowser) bool {
			return b.StationID == "SSA001" && b.MqttID == "BWSR000001"
		})).Return(&model.Bowser{ID: 1, StationID: "SSA001", BowserID: "B01", MqttID: "BWSR000001"}, nil)

		body, _ := json.Marshal(model.Bowser{StationID: "SSA001", BowserID: "B01", MqttID: "BWSR000001"})
		ctx := setupTestContext("POST", "/devices/bowsers", body)
		h.CreateBowser(ctx, adminActor())

		assert.Equal(t, 201, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("foreign station answers 403", func(t *testing.T) {
		svc := new(MockDeviceService)
		h := NewDeviceHandler(svc, &stubGate{allow: false})

		body, _ := json.Marshal(model.Bowser{StationID: "SSA009", BowserID: "B01", MqttID: "BWSR000001"})
		ctx := setupTestContext("POST", "/devices/bowsers", body)
		h.CreateBowser(ctx, adminActor())

		assert.Equal(t, 403, ctx.Response.StatusCode())
		svc.AssertNotCalled(t, "CreateBowser", mock.Anything, mock.Anything)
	})

	t.Run("missing station_id answers 400", func(t *testing.T) {
		svc := new(MockDeviceService)
		h := NewDeviceHandler(svc, &stubGate{allow: true})

		body, _ := json.Marshal(model.Bowser{BowserID: "B01", MqttID: "BWSR000001"})
		ctx := setupTestContext("POST", "/devices/bowsers", body)
		h.CreateBowser(ctx, adminActor())

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})
}

func TestDeviceHandler_UpdateBowser(t *testing.T) {
	svc := new(MockDeviceService)
	h := NewDeviceHandler(svc, &stubGate{allow: true})

	status := model.DeviceStatusInactive
	svc.On("GetBowser", mock.Anything, "B01").
		Return(&model.Bowser{ID: 1, StationID: "SSA001", BowserID: "B01", Status: model.DeviceStatusActive}, nil)
	svc.On("UpdateBowser", mock.Anything, "B01", mock.MatchedBy(func(req model.DeviceUpdateRequest) bool {
		return req.Status != nil && *req.Status == model.DeviceStatusInactive
	})).Return(&model.Bowser{ID: 1, StationID: "SSA001", BowserID: "B01", Status: status}, nil)

	body, _ := json.Marshal(model.DeviceUpdateRequest{Status: &status})
	ctx := setupTestContext("PUT", "/devices/bowsers/B01", body)
	ctx.SetUserValue("id", "B01")
	h.UpdateBowser(ctx, adminActor())

	assert.Equal(t, 200, ctx.Response.StatusCode())
	svc.AssertExpectations(t)
}

func TestDeviceHandler_ListTanks(t *testing.T) {
	svc := new(MockDeviceService)
	h := NewDeviceHandler(svc, &stubGate{allow: true})

	svc.On("ListTanks", mock.Anything, "SSA001").
		Return([]*model.Tank{{TankID: "T01", PumpCount: 2}}, nil)

	ctx := setupTestContext("GET", "/devices/tanks?station_id=SSA001", nil)
	h.ListTanks(ctx, userActor())

	assert.Equal(t, 200, ctx.Response.StatusCode())
}
