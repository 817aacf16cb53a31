package services

import (
	"context"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/pkg/logger"
)

type FlagSource interface {
	HasActiveAdmin(ctx context.Context, stationID string) (bool, error)
	HasActiveUser(ctx context.Context, stationID string) (bool, error)
}

// FlagService computes the two sentinel flags pushed to device firmware:
// whether the admin and the user linked by the station's assignment are
// active. Both flags derive from the assignment row; a station without one
// reads inactive on both sides.
type FlagService struct {
	assignments FlagSource
}

func NewFlagService(assignments FlagSource) *FlagService {
	return &FlagService{
		assignments: assignments,
	}
}

// StationFlags returns (admin flag, user flag), each 100 for active or 99
// otherwise. There is no error path: an empty station id, a missing
// assignment, or a lookup failure all read as inactive, so the device always
// receives a well-formed pair.
func (s *FlagService) StationFlags(ctx context.Context, stationID string) (int, int) {
	admFlg := model.FlagInactive
	usrFlg := model.FlagInactive

	if stationID == "" {
		return admFlg, usrFlg
	}

	adminActive, err := s.assignments.HasActiveAdmin(ctx, stationID)
	if err != nil {
		logger.Warn("admin flag lookup failed, reporting inactive", "station_id", stationID, "error", err)
	} else {
		admFlg = model.SentinelFor(adminActive)
	}

	userActive, err := s.assignments.HasActiveUser(ctx, stationID)
	if err != nil {
		logger.Warn("user flag lookup failed, reporting inactive", "station_id", stationID, "error", err)
	} else {
		usrFlg = model.SentinelFor(userActive)
	}

	return admFlg, usrFlg
}
