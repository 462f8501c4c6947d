package reports

import (
	"context"
	"time"
)

type Dashboard struct {
	ActiveEmployees int     `json:"activeEmployees"`
	PresentToday    int     `json:"presentToday"`
	LateToday       int     `json:"lateToday"`
	OnLeaveToday    int     `json:"onLeaveToday"`
	AbsentToday     int     `json:"absentToday"`
	PendingLeave    int     `json:"pendingLeaveRequests"`
	MonthWorkHours  float64 `json:"monthWorkHours"`
	MonthExtraHours float64 `json:"monthExtraHours"`
}

type Service struct {
	Store *Store

	now func() time.Time
}

func NewService(store *Store) *Service {
	return &Service{Store: store, now: time.Now}
}

// BuildDashboard is a read-only rollup; every figure is derived from rows the
// workflow engine already wrote.
func (s *Service) BuildDashboard(ctx context.Context) (Dashboard, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	var dash Dashboard
	var err error

	if dash.ActiveEmployees, err = s.Store.ActiveHeadcount(ctx); err != nil {
		return Dashboard{}, err
	}
	if dash.PresentToday, err = s.Store.PresentCount(ctx, today); err != nil {
		return Dashboard{}, err
	}
	if dash.LateToday, err = s.Store.LateCount(ctx, today); err != nil {
		return Dashboard{}, err
	}
	if dash.OnLeaveToday, err = s.Store.OnLeaveCount(ctx, today); err != nil {
		return Dashboard{}, err
	}
	if dash.PendingLeave, err = s.Store.PendingLeaveCount(ctx); err != nil {
		return Dashboard{}, err
	}
	if dash.MonthWorkHours, dash.MonthExtraHours, err = s.Store.MonthHours(ctx, monthStart, monthEnd); err != nil {
		return Dashboard{}, err
	}

	dash.AbsentToday = dash.ActiveEmployees - dash.PresentToday - dash.OnLeaveToday
	if dash.AbsentToday < 0 {
		dash.AbsentToday = 0
	}
	return dash, nil
}
