package service

import (
	"context"
	"time"

	"uhs-recruit/internal/repository"
)

// DashboardStats is the recruitment overview for one vendor, or every vendor for super admins.
type DashboardStats struct {
	TotalCandidates int64                    `json:"totalCandidates"`
	TotalHrs        int64                    `json:"totalHrs"`
	ByStatus        []repository.StatusCount `json:"byStatus"`
	AppliedToday    int64                    `json:"appliedToday"`
}

type DashboardService interface {
	GetDashboardStats(ctx context.Context, caller *Principal) (*DashboardStats, error)
	GetApplicationTrend(ctx context.Context, caller *Principal, days int) ([]repository.DailyCount, error)
}

type dashboardService struct {
	candidates repository.CandidateRepository
	hrs        repository.HrRepository
	now        func() time.Time
}

func NewDashboardService(candidates repository.CandidateRepository, hrs repository.HrRepository) DashboardService {
	return &dashboardService{candidates: candidates, hrs: hrs, now: time.Now}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context, caller *Principal) (*DashboardStats, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	scope := caller.VendorScope()

	var stats DashboardStats
	var err error
	if stats.TotalCandidates, err = s.candidates.Count(ctx, scope); err != nil {
		return nil, err
	}
	if stats.ByStatus, err = s.candidates.CountByStatus(ctx, scope); err != nil {
		return nil, err
	}

	if scope == nil {
		stats.TotalHrs, err = s.hrs.Count(ctx)
	} else {
		hrs, ferr := s.hrs.FindByVendor(ctx, *scope)
		stats.TotalHrs, err = int64(len(hrs)), ferr
	}
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	today, err := s.candidates.DailyInflow(ctx, scope, midnight, now)
	if err != nil {
		return nil, err
	}
	for _, d := range today {
		stats.AppliedToday += d.Total
	}
	return &stats, nil
}

// GetApplicationTrend returns per-day candidate inflow over the last days days.
func (s *dashboardService) GetApplicationTrend(ctx context.Context, caller *Principal, days int) ([]repository.DailyCount, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	end := s.now().UTC()
	start := end.AddDate(0, 0, -days)

	rows, err := s.candidates.DailyInflow(ctx, caller.VendorScope(), start, end)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.DailyCount{}
	}
	return rows, nil
}
