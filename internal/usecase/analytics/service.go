package analytics

import (
	"context"
	"slices"
	"time"

	"jobwise/internal/domain/application"
	"jobwise/internal/domain/feedback"
	"jobwise/internal/domain/user"
)

// RecordSource is a versioned job record store.
type RecordSource interface {
	List(ctx context.Context) ([]application.Application, error)
	Version() uint64
}

type FeedbackSource interface {
	List(ctx context.Context) ([]feedback.Entry, error)
	Version() uint64
}

// PlatformSource exposes every account with its live job count, and every
// application record across accounts.
type PlatformSource interface {
	Roster(ctx context.Context) ([]user.Account, error)
	AllApplications(ctx context.Context) ([]application.Application, error)
	Version() uint64
}

type AdminReport struct {
	Overview           AdminOverview  `json:"overview"`
	RatingDistribution []RatingBucket `json:"ratingDistribution"`
}

func (r AdminReport) clone() AdminReport {
	r.RatingDistribution = slices.Clone(r.RatingDistribution)
	return r
}

type Service struct {
	cache         *Cache
	defaultPeriod Period
}

func NewService(cache *Cache, defaultPeriod Period) *Service {
	if defaultPeriod == "" {
		defaultPeriod = PeriodWeekly
	}
	return &Service{cache: cache, defaultPeriod: defaultPeriod}
}

func (s *Service) Dashboard(ctx context.Context, owner string, src RecordSource) (DashboardStats, error) {
	key := cacheKey("dashboard", owner, src.Version())
	return memo(s.cache, "dashboard", key, func() (DashboardStats, error) {
		records, err := src.List(ctx)
		if err != nil {
			return DashboardStats{}, err
		}
		return Dashboard(records), nil
	}, DashboardStats.clone)
}

func (s *Service) Admin(ctx context.Context, platform PlatformSource, fb FeedbackSource) (AdminReport, error) {
	key := cacheKey("admin", "platform", platform.Version(), fb.Version())
	return memo(s.cache, "admin", key, func() (AdminReport, error) {
		users, err := platform.Roster(ctx)
		if err != nil {
			return AdminReport{}, err
		}
		entries, err := fb.List(ctx)
		if err != nil {
			return AdminReport{}, err
		}
		return AdminReport{
			Overview:           Overview(users, entries),
			RatingDistribution: RatingDistribution(entries),
		}, nil
	}, AdminReport.clone)
}

type GrowthQuery struct {
	Period Period
	From   time.Time
	To     time.Time
}

func (s *Service) Growth(ctx context.Context, q GrowthQuery, platform PlatformSource, fb FeedbackSource) ([]GrowthPoint, error) {
	if q.Period == "" {
		q.Period = s.defaultPeriod
	}
	key := cacheKey("growth", string(q.Period)+"|"+q.From.UTC().Format(time.RFC3339)+"|"+q.To.UTC().Format(time.RFC3339),
		platform.Version(), fb.Version())

	return memo(s.cache, "growth", key, func() ([]GrowthPoint, error) {
		users, err := platform.Roster(ctx)
		if err != nil {
			return nil, err
		}
		records, err := platform.AllApplications(ctx)
		if err != nil {
			return nil, err
		}
		entries, err := fb.List(ctx)
		if err != nil {
			return nil, err
		}

		in := GrowthInput{Period: q.Period, From: q.From, To: q.To}
		for _, u := range users {
			in.Users = append(in.Users, u.JoinDate)
		}
		for _, r := range records {
			in.Jobs = append(in.Jobs, r.AppliedDate)
		}
		for _, e := range entries {
			in.Feedbacks = append(in.Feedbacks, e.Date)
		}
		return Growth(in)
	}, clonePoints)
}

func clonePoints(p []GrowthPoint) []GrowthPoint {
	return slices.Clone(p)
}
