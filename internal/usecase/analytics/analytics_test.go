package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobwise/internal/domain"
	"jobwise/internal/domain/application"
	"jobwise/internal/domain/feedback"
	"jobwise/internal/domain/user"
)

func day(s string) time.Time {
	t, err := time.Parse(application.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func records(statuses ...application.Status) []application.Application {
	out := make([]application.Application, 0, len(statuses))
	for i, st := range statuses {
		out = append(out, application.Application{
			ID:          string(rune('a' + i)),
			Company:     "Acme",
			Position:    "Engineer",
			Status:      st,
			AppliedDate: day("2024-01-15"),
		})
	}
	return out
}

func ratings(rs ...int) []feedback.Entry {
	out := make([]feedback.Entry, 0, len(rs))
	for _, r := range rs {
		out = append(out, feedback.Entry{Rating: r, Feedback: "ok"})
	}
	return out
}

func TestDashboard_CountsEveryStatus(t *testing.T) {
	stats := Dashboard(records(
		application.StatusApplied,
		application.StatusInterview,
		application.StatusOffer,
		application.StatusRejected,
		application.StatusAccepted,
	))

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Applied)
	assert.Equal(t, 1, stats.Interviews)
	assert.Equal(t, 1, stats.Offers)
	assert.Equal(t, 1, stats.Accepted)

	require.Len(t, stats.Series, len(application.Statuses))
	sum := 0
	for i, s := range stats.Series {
		assert.Equal(t, application.Statuses[i], s.Status)
		assert.Equal(t, s.Status.Label(), s.Name)
		assert.Equal(t, s.Status.Color(), s.Color)
		sum += s.Value
	}
	assert.Equal(t, stats.Total, sum)
}

func TestDashboard_RecentIsNewestFive(t *testing.T) {
	in := records(
		application.StatusApplied, application.StatusApplied, application.StatusOffer,
		application.StatusApplied, application.StatusRejected, application.StatusInterview,
		application.StatusApplied,
	)
	stats := Dashboard(in)

	require.Len(t, stats.Recent, RecentLimit)
	assert.Equal(t, in[:RecentLimit], stats.Recent)
	assert.Equal(t, 4, stats.Applied)
}

func TestDashboard_Empty(t *testing.T) {
	stats := Dashboard(nil)
	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.Recent)
	assert.Len(t, stats.Series, len(application.Statuses))
}

func TestOverview_AverageAndTotals(t *testing.T) {
	users := []user.Account{{ID: "1", JobsCount: 3}, {ID: "2", JobsCount: 4}}
	ov := Overview(users, ratings(5, 5, 4, 5))

	assert.Equal(t, 2, ov.TotalUsers)
	assert.Equal(t, 7, ov.TotalJobs)
	assert.Equal(t, 4, ov.TotalFeedbacks)
	assert.InDelta(t, 4.75, ov.AverageRating, 1e-9)
}

func TestOverview_NoFeedbackAveragesZero(t *testing.T) {
	ov := Overview(nil, nil)
	assert.Zero(t, ov.AverageRating)
	assert.Zero(t, ov.TotalFeedbacks)
}

func TestRatingDistribution(t *testing.T) {
	got := RatingDistribution(ratings(5, 5, 4, 5))

	want := []RatingBucket{
		{Rating: 5, Label: "5 Star", Count: 3},
		{Rating: 4, Label: "4 Star", Count: 1},
		{Rating: 3, Label: "3 Star", Count: 0},
		{Rating: 2, Label: "2 Star", Count: 0},
		{Rating: 1, Label: "1 Star", Count: 0},
	}
	assert.Equal(t, want, got)
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeekly, p)

	p, err = ParsePeriod(" Monthly ")
	require.NoError(t, err)
	assert.Equal(t, PeriodMonthly, p)

	_, err = ParsePeriod("hourly")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestGrowth_WeeklyBuckets(t *testing.T) {
	points, err := Growth(GrowthInput{
		Period:    PeriodWeekly,
		From:      day("2024-01-01"),
		To:        day("2024-01-20"),
		Users:     []time.Time{day("2024-01-01"), day("2024-01-09")},
		Jobs:      []time.Time{day("2024-01-07"), day("2024-01-20"), day("2024-02-10")},
		Feedbacks: []time.Time{day("2024-01-14").Add(23 * time.Hour)},
	})
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, "Jan 1-7", points[0].Label)
	assert.Equal(t, "Jan 8-14", points[1].Label)
	assert.Equal(t, "Jan 15-21", points[2].Label)

	assert.Equal(t, 1, points[0].Users)
	assert.Equal(t, 1, points[0].Jobs)
	assert.Equal(t, 1, points[1].Users)
	assert.Equal(t, 1, points[1].Feedbacks)
	assert.Equal(t, 1, points[2].Jobs)
}

func TestGrowth_GivenDaysBoundCounts(t *testing.T) {
	points, err := Growth(GrowthInput{
		Period: PeriodWeekly,
		From:   day("2025-01-01"),
		To:     day("2025-01-02"),
		Jobs:   []time.Time{day("2025-01-02").Add(23 * time.Hour), day("2025-01-03"), day("2025-01-06")},
	})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, day("2025-01-08"), points[0].End)
	assert.Equal(t, 1, points[0].Jobs)

	monthly, err := Growth(GrowthInput{
		Period: PeriodMonthly,
		From:   day("2025-01-10"),
		To:     day("2025-01-20"),
		Users:  []time.Time{day("2025-01-09"), day("2025-01-10"), day("2025-01-21")},
	})
	require.NoError(t, err)
	require.Len(t, monthly, 1)
	assert.Equal(t, 1, monthly[0].Users)
}

func TestGrowth_ClampsSideTakenFromData(t *testing.T) {
	points, err := Growth(GrowthInput{
		Period: PeriodDaily,
		From:   day("2025-01-10"),
		Users:  []time.Time{day("2025-01-01")},
	})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "Jan 10", points[0].Label)
	assert.Zero(t, points[0].Users)

	points, err = Growth(GrowthInput{
		Period: PeriodDaily,
		To:     day("2025-01-01"),
		Jobs:   []time.Time{day("2025-01-05")},
	})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "Jan 1", points[0].Label)
	assert.Zero(t, points[0].Jobs)
}

func TestGrowth_Labels(t *testing.T) {
	weekly, err := Growth(GrowthInput{Period: PeriodWeekly, From: day("2024-01-29"), To: day("2024-01-29")})
	require.NoError(t, err)
	require.Len(t, weekly, 1)
	assert.Equal(t, "Jan 29-Feb 4", weekly[0].Label)

	daily, err := Growth(GrowthInput{Period: PeriodDaily, From: day("2024-01-02"), To: day("2024-01-03")})
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, "Jan 2", daily[0].Label)
	assert.Equal(t, "Jan 3", daily[1].Label)

	monthly, err := Growth(GrowthInput{Period: PeriodMonthly, From: day("2023-12-15"), To: day("2024-02-01")})
	require.NoError(t, err)
	require.Len(t, monthly, 3)
	assert.Equal(t, "Dec 2023", monthly[0].Label)
	assert.Equal(t, "Feb 2024", monthly[2].Label)
}

func TestGrowth_BoundsFromData(t *testing.T) {
	points, err := Growth(GrowthInput{
		Period: PeriodDaily,
		Users:  []time.Time{day("2024-03-02"), day("2024-03-01")},
		Jobs:   []time.Time{day("2024-03-04")},
	})
	require.NoError(t, err)
	require.Len(t, points, 4)
	assert.Equal(t, 1, points[0].Users)
	assert.Equal(t, 1, points[3].Jobs)
}

func TestGrowth_EmptyAndInvalid(t *testing.T) {
	points, err := Growth(GrowthInput{})
	require.NoError(t, err)
	assert.Empty(t, points)

	_, err = Growth(GrowthInput{From: day("2024-02-01"), To: day("2024-01-01")})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = Growth(GrowthInput{Period: PeriodDaily, From: day("2020-01-01"), To: day("2024-01-01")})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

type fakeRecords struct {
	items   []application.Application
	version uint64
	calls   int
}

func (f *fakeRecords) List(context.Context) ([]application.Application, error) {
	f.calls++
	return f.items, nil
}

func (f *fakeRecords) Version() uint64 { return f.version }

type fakeFeedback struct {
	items   []feedback.Entry
	version uint64
}

func (f *fakeFeedback) List(context.Context) ([]feedback.Entry, error) { return f.items, nil }
func (f *fakeFeedback) Version() uint64                                { return f.version }

type fakePlatform struct {
	users   []user.Account
	jobs    []application.Application
	version uint64
	err     error
}

func (f *fakePlatform) Roster(context.Context) ([]user.Account, error) { return f.users, f.err }
func (f *fakePlatform) AllApplications(context.Context) ([]application.Application, error) {
	return f.jobs, f.err
}
func (f *fakePlatform) Version() uint64 { return f.version }

func TestService_DashboardFollowsVersion(t *testing.T) {
	cache, err := NewCache(16)
	require.NoError(t, err)
	svc := NewService(cache, "")
	ctx := context.Background()

	src := &fakeRecords{items: records(application.StatusApplied), version: 1}
	first, err := svc.Dashboard(ctx, "u1", src)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Total)

	_, err = svc.Dashboard(ctx, "u1", src)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)

	src.items = records(application.StatusApplied, application.StatusOffer)
	src.version = 2
	second, err := svc.Dashboard(ctx, "u1", src)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Total)
	assert.Equal(t, 1, second.Offers)
	assert.Equal(t, 2, src.calls)
}

func TestService_CachedResultsAreCopies(t *testing.T) {
	cache, err := NewCache(16)
	require.NoError(t, err)
	svc := NewService(cache, PeriodDaily)
	ctx := context.Background()

	src := &fakeRecords{items: records(application.StatusApplied, application.StatusOffer), version: 1}
	first, err := svc.Dashboard(ctx, "u1", src)
	require.NoError(t, err)
	first.Series[0].Value = 99
	first.Recent[0].Company = "Mutated"

	again, err := svc.Dashboard(ctx, "u1", src)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
	assert.NotEqual(t, 99, again.Series[0].Value)
	assert.NotEqual(t, "Mutated", again.Recent[0].Company)

	platform := &fakePlatform{users: []user.Account{{ID: "1", JoinDate: day("2024-01-05")}}}
	fb := &fakeFeedback{items: []feedback.Entry{{Rating: 5, Date: day("2024-01-05")}}}
	report, err := svc.Admin(ctx, platform, fb)
	require.NoError(t, err)
	report.RatingDistribution[0].Count = 42
	report, err = svc.Admin(ctx, platform, fb)
	require.NoError(t, err)
	assert.Equal(t, 1, report.RatingDistribution[0].Count)

	points, err := svc.Growth(ctx, GrowthQuery{}, platform, fb)
	require.NoError(t, err)
	require.Len(t, points, 1)
	points[0].Users = 7
	points, err = svc.Growth(ctx, GrowthQuery{}, platform, fb)
	require.NoError(t, err)
	assert.Equal(t, 1, points[0].Users)
}

func TestService_DashboardKeyedPerOwner(t *testing.T) {
	cache, err := NewCache(16)
	require.NoError(t, err)
	svc := NewService(cache, "")
	ctx := context.Background()

	a := &fakeRecords{items: records(application.StatusApplied), version: 1}
	b := &fakeRecords{items: records(application.StatusOffer, application.StatusOffer), version: 1}

	sa, err := svc.Dashboard(ctx, "a", a)
	require.NoError(t, err)
	sb, err := svc.Dashboard(ctx, "b", b)
	require.NoError(t, err)
	assert.Equal(t, 1, sa.Total)
	assert.Equal(t, 2, sb.Total)
}

func TestService_AdminReport(t *testing.T) {
	cache, err := NewCache(16)
	require.NoError(t, err)
	svc := NewService(cache, PeriodWeekly)
	ctx := context.Background()

	platform := &fakePlatform{users: []user.Account{{ID: "1", JobsCount: 2}}, version: 1}
	fb := &fakeFeedback{items: ratings(5, 5, 4, 5), version: 1}

	report, err := svc.Admin(ctx, platform, fb)
	require.NoError(t, err)
	assert.InDelta(t, 4.75, report.Overview.AverageRating, 1e-9)
	assert.Equal(t, 3, report.RatingDistribution[0].Count)

	fb.items = ratings(1)
	fb.version = 2
	report, err = svc.Admin(ctx, platform, fb)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, report.Overview.AverageRating, 1e-9)
	assert.Equal(t, 1, report.RatingDistribution[4].Count)
}

func TestService_AdminErrorNotCached(t *testing.T) {
	svc := NewService(nil, "")
	ctx := context.Background()
	platform := &fakePlatform{err: errors.New("boom")}

	_, err := svc.Admin(ctx, platform, &fakeFeedback{})
	require.Error(t, err)

	platform.err = nil
	report, err := svc.Admin(ctx, platform, &fakeFeedback{})
	require.NoError(t, err)
	assert.Zero(t, report.Overview.TotalUsers)
}

func TestService_GrowthDefaultPeriod(t *testing.T) {
	cache, err := NewCache(16)
	require.NoError(t, err)
	svc := NewService(cache, PeriodMonthly)

	platform := &fakePlatform{
		users: []user.Account{{ID: "1", JoinDate: day("2024-01-05")}},
		jobs:  []application.Application{{ID: "j", AppliedDate: day("2024-02-10")}},
	}
	fb := &fakeFeedback{items: []feedback.Entry{{Rating: 4, Date: day("2024-02-11")}}}

	points, err := svc.Growth(context.Background(), GrowthQuery{}, platform, fb)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "Jan 2024", points[0].Label)
	assert.Equal(t, 1, points[0].Users)
	assert.Equal(t, 1, points[1].Jobs)
	assert.Equal(t, 1, points[1].Feedbacks)
	assert.Positive(t, cache.Len())
}
