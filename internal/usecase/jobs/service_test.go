package jobs

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobwise/internal/domain"
	"jobwise/internal/domain/application"
	"jobwise/internal/infrastructure/kv"
	"jobwise/internal/infrastructure/persistence/memory"
)

func strPtr(s string) *string { return &s }

func newTestService(opts ...Option) *Service {
	n := 0
	ids := WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("job-%d", n)
	})
	return NewService(memory.NewApplicationRepository(), append([]Option{ids}, opts...)...)
}

func validInput(company string) CreateInput {
	return CreateInput{Company: company, Position: "Software Engineer", AppliedDate: "2024-01-15"}
}

func TestService_CreateThenList(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	a, err := s.Create(ctx, CreateInput{
		Company:     " Google ",
		Position:    "Software Engineer",
		Status:      "interview",
		AppliedDate: "2024-01-15",
		Notes:       "Technical interview next week",
	})
	require.NoError(t, err)
	assert.Equal(t, "job-1", a.ID)
	assert.Equal(t, "Google", a.Company)
	assert.Equal(t, application.StatusInterview, a.Status)
	assert.Equal(t, "2024-01-15", a.AppliedDate.Format(application.DateLayout))

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, a, items[0])
}

func TestService_CreateDefaultsToApplied(t *testing.T) {
	a, err := newTestService().Create(context.Background(), validInput("Microsoft"))
	require.NoError(t, err)
	assert.Equal(t, application.StatusApplied, a.Status)
}

func TestService_CreatePrependsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestService()

	_, err := s.Create(ctx, CreateInput{Company: "Old", Position: "P", AppliedDate: "2024-03-01"})
	require.NoError(t, err)
	_, err = s.Create(ctx, CreateInput{Company: "New", Position: "P", AppliedDate: "2023-01-01"})
	require.NoError(t, err)

	items, _ := s.List(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, "New", items[0].Company)
	assert.Equal(t, "Old", items[1].Company)
}

func TestService_CreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		in    CreateInput
		field string
	}{
		{name: "missing company", in: CreateInput{Position: "P", AppliedDate: "2024-01-15"}, field: "company"},
		{name: "blank company", in: CreateInput{Company: "   ", Position: "P", AppliedDate: "2024-01-15"}, field: "company"},
		{name: "missing position", in: CreateInput{Company: "C", AppliedDate: "2024-01-15"}, field: "position"},
		{name: "missing date", in: CreateInput{Company: "C", Position: "P"}, field: "appliedDate"},
		{name: "unparseable date", in: CreateInput{Company: "C", Position: "P", AppliedDate: "15/01/2024"}, field: "appliedDate"},
		{name: "unknown status", in: CreateInput{Company: "C", Position: "P", AppliedDate: "2024-01-15", Status: "ghosted"}, field: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := newTestService()

			_, err := s.Create(ctx, tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)

			items, _ := s.List(ctx)
			assert.Empty(t, items)
			assert.Zero(t, s.Version())
		})
	}
}

func TestService_UpdateEveryStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	a, err := s.Create(ctx, validInput("Tesla"))
	require.NoError(t, err)

	for _, st := range application.Statuses {
		updated, err := s.Update(ctx, a.ID, UpdateInput{Status: strPtr(string(st))})
		require.NoError(t, err)
		assert.Equal(t, st, updated.Status)

		got, err := s.Get(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, st, got.Status)
	}

	// accepted back to applied is legal
	_, err = s.Update(ctx, a.ID, UpdateInput{Status: strPtr("applied")})
	require.NoError(t, err)
}

func TestService_UpdateLastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	a, _ := s.Create(ctx, validInput("Apple"))

	_, err := s.Update(ctx, a.ID, UpdateInput{Status: strPtr("offer")})
	require.NoError(t, err)
	_, err = s.Update(ctx, a.ID, UpdateInput{Status: strPtr("rejected")})
	require.NoError(t, err)

	items, _ := s.List(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, application.StatusRejected, items[0].Status)
}

func TestService_UpdateMergesAndKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	first, _ := s.Create(ctx, validInput("Google"))
	_, _ = s.Create(ctx, validInput("Amazon"))

	updated, err := s.Update(ctx, first.ID, UpdateInput{Notes: strPtr("Recruiter call"), AppliedDate: strPtr("2024-02-01")})
	require.NoError(t, err)
	assert.Equal(t, "Google", updated.Company)
	assert.Equal(t, "Software Engineer", updated.Position)
	assert.Equal(t, "Recruiter call", updated.Notes)
	assert.Equal(t, "2024-02-01", updated.AppliedDate.Format(application.DateLayout))

	items, _ := s.List(ctx)
	assert.Equal(t, "Amazon", items[0].Company)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestService_UpdateRevalidates(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	a, _ := s.Create(ctx, validInput("Netflix"))
	v := s.Version()

	_, err := s.Update(ctx, a.ID, UpdateInput{Company: strPtr("")})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	got, _ := s.Get(ctx, a.ID)
	assert.Equal(t, "Netflix", got.Company)
	assert.Equal(t, v, s.Version())
}

func TestService_UpdateRejectsEmptyStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	a, err := s.Create(ctx, CreateInput{Company: "Stripe", Position: "SRE", Status: "offer", AppliedDate: "2024-02-01"})
	require.NoError(t, err)
	v := s.Version()

	for _, raw := range []string{"", "   "} {
		_, err = s.Update(ctx, a.ID, UpdateInput{Status: strPtr(raw)})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))
		assert.Equal(t, "status is required", err.Error())
	}

	got, err := s.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, application.StatusOffer, got.Status)
	assert.Equal(t, v, s.Version())
}

func TestService_UpdateNotFound(t *testing.T) {
	_, err := newTestService().Update(context.Background(), "missing", UpdateInput{Status: strPtr("offer")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	a, _ := s.Create(ctx, validInput("Google"))
	b, _ := s.Create(ctx, validInput("Amazon"))

	require.NoError(t, s.Delete(ctx, a.ID))
	items, _ := s.List(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ID)

	v := s.Version()
	err := s.Delete(ctx, a.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	items, _ = s.List(ctx)
	assert.Len(t, items, 1)
	assert.Equal(t, v, s.Version())
}

func TestService_SnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	s := newTestService(WithSnapshotStore(store))
	require.NoError(t, s.Init(ctx))
	_, err := s.Create(ctx, validInput("Google"))
	require.NoError(t, err)
	_, err = s.Create(ctx, validInput("Amazon"))
	require.NoError(t, err)

	restored := newTestService(WithSnapshotStore(store))
	require.NoError(t, restored.Init(ctx))

	items, _ := restored.List(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, "Amazon", items[0].Company)
	assert.Equal(t, "Google", items[1].Company)
	assert.NotZero(t, restored.Version())
}

func TestService_VersionAdvancesOnMutation(t *testing.T) {
	ctx := context.Background()
	s := newTestService()
	assert.Zero(t, s.Version())

	a, _ := s.Create(ctx, validInput("Google"))
	assert.Equal(t, uint64(1), s.Version())
	_, _ = s.Update(ctx, a.ID, UpdateInput{Status: strPtr("offer")})
	assert.Equal(t, uint64(2), s.Version())
	_ = s.Delete(ctx, a.ID)
	assert.Equal(t, uint64(3), s.Version())
}
