package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devevents/internal/domain"
)

func strPtr(s string) *string { return &s }

func reactSummitInput() domain.EventInput {
	return domain.EventInput{
		Title:       "React Summit Amsterdam 2026",
		Description: "The biggest React conference worldwide.",
		Overview:    "Two days of React talks.",
		Image:       "/images/event1.png",
		Venue:       "Kromhouthal",
		Location:    "Amsterdam, Netherlands",
		Date:        "June 12, 2026",
		Time:        "9:00 AM",
		Mode:        "offline",
		Audience:    "Frontend developers",
		Agenda:      []string{"Keynote", "Workshops"},
		Organizer:   "GitNation",
		Tags:        []string{"react", "frontend"},
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes and persists", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, nil, discardLogger, time.Second)

		got, err := svc.CreateEvent(ctx, reactSummitInput())
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "react-summit-amsterdam-2026", got.Slug)
		assert.Equal(t, "2026-06-12", got.Date)
		assert.Equal(t, "09:00", got.Time)
		assert.False(t, got.CreatedAt.IsZero())
		assert.Equal(t, got.CreatedAt, got.UpdatedAt)
		assert.Equal(t, 1, repo.creates)
	})

	t.Run("same title twice is a duplicate slug", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, nil, discardLogger, time.Second)

		_, err := svc.CreateEvent(ctx, reactSummitInput())
		require.NoError(t, err)
		_, err = svc.CreateEvent(ctx, reactSummitInput())
		require.ErrorIs(t, err, domain.ErrDuplicateSlug)
		assert.Equal(t, 1, repo.creates)
	})

	t.Run("accented title does not collide with its plain spelling", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, nil, discardLogger, time.Second)

		accented := reactSummitInput()
		accented.Title = "Café Night"
		plain := reactSummitInput()
		plain.Title = "Cafe Night"

		first, err := svc.CreateEvent(ctx, accented)
		require.NoError(t, err)
		second, err := svc.CreateEvent(ctx, plain)
		require.NoError(t, err)
		assert.Equal(t, "caf-night", first.Slug)
		assert.Equal(t, "cafe-night", second.Slug)
		assert.Equal(t, 2, repo.creates)
	})

	t.Run("nul byte from a form field is rejected without a write", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, nil, discardLogger, time.Second)

		in := reactSummitInput()
		in.Audience = "Frontend\x00developers"
		_, err := svc.CreateEvent(ctx, in)
		require.ErrorIs(t, err, domain.ErrValidationFailed)
		assert.Equal(t, 0, repo.creates)
	})

	t.Run("empty agenda is rejected without a write", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, nil, discardLogger, time.Second)

		in := reactSummitInput()
		in.Agenda = []string{}
		_, err := svc.CreateEvent(ctx, in)
		require.ErrorIs(t, err, domain.ErrValidationFailed)
		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "agenda", ve.Fields[0].Field)
		assert.Equal(t, 0, repo.creates)
	})

	t.Run("unparseable date is rejected", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, nil, discardLogger, time.Second)

		in := reactSummitInput()
		in.Date = "someday"
		_, err := svc.CreateEvent(ctx, in)
		require.ErrorIs(t, err, domain.ErrInvalidDate)
		assert.Equal(t, 0, repo.creates)
	})

	t.Run("store failure is surfaced", func(t *testing.T) {
		repo := newFakeEventRepo()
		repo.err = domain.ErrStoreUnavailable
		svc := NewEventService(repo, nil, discardLogger, time.Second)

		_, err := svc.CreateEvent(ctx, reactSummitInput())
		require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})

	t.Run("invalidates the new slug", func(t *testing.T) {
		cache := newFakeCache()
		svc := NewEventService(newFakeEventRepo(), cache, discardLogger, time.Second)

		_, err := svc.CreateEvent(ctx, reactSummitInput())
		require.NoError(t, err)
		assert.Equal(t, []string{"react-summit-amsterdam-2026"}, cache.invalidated)
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, repo *fakeEventRepo) *domain.Event {
		t.Helper()
		ev, err := NewEventService(repo, nil, discardLogger, time.Second).CreateEvent(ctx, reactSummitInput())
		require.NoError(t, err)
		return ev
	}

	t.Run("venue only keeps slug", func(t *testing.T) {
		repo := newFakeEventRepo()
		ev := seed(t, repo)
		svc := NewEventService(repo, nil, discardLogger, time.Second)

		got, err := svc.UpdateEvent(ctx, ev.ID, domain.EventPatch{Venue: strPtr("  RAI Amsterdam  ")})
		require.NoError(t, err)
		assert.Equal(t, "RAI Amsterdam", got.Venue)
		assert.Equal(t, ev.Slug, got.Slug)
	})

	t.Run("title change regenerates slug and clears both cache entries", func(t *testing.T) {
		repo := newFakeEventRepo()
		ev := seed(t, repo)
		cache := newFakeCache()
		svc := NewEventService(repo, cache, discardLogger, time.Second)

		got, err := svc.UpdateEvent(ctx, ev.ID, domain.EventPatch{Title: strPtr("React Summit 2027")})
		require.NoError(t, err)
		assert.Equal(t, "react-summit-2027", got.Slug)
		assert.Equal(t, []string{"react-summit-amsterdam-2026", "react-summit-2027"}, cache.invalidated)
	})

	t.Run("date is renormalized", func(t *testing.T) {
		repo := newFakeEventRepo()
		ev := seed(t, repo)
		svc := NewEventService(repo, nil, discardLogger, time.Second)

		got, err := svc.UpdateEvent(ctx, ev.ID, domain.EventPatch{Date: strPtr("2026/07/01"), Time: strPtr("6pm")})
		require.NoError(t, err)
		assert.Equal(t, "2026-07-01", got.Date)
		assert.Equal(t, "18:00", got.Time)
	})

	t.Run("empty tags rejected without a write", func(t *testing.T) {
		repo := newFakeEventRepo()
		ev := seed(t, repo)
		svc := NewEventService(repo, nil, discardLogger, time.Second)

		_, err := svc.UpdateEvent(ctx, ev.ID, domain.EventPatch{Tags: &[]string{" "}})
		require.ErrorIs(t, err, domain.ErrValidationFailed)
		assert.Equal(t, 0, repo.updates)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo(), nil, discardLogger, time.Second)

		_, err := svc.UpdateEvent(ctx, "0b6a2a8e-3c55-4f4e-9d2b-6d1c5a1f0009", domain.EventPatch{Venue: strPtr("x")})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("retitle onto an existing slug", func(t *testing.T) {
		repo := newFakeEventRepo()
		ev := seed(t, repo)
		other := reactSummitInput()
		other.Title = "JSConf EU 2026"
		_, err := NewEventService(repo, nil, discardLogger, time.Second).CreateEvent(ctx, other)
		require.NoError(t, err)

		svc := NewEventService(repo, nil, discardLogger, time.Second)
		_, err = svc.UpdateEvent(ctx, ev.ID, domain.EventPatch{Title: strPtr("JSConf EU 2026")})
		require.ErrorIs(t, err, domain.ErrDuplicateSlug)
	})
}
