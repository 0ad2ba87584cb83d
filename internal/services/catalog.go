package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"devevents/internal/domain"
)

type catalogService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	cache          domain.EventCache
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewCatalogService returns the read paths used by the HTTP layer. cache may be nil.
func NewCatalogService(eventRepo domain.EventRepository,
	bookingRepo domain.BookingRepository,
	cache domain.EventCache,
	logger *slog.Logger,
	timeout time.Duration,
) domain.CatalogService {
	return &catalogService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		cache:          cache,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *catalogService) FindEventBySlug(ctx context.Context, slug string) (*domain.Event, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, slug)
		if err != nil {
			s.logger.Warn("event cache read failed", "slug", slug, "error", err)
		} else if ok {
			return cached, true, nil
		}
	}

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, event); err != nil {
			s.logger.Warn("event cache write failed", "slug", slug, "error", err)
		}
	}
	return event, true, nil
}

func (s *catalogService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.ListAll(ctx)
}

// ListSimilarEvents returns events sharing at least one tag with the event
// identified by slug, never including that event itself.
func (s *catalogService) ListSimilarEvents(ctx context.Context, slug string) ([]*domain.Event, error) {
	source, found, err := s.FindEventBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !found {
		return []*domain.Event{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.ListSharingTags(ctx, source.ID, source.Tags)
}

func (s *catalogService) CountBookings(ctx context.Context, eventID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.bookingRepo.CountByEventID(ctx, eventID)
}
