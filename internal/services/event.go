package services

import (
	"context"
	"log/slog"
	"time"

	"devevents/internal/domain"
	"devevents/internal/validation"
)

type eventService struct {
	eventRepo      domain.EventRepository
	cache          domain.EventCache
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService returns the organizer write path. cache may be nil.
func NewEventService(eventRepo domain.EventRepository,
	cache domain.EventCache,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		cache:          cache,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	event, err := validation.PrepareEvent(in)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	s.invalidate(ctx, event.Slug)
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	prepared, err := validation.PrepareEventPatch(patch)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var previousSlug string
	if s.cache != nil && prepared.Slug != nil {
		current, err := s.eventRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		previousSlug = current.Slug
	}

	updated, err := s.eventRepo.Update(ctx, id, prepared)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, previousSlug, updated.Slug)
	return updated, nil
}

func (s *eventService) invalidate(ctx context.Context, slugs ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, slugs...); err != nil {
		s.logger.Warn("event cache invalidation failed", "slugs", slugs, "error", err)
	}
}
