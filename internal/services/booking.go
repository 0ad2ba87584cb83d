package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"devevents/internal/domain"
	"devevents/internal/validation"
)

type bookingService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewBookingService returns the attendee write path. emailService may be nil,
// in which case no confirmation is sent.
func NewBookingService(eventRepo domain.EventRepository,
	bookingRepo domain.BookingRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// CreateBooking records a booking for an existing event. The email is trimmed
// and lowercased before it is validated or stored.
func (s *bookingService) CreateBooking(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	ve := &domain.ValidationError{}

	email = validation.NormalizeEmail(email)
	if !validation.IsValidEmail(email) {
		ve.Add("email", "a valid email address is required", nil)
	}
	id, err := uuid.Parse(strings.TrimSpace(eventID))
	if err != nil {
		ve.Add("event_id", "a valid event id is required", err)
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id.String())
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrDanglingReference
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking := domain.NewBooking(event.ID, email, now, now)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, event, booking)
	return booking, nil
}

// sendConfirmation is best effort: a failed email never undoes the booking.
func (s *bookingService) sendConfirmation(ctx context.Context, event *domain.Event, booking *domain.Booking) {
	if s.emailService == nil {
		return
	}
	data := &domain.BookingConfirmationEmailData{
		Email:      booking.Email,
		EventTitle: event.Title,
		EventSlug:  event.Slug,
		Date:       event.Date,
		Time:       event.Time,
		Venue:      event.Venue,
		Location:   event.Location,
		Mode:       event.Mode,
	}
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
		s.logger.Warn("booking confirmation not sent", "booking_id", booking.ID, "event_id", event.ID, "error", err)
	}
}
