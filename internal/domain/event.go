package domain

import (
	"context"
	"time"
)

// Event represents a single published event.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventInput holds the raw, caller-supplied fields for a new event. Slug and
// timestamps are derived, never taken from the caller.
// swagger:model EventInput
type EventInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Overview    string   `json:"overview"`
	Image       string   `json:"image"`
	Venue       string   `json:"venue"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Mode        string   `json:"mode"`
	Audience    string   `json:"audience"`
	Agenda      []string `json:"agenda"`
	Organizer   string   `json:"organizer"`
	Tags        []string `json:"tags"`
}

// EventPatch holds a partial update. Nil fields are left unchanged. Slug is never
// read from callers; it is set by validation when Title is present.
// swagger:model EventPatch
type EventPatch struct {
	Title       *string   `json:"title"`
	Slug        *string   `json:"-"`
	Description *string   `json:"description"`
	Overview    *string   `json:"overview"`
	Image       *string   `json:"image"`
	Venue       *string   `json:"venue"`
	Location    *string   `json:"location"`
	Date        *string   `json:"date"`
	Time        *string   `json:"time"`
	Mode        *string   `json:"mode"`
	Audience    *string   `json:"audience"`
	Agenda      *[]string `json:"agenda"`
	Organizer   *string   `json:"organizer"`
	Tags        *[]string `json:"tags"`
}

// IsEmpty reports whether the patch changes nothing.
func (p EventPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Overview == nil && p.Image == nil &&
		p.Venue == nil && p.Location == nil && p.Date == nil && p.Time == nil && p.Mode == nil &&
		p.Audience == nil && p.Agenda == nil && p.Organizer == nil && p.Tags == nil
}

// EventRepository defines the interface for event storage. Implementations persist
// what they are given; validation and normalization happen before these calls.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	// Update applies an already-validated patch and returns the stored row.
	Update(ctx context.Context, id string, patch EventPatch) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	// ListAll returns every event, most recently created first.
	ListAll(ctx context.Context) ([]*Event, error)
	// ListSharingTags returns events having at least one of tags, excluding excludeID.
	ListSharingTags(ctx context.Context, excludeID string, tags []string) ([]*Event, error)
	// UpsertBySlug inserts the event or overwrites the one with the same slug.
	// inserted is false when an existing row was updated.
	UpsertBySlug(ctx context.Context, event *Event) (inserted bool, err error)
}

// EventCache caches events looked up by slug.
type EventCache interface {
	Get(ctx context.Context, slug string) (*Event, bool, error)
	Set(ctx context.Context, event *Event) error
	Invalidate(ctx context.Context, slugs ...string) error
}

// EventService defines the organizer-facing write path for events.
type EventService interface {
	CreateEvent(ctx context.Context, in EventInput) (*Event, error)
	UpdateEvent(ctx context.Context, id string, patch EventPatch) (*Event, error)
}

// CatalogService defines the read paths consumed by the presentation layer.
type CatalogService interface {
	// FindEventBySlug matches slug exactly; found is false when no event has it.
	FindEventBySlug(ctx context.Context, slug string) (event *Event, found bool, err error)
	ListEvents(ctx context.Context) ([]*Event, error)
	// ListSimilarEvents returns an empty slice when slug matches no event.
	ListSimilarEvents(ctx context.Context, slug string) ([]*Event, error)
	CountBookings(ctx context.Context, eventID string) (int, error)
}
