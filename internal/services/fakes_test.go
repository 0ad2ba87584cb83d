package services

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"devevents/internal/domain"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.Event
	order   []string
	creates int
	updates int
	err     error // if set, every call returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event)}
}

func (f *fakeEventRepo) slugTaken(slug, exceptID string) bool {
	for id, e := range f.byID {
		if e.Slug == slug && id != exceptID {
			return true
		}
	}
	return false
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.slugTaken(e.Slug, "") {
		return domain.ErrDuplicateSlug
	}
	f.creates++
	e.ID = uuid.NewString()
	stored := *e
	f.byID[e.ID] = &stored
	f.order = append(f.order, e.ID)
	return nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, p domain.EventPatch) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if p.Slug != nil && f.slugTaken(*p.Slug, id) {
		return nil, domain.ErrDuplicateSlug
	}
	f.updates++
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&e.Title, p.Title)
	apply(&e.Slug, p.Slug)
	apply(&e.Description, p.Description)
	apply(&e.Overview, p.Overview)
	apply(&e.Image, p.Image)
	apply(&e.Venue, p.Venue)
	apply(&e.Location, p.Location)
	apply(&e.Date, p.Date)
	apply(&e.Time, p.Time)
	apply(&e.Mode, p.Mode)
	apply(&e.Audience, p.Audience)
	apply(&e.Organizer, p.Organizer)
	if p.Agenda != nil {
		e.Agenda = *p.Agenda
	}
	if p.Tags != nil {
		e.Tags = *p.Tags
	}
	out := *e
	return &out, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		out := *e
		return &out, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.byID {
		if e.Slug == slug {
			out := *e
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListAll(ctx context.Context) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Event, 0, len(f.order))
	for i := len(f.order) - 1; i >= 0; i-- {
		out = append(out, f.byID[f.order[i]])
	}
	return out, nil
}

func (f *fakeEventRepo) ListSharingTags(ctx context.Context, excludeID string, tags []string) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Event, 0)
	for i := len(f.order) - 1; i >= 0; i-- {
		e := f.byID[f.order[i]]
		if e.ID == excludeID {
			continue
		}
		if slices.ContainsFunc(e.Tags, func(t string) bool { return slices.Contains(tags, t) }) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) UpsertBySlug(ctx context.Context, e *domain.Event) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	for id, existing := range f.byID {
		if existing.Slug == e.Slug {
			e.ID = id
			e.CreatedAt = existing.CreatedAt
			stored := *e
			f.byID[id] = &stored
			return false, nil
		}
	}
	e.ID = uuid.NewString()
	stored := *e
	f.byID[e.ID] = &stored
	f.order = append(f.order, e.ID)
	return true, nil
}

// fakeBookingRepo is an in-memory BookingRepository for tests.
type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if f.err != nil {
		return f.err
	}
	b.ID = uuid.NewString()
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeBookingRepo) CountByEventID(ctx context.Context, eventID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := 0
	for _, b := range f.bookings {
		if b.EventID == eventID {
			n++
		}
	}
	return n, nil
}

// fakeCache records invalidations and serves what was Set.
type fakeCache struct {
	entries     map[string]*domain.Event
	invalidated []string
	getErr      error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*domain.Event)}
}

func (c *fakeCache) Get(ctx context.Context, slug string) (*domain.Event, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	e, ok := c.entries[slug]
	return e, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, e *domain.Event) error {
	c.entries[e.Slug] = e
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, slugs ...string) error {
	for _, s := range slugs {
		if s == "" {
			continue
		}
		delete(c.entries, s)
		c.invalidated = append(c.invalidated, s)
	}
	return nil
}

// fakeEmailService captures confirmations instead of sending them.
type fakeEmailService struct {
	sent []*domain.BookingConfirmationEmailData
	err  error
}

func (f *fakeEmailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
