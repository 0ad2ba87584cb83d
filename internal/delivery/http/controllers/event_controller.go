package controllers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"devevents/internal/adapters/calendar"
	"devevents/internal/delivery/http/helpers"
	"devevents/internal/domain"
	"devevents/internal/validation"
)

// EventResponse is the success response envelope for a single event.
type EventResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListResponse is the success response envelope for event lists.
type EventListResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventDetail is the body of GET /api/events/{slug}.
type EventDetail struct {
	Event    *domain.Event `json:"event"`
	Bookings int           `json:"bookings"`
}

// EventDetailResponse is the success response envelope for GET /api/events/{slug} (200).
type EventDetailResponse struct {
	Data  EventDetail       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Events  domain.EventService
	Catalog domain.CatalogService
}

func NewEventController(logger *slog.Logger, events domain.EventService, catalog domain.CatalogService) *EventController {
	return &EventController{
		Logger:  logger,
		Events:  events,
		Catalog: catalog,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Accepts JSON or form data. agenda and tags may be repeated form values or one JSON array. The slug is derived from title; date and time are normalized.
// @Tags events
// @Accept json,mpfd,x-www-form-urlencoded
// @Produce json
// @Param event body domain.EventInput true "Event data"
// @Success 201 {object} controllers.EventResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 409 {object} helpers.APIResponse "error.code: duplicate_slug"
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var in domain.EventInput
	if helpers.IsForm(r) {
		if !c.decodeEventForm(w, r, &in) {
			return
		}
	} else if !helpers.DecodeJSON(w, r, &in) {
		return
	}
	event, err := c.Events.CreateEvent(r.Context(), in)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

func (c *EventController) decodeEventForm(w http.ResponseWriter, r *http.Request, in *domain.EventInput) bool {
	if !helpers.ParseForm(w, r) {
		return false
	}
	in.Title = r.PostFormValue("title")
	in.Description = r.PostFormValue("description")
	in.Overview = r.PostFormValue("overview")
	in.Image = r.PostFormValue("image")
	in.Venue = r.PostFormValue("venue")
	in.Location = r.PostFormValue("location")
	in.Date = r.PostFormValue("date")
	in.Time = r.PostFormValue("time")
	in.Mode = r.PostFormValue("mode")
	in.Audience = r.PostFormValue("audience")
	in.Organizer = r.PostFormValue("organizer")

	var err error
	if in.Agenda, err = helpers.FormList(r, "agenda"); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "agenda: "+err.Error())
		return false
	}
	if in.Tags, err = helpers.FormList(r, "tags"); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "tags: "+err.Error())
		return false
	}
	return true
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partial update. Omitted fields are unchanged. The slug is regenerated only when title is present.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Param event body domain.EventPatch true "Fields to change"
// @Success 200 {object} controllers.EventResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: duplicate_slug"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{id} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var patch domain.EventPatch
	if !helpers.DecodeJSON(w, r, &patch) {
		return
	}
	event, err := c.Events.UpdateEvent(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListEvents godoc
// @Summary List events
// @Description Every event, most recently created first.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventListResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Catalog.ListEvents(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get an event by slug
// @Description Returns the event and its booking count.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventDetailResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{slug} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := c.findBySlug(w, r)
	if !ok {
		return
	}
	count, err := c.Catalog.CountBookings(r.Context(), event.ID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventDetail{Event: event, Bookings: count})
}

// ListSimilarEvents godoc
// @Summary List similar events
// @Description Events sharing at least one tag with the given event. Empty for an unknown slug.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventListResponse
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{slug}/similar [get]
func (c *EventController) ListSimilarEvents(w http.ResponseWriter, r *http.Request) {
	slug, ok := slugParam(w, r)
	if !ok {
		return
	}
	events, err := c.Catalog.ListSimilarEvents(r.Context(), slug)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// ExportCalendar godoc
// @Summary Download an event as iCalendar
// @Tags events
// @Produce text/calendar
// @Param slug path string true "Event slug"
// @Success 200 {string} string "VCALENDAR document"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/events/{slug}/calendar.ics [get]
func (c *EventController) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	event, ok := c.findBySlug(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := calendar.Encode(&buf, event); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Content-Type", calendar.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+event.Slug+`.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (c *EventController) findBySlug(w http.ResponseWriter, r *http.Request) (*domain.Event, bool) {
	slug, ok := slugParam(w, r)
	if !ok {
		return nil, false
	}
	event, found, err := c.Catalog.FindEventBySlug(r.Context(), slug)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return nil, false
	}
	if !found {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return nil, false
	}
	return event, true
}

// slugParam canonicalizes the {slug} path value and rejects malformed slugs
// before any store access.
func slugParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	slug := strings.ToLower(strings.TrimSpace(r.PathValue("slug")))
	if !validation.IsValidSlug(slug) {
		ve := &domain.ValidationError{}
		ve.Add("slug", "slug may only contain lowercase letters, digits and hyphens", nil)
		helpers.WriteValidationError(w, ve)
		return "", false
	}
	return slug, true
}
