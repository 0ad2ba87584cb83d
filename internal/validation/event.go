package validation

import (
	"strings"

	"devevents/internal/domain"
)

// PrepareEvent runs the create pipeline on raw input: validate every field, derive
// the slug from the title, then canonicalize date and time. All field failures are
// reported together as a *domain.ValidationError.
func PrepareEvent(in domain.EventInput) (*domain.Event, error) {
	ve := &domain.ValidationError{}
	ev := &domain.Event{}

	scalars := []struct {
		field string
		value string
		dest  *string
	}{
		{"title", in.Title, &ev.Title},
		{"description", in.Description, &ev.Description},
		{"overview", in.Overview, &ev.Overview},
		{"image", in.Image, &ev.Image},
		{"venue", in.Venue, &ev.Venue},
		{"location", in.Location, &ev.Location},
		{"date", in.Date, &ev.Date},
		{"time", in.Time, &ev.Time},
		{"mode", in.Mode, &ev.Mode},
		{"audience", in.Audience, &ev.Audience},
		{"organizer", in.Organizer, &ev.Organizer},
	}
	for _, s := range scalars {
		if v, ok := requireString(ve, s.field, s.value); ok {
			*s.dest = v
		}
	}
	if v, ok := requireStrings(ve, "agenda", in.Agenda); ok {
		ev.Agenda = v
	}
	if v, ok := requireStrings(ve, "tags", in.Tags); ok {
		ev.Tags = v
	}

	if ev.Title != "" {
		if slug, ok := deriveSlug(ve, ev.Title); ok {
			ev.Slug = slug
		}
	}
	if ev.Date != "" {
		if d, ok := normalizeDate(ve, ev.Date); ok {
			ev.Date = d
		}
	}
	if ev.Time != "" {
		if t, ok := normalizeTime(ve, ev.Time); ok {
			ev.Time = t
		}
	}

	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return ev, nil
}

// PrepareEventPatch applies the create rules to the fields present in p. The slug
// is derived only when the title is part of the patch, so other edits keep
// existing URLs stable.
func PrepareEventPatch(p domain.EventPatch) (domain.EventPatch, error) {
	ve := &domain.ValidationError{}
	out := domain.EventPatch{}

	scalars := []struct {
		field string
		src   *string
		dest  **string
	}{
		{"title", p.Title, &out.Title},
		{"description", p.Description, &out.Description},
		{"overview", p.Overview, &out.Overview},
		{"image", p.Image, &out.Image},
		{"venue", p.Venue, &out.Venue},
		{"location", p.Location, &out.Location},
		{"date", p.Date, &out.Date},
		{"time", p.Time, &out.Time},
		{"mode", p.Mode, &out.Mode},
		{"audience", p.Audience, &out.Audience},
		{"organizer", p.Organizer, &out.Organizer},
	}
	for _, s := range scalars {
		if s.src == nil {
			continue
		}
		if v, ok := requireString(ve, s.field, *s.src); ok {
			*s.dest = &v
		}
	}
	if p.Agenda != nil {
		if v, ok := requireStrings(ve, "agenda", *p.Agenda); ok {
			out.Agenda = &v
		}
	}
	if p.Tags != nil {
		if v, ok := requireStrings(ve, "tags", *p.Tags); ok {
			out.Tags = &v
		}
	}

	if out.Title != nil {
		if slug, ok := deriveSlug(ve, *out.Title); ok {
			out.Slug = &slug
		}
	}
	if out.Date != nil {
		if d, ok := normalizeDate(ve, *out.Date); ok {
			out.Date = &d
		}
	}
	if out.Time != nil {
		if t, ok := normalizeTime(ve, *out.Time); ok {
			out.Time = &t
		}
	}

	if err := ve.OrNil(); err != nil {
		return domain.EventPatch{}, err
	}
	return out, nil
}

func requireString(ve *domain.ValidationError, field, v string) (string, bool) {
	if !IsNonEmptyString(v) {
		ve.Add(field, field+" is required", nil)
		return "", false
	}
	if !IsStorableText(v) {
		ve.Add(field, field+" must be valid UTF-8 text without NUL bytes", nil)
		return "", false
	}
	return strings.TrimSpace(v), true
}

func requireStrings(ve *domain.ValidationError, field string, vs []string) ([]string, bool) {
	if !IsNonEmptyStringArray(vs) {
		ve.Add(field, field+" must be a non-empty array of non-empty strings", nil)
		return nil, false
	}
	for _, s := range vs {
		if !IsStorableText(s) {
			ve.Add(field, field+" must be valid UTF-8 text without NUL bytes", nil)
			return nil, false
		}
	}
	return trimAll(vs), true
}

func deriveSlug(ve *domain.ValidationError, title string) (string, bool) {
	slug, err := Slugify(title)
	if err != nil {
		ve.Add("title", "title must contain at least one letter or digit", err)
		return "", false
	}
	return slug, true
}

func normalizeDate(ve *domain.ValidationError, v string) (string, bool) {
	d, err := NormalizeDateToISO(v)
	if err != nil {
		ve.Add("date", "date must be a valid calendar date", err)
		return "", false
	}
	return d, true
}

func normalizeTime(ve *domain.ValidationError, v string) (string, bool) {
	t, err := NormalizeTimeToHHmm(v)
	if err != nil {
		ve.Add("time", "time must look like H, HH, H:mm or HH:mm with an optional am/pm", err)
		return "", false
	}
	return t, true
}
