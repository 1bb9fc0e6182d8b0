package query

import (
	"strconv"
	"strings"
	"time"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// spec is the normalized, well-typed form of Params. Empty slices mean "no
// restriction"; nil pointers mean "bound not set".
type spec struct {
	search string // trimmed, lowercased

	regions    []string
	genders    []string
	categories []string
	tags       []string
	payments   []string

	ageMin *int
	ageMax *int

	dateStart *time.Time
	dateEnd   *time.Time
	// badDateBound is set when a date bound was supplied but does not parse.
	// An unparseable bound makes the date predicate reject every record.
	badDateBound bool

	key        sortKey
	descending bool

	page     int
	pageSize int
}

func normalize(p Params) spec {
	s := spec{
		search:     strings.ToLower(strings.TrimSpace(p.Search)),
		regions:    normalizeList(p.Regions),
		genders:    normalizeList(p.Genders),
		categories: normalizeList(p.ProductCategories),
		tags:       normalizeList(p.Tags),
		payments:   normalizeList(p.PaymentMethods),
		ageMin:     parseIntPtr(p.AgeMin),
		ageMax:     parseIntPtr(p.AgeMax),
		page:       parsePositive(p.Page, defaultPage),
		pageSize:   parsePositive(p.PageSize, defaultPageSize),
	}

	if s.ageMin != nil && s.ageMax != nil && *s.ageMin > *s.ageMax {
		s.ageMin, s.ageMax = s.ageMax, s.ageMin
	}

	s.normalizeDates(p.DateStart, p.DateEnd)

	s.key = parseSortKey(p.SortBy)
	s.descending = normalizeOrder(p.SortOrder, s.key)

	return s
}

// normalizeList flattens a raw list into trimmed, non-empty values. Each
// element may itself be comma-delimited, so both regions=["North","South"]
// and regions=["North, South"] come out the same.
func normalizeList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// parseIntPtr parses an optional integer. Absent or malformed input yields
// nil rather than an error.
func parseIntPtr(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// parsePositive parses a positive integer with a default, flooring at 1.
func parsePositive(raw string, def int) int {
	n := def
	if v := parseIntPtr(raw); v != nil {
		n = *v
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (s *spec) normalizeDates(start, end string) {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	if start != "" {
		t, _, ok := parseBound(start)
		if !ok {
			s.badDateBound = true
		} else {
			s.dateStart = &t
		}
	}

	if end != "" {
		t, dayOnly, ok := parseBound(end)
		if !ok {
			s.badDateBound = true
			return
		}
		// A calendar-day end bound covers the whole day, so a record at
		// 23:59 on the end date still matches.
		if dayOnly {
			t = t.AddDate(0, 0, 1).Add(-time.Millisecond)
		}
		s.dateEnd = &t
	}
}

// dateLayouts are tried in order; naive layouts are interpreted in local
// time, matching the source data's calendar-day treatment.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDate parses a record or bound timestamp, reporting whether it
// succeeded. The layout used is returned so bounds can tell calendar days
// from full timestamps.
func parseDate(raw string) (time.Time, string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, layout, true
		}
	}
	return time.Time{}, "", false
}

func parseBound(raw string) (t time.Time, dayOnly bool, ok bool) {
	t, layout, ok := parseDate(raw)
	return t, layout == "2006-01-02", ok
}
