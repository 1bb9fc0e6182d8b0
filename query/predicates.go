package query

import (
	"strings"

	"salesbrowser/models"
)

// matches reports whether a record passes every active predicate. Filter
// categories combine with AND; only the free-text search is an OR (name or
// phone).
func (s *spec) matches(r *models.SalesRecord) bool {
	if !s.matchesSearch(r) {
		return false
	}
	if !inMultiSelect(r.CustomerRegion, s.regions) {
		return false
	}
	if !inMultiSelect(r.Gender, s.genders) {
		return false
	}
	if !inAgeRange(r.Age, s.ageMin, s.ageMax) {
		return false
	}
	if !inMultiSelect(r.ProductCategory, s.categories) {
		return false
	}
	if !tagsMatch(r, s.tags) {
		return false
	}
	if !inMultiSelect(r.PaymentMethod, s.payments) {
		return false
	}
	return s.inDateRange(r)
}

func (s *spec) matchesSearch(r *models.SalesRecord) bool {
	if s.search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.CustomerName), s.search) ||
		strings.Contains(strings.ToLower(r.PhoneNumber), s.search)
}

// inMultiSelect is IN-membership: an empty accepted set means no
// restriction, and a record whose field is blank fails any active filter —
// a restrictive filter never accepts a record it cannot classify.
func inMultiSelect(value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	if value == "" {
		return false
	}
	for _, s := range selected {
		if s == value {
			return true
		}
	}
	return false
}

// tagsMatch is AND-containment, not membership: every selected tag must be
// present on the record.
func tagsMatch(r *models.SalesRecord, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	if len(r.Tags) == 0 {
		return false
	}
	for _, tag := range selected {
		if !r.HasTag(tag) {
			return false
		}
	}
	return true
}

// inAgeRange checks inclusive bounds. A record without a usable age fails
// any active bound.
func inAgeRange(age, min, max *int) bool {
	if min == nil && max == nil {
		return true
	}
	if age == nil {
		return false
	}
	if min != nil && *age < *min {
		return false
	}
	if max != nil && *age > *max {
		return false
	}
	return true
}

func (s *spec) inDateRange(r *models.SalesRecord) bool {
	if s.dateStart == nil && s.dateEnd == nil && !s.badDateBound {
		return true
	}
	if s.badDateBound {
		return false
	}
	t, _, ok := parseDate(r.Date)
	if !ok {
		return false
	}
	if s.dateStart != nil && t.Before(*s.dateStart) {
		return false
	}
	if s.dateEnd != nil && t.After(*s.dateEnd) {
		return false
	}
	return true
}
