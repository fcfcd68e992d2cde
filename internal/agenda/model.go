// Package agenda implements the client side of the scheduling app: the
// cached event and leader stores, the drag-and-drop reorder engine and the
// view derivation, all synchronized with a pluggable persistence backend.
package agenda

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnknownEventID indicates a reorder permutation referencing an id
	// that is not present in the cache.
	ErrUnknownEventID = errors.New("agenda: unknown event id in reorder")
	// ErrUnorderedEvent indicates a cached event without an order slot,
	// which only happens when the cache was never normalized.
	ErrUnorderedEvent = errors.New("agenda: event has no order slot")
)

// Event is the client-side record of a scheduled item. Order is a pointer
// because records loaded from legacy storage may lack one until the cache is
// normalized.
type Event struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Location  string   `json:"location"`
	Priority  string   `json:"priority"`
	Attendees []string `json:"attendees"`
	Order     *int     `json:"order,omitempty"`
}

// Leader is the client-side record of a contact.
type Leader struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Ministries []string `json:"ministries"`
	OptIn      bool     `json:"optIn"`
}

// OrderUpdate is one entry of a reorder batch sent to the backend.
type OrderUpdate struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// Normalize re-derives order slots when any event lacks one: the whole
// collection is sorted by (date, time) ascending and assigned 1..n. When
// every event already carries an order, the input is returned untouched
// (as a copy); existing values are trusted.
func Normalize(list []Event) []Event {
	normalized := append([]Event(nil), list...)

	hasOrder := true
	for _, event := range normalized {
		if event.Order == nil {
			hasOrder = false
			break
		}
	}
	if hasOrder {
		return normalized
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		if normalized[i].Date == normalized[j].Date {
			return normalized[i].Time < normalized[j].Time
		}
		return normalized[i].Date < normalized[j].Date
	})
	for i := range normalized {
		slot := i + 1
		normalized[i].Order = &slot
	}
	return normalized
}

// SortByOrder sorts events by order ascending, breaking ties by (date, time)
// ascending. Events without an order sink to the end.
func SortByOrder(list []Event) {
	sort.SliceStable(list, func(i, j int) bool {
		left, right := list[i], list[j]
		if left.Order == nil || right.Order == nil {
			return right.Order == nil && left.Order != nil
		}
		if *left.Order != *right.Order {
			return *left.Order < *right.Order
		}
		if left.Date != right.Date {
			return left.Date < right.Date
		}
		return left.Time < right.Time
	})
}

// AttendeeInitials turns free-text attendee input into the short labels the
// legacy variant displays: comma-separated names trimmed, truncated to two
// characters, upper-cased.
func AttendeeInitials(raw string) []string {
	parts := strings.Split(raw, ",")
	initials := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		runes := []rune(trimmed)
		if len(runes) > 2 {
			runes = runes[:2]
		}
		initials = append(initials, strings.ToUpper(string(runes)))
	}
	return initials
}
