package agenda

import (
	"fmt"
	"sort"
)

// ComputeReorder translates the visible rows' new on-screen sequence into a
// globally consistent order assignment. The existing order values of exactly
// those rows form the slot pool; sorted ascending, slot i goes to the id now
// at position i. Untouched events keep their relative ranking because no new
// order value is ever invented.
//
// An id absent from the cache, or one without an order slot, rejects the
// whole operation; silently defaulting its slot would make the resulting
// sort unstable.
func ComputeReorder(events []Event, visibleIDs []string) ([]OrderUpdate, error) {
	if len(visibleIDs) == 0 {
		return nil, nil
	}

	byID := make(map[string]Event, len(events))
	for _, event := range events {
		byID[event.ID] = event
	}

	slots := make([]int, 0, len(visibleIDs))
	for _, id := range visibleIDs {
		event, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEventID, id)
		}
		if event.Order == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnorderedEvent, id)
		}
		slots = append(slots, *event.Order)
	}
	sort.Ints(slots)

	updates := make([]OrderUpdate, 0, len(visibleIDs))
	for i, id := range visibleIDs {
		updates = append(updates, OrderUpdate{ID: id, Order: slots[i]})
	}
	return updates, nil
}
