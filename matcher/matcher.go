// Package matcher decides which extracted slots satisfy the user's target.
package matcher

import (
	"strings"

	"slot-sniper/model"
)

// Matches reports whether slot satisfies target: same date, target location
// contained in the slot location (case-insensitive, empty matches all) and
// equal normalized start and end times.
func Matches(slot model.Slot, target model.SlotTarget) bool {
	dateOk := slot.Date == target.Date

	locationOk := target.Location == "" ||
		strings.Contains(strings.ToLower(slot.Location), strings.ToLower(target.Location))

	timeOk := Normalize(slot.TimeStart) == Normalize(target.TimeStart) &&
		Normalize(slot.TimeEnd) == Normalize(target.TimeEnd)

	return dateOk && locationOk && timeOk
}

// Filter returns the slots matching target, in input order.
func Filter(slots []model.Slot, target model.SlotTarget) []model.Slot {
	matching := make([]model.Slot, 0, len(slots))
	for _, s := range slots {
		if Matches(s, target) {
			matching = append(matching, s)
		}
	}
	return matching
}
