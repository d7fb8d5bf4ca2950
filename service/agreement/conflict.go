package agreement

import (
	"time"

	arepo "carrental/repository/agreement"
)

// rangesOverlap reports whether two inclusive date ranges are not disjoint.
func rangesOverlap(s1, e1, s2, e2 time.Time) bool {
	return !(e1.Before(s2) || s1.After(e2))
}

// hasConflict checks a proposed range against the vehicle's ACTIVE periods.
// Only ACTIVE agreements occupy a vehicle; pending and approved requests are
// allowed to overlap so several quotes can be under review at once.
// exclude skips the agreement being re-validated (used at activation).
func hasConflict(active []arepo.Period, start, end time.Time, exclude int64) bool {
	for _, p := range active {
		if p.ID == exclude {
			continue
		}
		if rangesOverlap(start, end, p.Start, p.End) {
			return true
		}
	}
	return false
}
