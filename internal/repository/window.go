package repository

import "time"

// WindowSince converts an optional trailing window of whole days into
// an inclusive lower timestamp bound. nil means all time. Zero days
// means "from the current instant", which is a distinct, near-empty
// window rather than unbounded history.
func WindowSince(days *int) *time.Time {
	if days == nil {
		return nil
	}
	t := time.Now().UTC().AddDate(0, 0, -*days)
	return &t
}
