package domain

import "time"

// BlockedDate represents a calendar day on which no bookings may be scheduled.
// A day is either fully blocked or not - there is no partial-day blocking.
type BlockedDate struct {
	ID        int64
	Date      time.Time // нормализована к полуночи
	Reason    *string
	CreatedAt time.Time
}
