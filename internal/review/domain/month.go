package domain

import "time"

// Month aggregates everything shown for a single monthly event.
type Month struct {
	ID          MonthID
	Name        string
	Status      MonthStatus
	Description string
	Images      ImageURLList
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FeaturedImage returns the first image, which the display treats as the
// headline shot. Empty string when the month has no photos yet.
func (m Month) FeaturedImage() string {
	if len(m.Images) == 0 {
		return ""
	}
	return m.Images[0].String()
}

// IsActive reports whether the month currently accepts submissions.
func (m Month) IsActive() bool {
	return m.Status == MonthStatusActive
}
