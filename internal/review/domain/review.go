package domain

import "time"

// Review represents a single visitor submission for a month's meal.
type Review struct {
	ID         string
	MonthID    MonthID
	Nickname   Nickname
	Rating     Rating
	Specifics  Specifics
	Love       string
	Improve    string
	Images     ImageURLList
	IsFeatured bool
	CreatedAt  time.Time
}
