package domain

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultNickname is shown for reviews submitted without a name.
	DefaultNickname = "Guest"
	// MaxReviewImages limits how many photos a single review may carry.
	MaxReviewImages = 3
)

// MonthStatus represents the lifecycle phase of a monthly event.
type MonthStatus string

const (
	MonthStatusUpcoming MonthStatus = "upcoming"
	MonthStatusActive   MonthStatus = "active"
	MonthStatusClosed   MonthStatus = "closed"
)

func NewMonthStatus(value string) (MonthStatus, error) {
	trimmed := strings.TrimSpace(value)
	switch MonthStatus(trimmed) {
	case MonthStatusUpcoming, MonthStatusActive, MonthStatusClosed:
		return MonthStatus(trimmed), nil
	}
	return "", fmt.Errorf("invalid month status: %s", trimmed)
}

func (s MonthStatus) String() string {
	return string(s)
}

// MonthID is a stable slug derived from the display name.
type MonthID string

// NewMonthID lowercases the name and folds whitespace runs into hyphens.
// Collisions are left to the caller; the slug itself is deterministic.
func NewMonthID(name string) (MonthID, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("month name is required")
	}
	slug := strings.ToLower(trimmed)
	slug = strings.Join(strings.Fields(slug), "-")
	return MonthID(slug), nil
}

func (id MonthID) String() string {
	return string(id)
}

// Rating is the overall score of a review, 1 to 5.
type Rating int

func NewRating(value int) (Rating, error) {
	if value < 1 || value > 5 {
		return 0, fmt.Errorf("rating must be between 1 and 5")
	}
	return Rating(value), nil
}

func (r Rating) Int() int {
	return int(r)
}

// SubRating is one of the specifics scores, 0 to 5. Zero means unrated.
type SubRating int

func NewSubRating(value int) (SubRating, error) {
	if value < 0 || value > 5 {
		return 0, fmt.Errorf("sub rating must be between 0 and 5")
	}
	return SubRating(value), nil
}

func (r SubRating) Int() int {
	return int(r)
}

// Specifics bundles the three named sub-ratings collected with every review.
type Specifics struct {
	Taste        SubRating
	Portion      SubRating
	Presentation SubRating
}

func NewSpecifics(taste, portion, presentation int) (Specifics, error) {
	t, err := NewSubRating(taste)
	if err != nil {
		return Specifics{}, fmt.Errorf("taste: %w", err)
	}
	p, err := NewSubRating(portion)
	if err != nil {
		return Specifics{}, fmt.Errorf("portion: %w", err)
	}
	pr, err := NewSubRating(presentation)
	if err != nil {
		return Specifics{}, fmt.Errorf("presentation: %w", err)
	}
	return Specifics{Taste: t, Portion: p, Presentation: pr}, nil
}

// Nickname is the reviewer display name, defaulting when absent.
type Nickname string

func NewNickname(value string) Nickname {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Nickname(DefaultNickname)
	}
	return Nickname(trimmed)
}

func (n Nickname) String() string {
	return string(n)
}

// ImageURL points at a stored photo. Data URLs from the legacy local client
// are accepted alongside https URLs.
type ImageURL string

func NewImageURL(value string) (ImageURL, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("image URL is required")
	}
	if strings.HasPrefix(trimmed, "data:") {
		return ImageURL(trimmed), nil
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return "", fmt.Errorf("invalid image URL: %w", err)
	}
	return ImageURL(trimmed), nil
}

func (u ImageURL) String() string {
	return string(u)
}

// ImageURLList keeps image order; the first element is the featured shot.
type ImageURLList []ImageURL

func NewImageURLList(values []string, limit int) (ImageURLList, error) {
	if len(values) == 0 {
		return nil, nil
	}
	if limit > 0 && len(values) > limit {
		return nil, fmt.Errorf("image URLs must be <= %d", limit)
	}
	result := make([]ImageURL, 0, len(values))
	for _, raw := range values {
		urlValue, err := NewImageURL(raw)
		if err != nil {
			return nil, err
		}
		result = append(result, urlValue)
	}
	return ImageURLList(result), nil
}

func (l ImageURLList) Strings() []string {
	result := make([]string, 0, len(l))
	for _, v := range l {
		result = append(result, string(v))
	}
	return result
}
