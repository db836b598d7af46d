package common

const (
	// MaxReviewRequestBody limits JSON request bodies for review/month endpoints.
	MaxReviewRequestBody = 1 << 20
	// MaxImageUploadBytes limits a single multipart photo upload.
	MaxImageUploadBytes = 10 << 20
	// MaxFreeTextRunes limits the free-text review fields.
	MaxFreeTextRunes = 2000
	// MaxMonthDescriptionRunes limits the month description length.
	MaxMonthDescriptionRunes = 4000
)
