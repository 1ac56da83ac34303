package entity

import "time"

// NewsItem is a bilingual (English/Vietnamese) news entry.
// Only published items are visible to the public.
type NewsItem struct {
	ID          string
	TitleEn     string
	TitleVi     string
	CoverURL    *string
	Location    *string
	BodyEn      *string
	BodyVi      *string
	EventDate   *time.Time
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
