package model

import (
	"fmt"
	"time"
)

// Bookmark is a saved recipe plus the moment it was saved
type Bookmark struct {
	Recipe  Recipe    `json:"recipe"`
	SavedAt time.Time `json:"saved_at"`
}

// SavedLabel renders the save time relative to now ("2 days ago")
func (b Bookmark) SavedLabel(now time.Time) string {
	return RelativeTime(b.SavedAt, now)
}

// RelativeTime formats the distance between then and now in the coarse units
// the bookmark list displays
func RelativeTime(then, now time.Time) string {
	d := now.Sub(then)
	if d < time.Minute {
		return "just now"
	}

	const (
		day   = 24 * time.Hour
		week  = 7 * day
		month = 30 * day
		year  = 365 * day
	)

	units := []struct {
		size time.Duration
		name string
	}{
		{year, "year"},
		{month, "month"},
		{week, "week"},
		{day, "day"},
		{time.Hour, "hour"},
		{time.Minute, "minute"},
	}
	for _, u := range units {
		if d >= u.size {
			n := int(d / u.size)
			if n == 1 {
				return fmt.Sprintf("1 %s ago", u.name)
			}
			return fmt.Sprintf("%d %ss ago", n, u.name)
		}
	}
	return "just now"
}

// SearchResult is a recipe-like record produced by a search backend
type SearchResult struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	ImageURL    string     `json:"image_url"`
	CookTime    string     `json:"cook_time"`
	Difficulty  Difficulty `json:"difficulty"`
	Rating      float64    `json:"rating,omitempty"`
	Ingredients []string   `json:"ingredients,omitempty"`
	Category    string     `json:"category,omitempty"`
}

// SearchStatus is the lifecycle state of the current search
type SearchStatus string

const (
	SearchIdle      SearchStatus = "idle"
	SearchPending   SearchStatus = "searching"
	SearchResults   SearchStatus = "results"
	SearchNoResults SearchStatus = "no_results"
)
