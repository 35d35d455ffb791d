// Package cardtalk defines the core domain types shared across the service.
// It has zero external dependencies — everything here is pure Go.
package cardtalk

import "time"

// User is an account created through the simulated login flow.
type User struct {
	ID        string
	Name      string
	Provider  string
	IsPremium bool
	CreatedAt time.Time
}

// Category groups questions; display fields are passed through to the UI
// and never consulted by logic.
type Category struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Color       string
}

// Question is one prompt card. Immutable once seeded.
type Question struct {
	ID         string
	CategoryID string
	Text       string
}

// QuotaRecord is the persisted daily draw counter for one user.
// A record whose Day differs from the current day is stale and reads as zero.
type QuotaRecord struct {
	Day   string `json:"date"`
	Count int    `json:"count"`
}

// Preview is the resolved metadata summary of a remote URL.
type Preview struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	SiteName    string `json:"siteName,omitempty"`
	SourceURL   string `json:"sourceUrl"`
}
