package models

import (
	"strconv"
	"time"
)

// Listing is the unified content unit spanning classifieds and news.
// Items are regenerated wholesale on every cache refresh; they are never
// created or updated individually.
type Listing struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	Topic      string    `json:"topic"`
	City       string    `json:"city,omitempty"`
	Date       time.Time `json:"date"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Link       string    `json:"link,omitempty"`
	IsExternal bool      `json:"isExternal,omitempty"`
}

// Ad is a banner or classifieds-page image. TargetURL is empty when the
// filename does not encode a click-through.
type Ad struct {
	ID          string `json:"id"`
	ImageURL    string `json:"imageUrl"`
	TargetURL   string `json:"targetUrl,omitempty"`
	Description string `json:"description"`
	Position    string `json:"position"`
}

// Ad placement slots. PositionBottom is recognised but currently unused by
// the frontend.
const (
	PositionTop    = "top"
	PositionMiddle = "middle"
	PositionSide   = "side"
	PositionBottom = "bottom"
)

// Professional is one record from the numbered professionals document.
// Profession may hold several comma-separated specialties.
type Professional struct {
	ID         string `json:"id"`
	Number     string `json:"number"`
	Name       string `json:"name"`
	City       string `json:"city,omitempty"`
	Profession string `json:"profession,omitempty"`
	Phone      string `json:"phone,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
}

// Submission is a user-authored pending listing. Approval deletes the
// record rather than transitioning it, so pending is the only persisted
// status.
type Submission struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Contact   string    `json:"contact"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

const StatusPending = "pending"

// NewSubmission builds a pending submission with a timestamp-derived id.
func NewSubmission(category, title, content, contact string, now time.Time) Submission {
	return Submission{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Category:  category,
		Title:     title,
		Content:   content,
		Contact:   contact,
		Status:    StatusPending,
		CreatedAt: now,
	}
}
