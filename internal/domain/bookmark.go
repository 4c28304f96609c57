package domain

// Bookmark is a stored bookmark record.
// The storage layer owns it; the service never keeps copies between requests.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is assigned by storage on creation and never reused.
	ID int64 `json:"id"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Title is required and never empty.
	Title string `json:"title"`

	// URL is required. Its format is not checked beyond presence.
	// Example: https://go.dev/doc/effective_go
	URL string `json:"url"`

	// Description is optional. Nil means the client never sent one.
	Description *string `json:"description"`

	// Rating is always within [MinRating, MaxRating].
	Rating int `json:"rating"`
}

// NewBookmark is a validated creation request, ready to be inserted.
type NewBookmark struct {
	Title       string  `json:"title" validate:"required"`
	URL         string  `json:"url" validate:"required"`
	Description *string `json:"description"`
	Rating      int     `json:"rating" validate:"gte=1,lte=5"`
}

const (
	MinRating = 1
	MaxRating = 5
)

// Location returns the canonical path of a stored bookmark.
func (b Bookmark) Location() string {
	return "/bookmarks/" + formatID(b.ID)
}
