package domain

import (
	"net/url"
	"strings"
)

// Link is a user's saved title/URL pair. The server assigns ID.
type Link struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	UserID int64  `json:"-"` // Owner, only known server side
}

// LinkDraft is the add-link form before submission.
type LinkDraft struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Validate mirrors the add form's required fields and url input type.
func (d LinkDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.URL) == "" {
		return NewValidationError("Missing title or url")
	}
	u, err := url.Parse(d.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return NewValidationError("Please enter a valid http(s) URL")
	}
	return nil
}
