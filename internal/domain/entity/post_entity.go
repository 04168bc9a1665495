package entity

import (
	"strings"
	"time"
)

type PostCategory string

const (
	PostCommunityAction PostCategory = "Community action"
	PostEducation       PostCategory = "Education"
	PostClimatePolicy   PostCategory = "Climate Policy"
)

const (
	PostTitleMaxLen = 100
	PostTextMaxLen  = 2500
)

var postCategories = []PostCategory{PostCommunityAction, PostEducation, PostClimatePolicy}

// ParsePostCategory matches the category exactly after trimming.
func ParsePostCategory(s string) (PostCategory, bool) {
	c := PostCategory(strings.TrimSpace(s))
	for _, known := range postCategories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Author is a snapshot of the creating user. Username is the author's email at creation time
// and is not re-synced afterwards.
type Author struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type Post struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Category  PostCategory `json:"category"`
	Author    Author       `json:"author"`
	CoverURL  string       `json:"coverUrl,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (p *Post) IsAuthoredBy(userID string) bool {
	return p.Author.UserID != "" && p.Author.UserID == userID
}
