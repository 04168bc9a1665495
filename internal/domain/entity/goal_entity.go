package entity

import (
	"strings"
	"time"
)

type GoalCategory string

const (
	GoalPersonal  GoalCategory = "personal"
	GoalHome      GoalCategory = "home"
	GoalCommunity GoalCategory = "community"
)

var goalCategories = []GoalCategory{GoalPersonal, GoalHome, GoalCommunity}

// ParseGoalCategory accepts any casing and surrounding whitespace.
func ParseGoalCategory(s string) (GoalCategory, bool) {
	c := GoalCategory(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range goalCategories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Goal is a climate action owned by exactly one user.
type Goal struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user"`
	Goal      string       `json:"goal"`
	Category  GoalCategory `json:"category"`
	Completed bool         `json:"completed"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// StatusMessage describes the completed flag after a toggle.
func (g *Goal) StatusMessage() string {
	if g.Completed {
		return "Goal marked as completed."
	}
	return "Goal marked as incomplete."
}
