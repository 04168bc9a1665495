package templates

import (
	"strings"
	"time"

	"github.com/oksasatya/climate-action-backend/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04") }
}

func WithStory(id, title, category string) Option {
	return func(d *EmailData) {
		d.StoryTitle = title
		d.StoryCategory = category
		if base := strings.TrimRight(d.FrontendURL, "/"); base != "" && id != "" {
			d.StoryURL = base + "/ClimateBlog/" + id
		}
	}
}

// NewBaseEmailData fills the common fields from config, then applies options
func NewBaseEmailData(cfg *config.Config, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:  name,
		Email: email,
		Type:  typ,
	}
	if cfg != nil {
		d.AppName = cfg.AppName
		d.FrontendURL = cfg.FrontendURL
		d.SupportURL = cfg.SupportURL
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, Welcome, name, email, opts...))
}

func NewStoryPublishedData(cfg *config.Config, email, storyID, title, category string, opts ...Option) map[string]any {
	opts = append(opts, WithStory(storyID, title, category))
	return ToMap(NewBaseEmailData(cfg, StoryPublished, "", email, opts...))
}
