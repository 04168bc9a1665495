package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/climate-action-backend/pkg/mailer"
	mailtpl "github.com/oksasatya/climate-action-backend/pkg/mailer/templates"
)

// EnsureRecipient copies the job recipient into template data when the producer left it out.
func EnsureRecipient(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
}

// NormalizeTemplate lower-cases the template name and reports whether a template is known.
func NormalizeTemplate(job *mailer.EmailJob) bool {
	job.Template = strings.ToLower(strings.TrimSpace(job.Template))
	switch job.Template {
	case mailtpl.Welcome, mailtpl.StoryPublished:
		return true
	}
	return false
}
