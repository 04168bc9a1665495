package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/climate-action-backend/pkg/helpers"
	"github.com/oksasatya/climate-action-backend/pkg/mailer"
	mailtpl "github.com/oksasatya/climate-action-backend/pkg/mailer/templates"
)

type sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

type outcome int

const (
	outcomeAck outcome = iota
	outcomeRetry
	outcomeDrop
)

type worker struct {
	sender  sender
	logger  *logrus.Logger
	timeout time.Duration
}

// handle renders and sends one job. Malformed jobs are dropped; send failures are retried.
func (w *worker) handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		helpers.LogError(w.logger, "bad message", err, nil)
		return outcomeDrop
	}
	if job.To == "" {
		helpers.LogError(w.logger, "job without recipient", nil, logrus.Fields{"template": job.Template})
		return outcomeDrop
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		if !helpers.NormalizeTemplate(&job) {
			helpers.LogError(w.logger, "unknown template", nil, logrus.Fields{"template": job.Template})
			return outcomeDrop
		}
		helpers.EnsureRecipient(&job)
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			helpers.LogError(w.logger, "render failed", err, logrus.Fields{"template": job.Template})
			return outcomeDrop
		}
		subject, text, html = s, t, h
	}

	c, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	if err := w.sender.Send(c, job.To, subject, text, html); err != nil {
		helpers.LogError(w.logger, "send failed", err, logrus.Fields{"to": job.To})
		return outcomeRetry
	}
	helpers.LogInfo(w.logger, "email sent", logrus.Fields{"to": job.To, "template": job.Template})
	return outcomeAck
}
