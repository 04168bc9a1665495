package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/climate-action-backend/config"
	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
	"github.com/oksasatya/climate-action-backend/pkg/mailer"
	mailtpl "github.com/oksasatya/climate-action-backend/pkg/mailer/templates"
)

// JobPublisher puts a JSON job on the email queue.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Notifier turns domain events into email jobs. A nil Notifier or one without a
// publisher drops every event.
type Notifier struct {
	Pub    JobPublisher
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewNotifier(pub JobPublisher, cfg *config.Config, logger *logrus.Logger) *Notifier {
	return &Notifier{Pub: pub, Cfg: cfg, Logger: logger}
}

func (n *Notifier) Welcome(ctx context.Context, u *entity.User) {
	n.publish(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(n.cfg(), u.FullName, u.Email, mailtpl.WithTime(time.Now())),
	})
}

func (n *Notifier) StoryPublished(ctx context.Context, p *entity.Post) {
	n.publish(ctx, mailer.EmailJob{
		To:       p.Author.Username,
		Template: mailtpl.StoryPublished,
		Data: mailtpl.NewStoryPublishedData(n.cfg(), p.Author.Username, p.ID, p.Title, string(p.Category),
			mailtpl.WithTime(p.CreatedAt)),
	})
}

func (n *Notifier) cfg() *config.Config {
	if n == nil {
		return nil
	}
	return n.Cfg
}

// publish never fails the caller; a lost email is logged and dropped.
func (n *Notifier) publish(ctx context.Context, job mailer.EmailJob) {
	if n == nil || n.Pub == nil || job.To == "" {
		return
	}
	if err := n.Pub.PublishJSON(ctx, job); err != nil && n.Logger != nil {
		n.Logger.WithError(err).WithFields(logrus.Fields{"template": job.Template, "to": job.To}).Warn("publish email job failed")
	}
}
