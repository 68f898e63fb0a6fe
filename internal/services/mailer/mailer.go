// Package mailer delivers HTML mail over SMTP and fans a message out to many
// recipients, collecting per-address failures instead of stopping.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"
	"golang.org/x/sync/errgroup"

	"psycenter/internal/config"
	"psycenter/internal/domain/models"
	"psycenter/internal/lib/apperr"
	"psycenter/internal/lib/logger/sl"
	"psycenter/internal/metrics"
)

var (
	ErrNoRecipients  = apperr.NotFound("No subscribers found")
	ErrNotConfigured = errors.New("smtp transport is not configured")
)

type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// SMTPSender opens one connection per message so it can be shared by
// concurrent workers.
type SMTPSender struct {
	host      string
	opts      []mail.Option
	fromName  string
	fromEmail string
}

// NewSMTPSender returns ErrNotConfigured when host or credentials are missing.
func NewSMTPSender(cfg config.MailConfig) (*SMTPSender, error) {
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, ErrNotConfigured
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithSSL(),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}

	return &SMTPSender{
		host:      cfg.Host,
		opts:      opts,
		fromName:  cfg.FromName,
		fromEmail: cfg.FromEmail,
	}, nil
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, html string) error {
	const op = "mailer.SMTPSender.Send"

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("%s: from: %w", op, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("%s: to: %w", op, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)

	client, err := mail.NewClient(s.host, s.opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// disabledSender stands in when SMTP is not configured; every send fails.
type disabledSender struct{}

func (disabledSender) Send(context.Context, string, string, string) error {
	return ErrNotConfigured
}

type Notifier struct {
	log     *slog.Logger
	sender  Sender
	workers int
}

func NewNotifier(log *slog.Logger, sender Sender, workers int) *Notifier {
	if sender == nil {
		sender = disabledSender{}
	}
	if workers < 1 {
		workers = 1
	}
	return &Notifier{log: log, sender: sender, workers: workers}
}

// New builds a notifier from config. A missing SMTP setup is not fatal: the
// notifier still runs and reports every address as failed.
func New(log *slog.Logger, cfg config.MailConfig) *Notifier {
	sender, err := NewSMTPSender(cfg)
	if err != nil {
		log.Warn("outbound mail disabled", sl.Err(err))
		return NewNotifier(log, nil, cfg.Workers)
	}

	return NewNotifier(log, sender, cfg.Workers)
}

// SendBulk sends the message to each recipient independently. Failed
// addresses are reported in input order.
func (n *Notifier) SendBulk(ctx context.Context, recipients []string, subject, html string) (models.BroadcastReport, error) {
	const op = "mailer.Notifier.SendBulk"
	log := n.log.With(
		slog.String("op", op),
		slog.Int("recipients", len(recipients)),
	)

	if len(recipients) == 0 {
		return models.BroadcastReport{}, fmt.Errorf("%s: %w", op, ErrNoRecipients)
	}

	start := time.Now()
	failed := make([]bool, len(recipients))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.workers)

	for i, to := range recipients {
		i, to := i, to
		g.Go(func() error {
			if err := n.sender.Send(gctx, to, subject, html); err != nil {
				failed[i] = true
				log.Warn("failed to send newsletter", slog.String("email", to), sl.Err(err))
			}
			// a single bad address must not cancel the rest
			return nil
		})
	}
	_ = g.Wait()

	report := models.BroadcastReport{
		Total:        len(recipients),
		FailedEmails: make([]string, 0),
	}
	for i, to := range recipients {
		if failed[i] {
			report.FailedEmails = append(report.FailedEmails, to)
		}
	}
	report.Failed = len(report.FailedEmails)
	report.Sent = report.Total - report.Failed

	metrics.NewsletterMessages.WithLabelValues("sent").Add(float64(report.Sent))
	metrics.NewsletterMessages.WithLabelValues("failed").Add(float64(report.Failed))

	log.Info("newsletter broadcast finished",
		slog.Int("sent", report.Sent),
		slog.Int("failed", report.Failed),
		slog.Duration("took", time.Since(start)),
	)

	return report, nil
}
