package mailer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psycenter/internal/config"
	"psycenter/internal/lib/apperr"
)

type fakeSender struct {
	mu       sync.Mutex
	fail     map[string]bool
	sent     []string
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeSender) Send(_ context.Context, to, _, _ string) error {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		prev := f.maxSeen.Load()
		if cur <= prev || f.maxSeen.CompareAndSwap(prev, cur) {
			break
		}
	}
	time.Sleep(time.Millisecond)

	if f.fail[to] {
		return errors.New("550 mailbox unavailable")
	}

	f.mu.Lock()
	f.sent = append(f.sent, to)
	f.mu.Unlock()
	return nil
}

func TestNotifier_SendBulk_PartialFailure(t *testing.T) {
	sender := &fakeSender{fail: map[string]bool{"b@example.com": true, "d@example.com": true}}
	n := NewNotifier(slog.Default(), sender, 3)

	recipients := []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com", "e@example.com"}
	report, err := n.SendBulk(context.Background(), recipients, "Новости", "<p>Привет</p>")
	require.NoError(t, err)

	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 3, report.Sent)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, []string{"b@example.com", "d@example.com"}, report.FailedEmails)
	assert.Len(t, sender.sent, 3)
	assert.LessOrEqual(t, sender.maxSeen.Load(), int32(3))
}

func TestNotifier_SendBulk_SequentialByDefault(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(slog.Default(), sender, 0)

	report, err := n.SendBulk(context.Background(), []string{"a@example.com", "b@example.com", "c@example.com"}, "s", "b")
	require.NoError(t, err)
	assert.Equal(t, 3, report.Sent)
	assert.Empty(t, report.FailedEmails)
	assert.Equal(t, int32(1), sender.maxSeen.Load())
	assert.Equal(t, []string{"a@example.com", "b@example.com", "c@example.com"}, sender.sent)
}

func TestNotifier_SendBulk_NoRecipients(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(slog.Default(), sender, 1)

	_, err := n.SendBulk(context.Background(), nil, "s", "b")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoRecipients)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Empty(t, sender.sent)
}

func TestNew_UnconfiguredTransportFailsEverySend(t *testing.T) {
	n := New(slog.Default(), config.MailConfig{Workers: 2})

	report, err := n.SendBulk(context.Background(), []string{"a@example.com", "b@example.com"}, "s", "b")
	require.NoError(t, err)
	assert.Equal(t, 0, report.Sent)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, report.FailedEmails)
}

func TestNewSMTPSender_RequiresCredentials(t *testing.T) {
	_, err := NewSMTPSender(config.MailConfig{Host: "smtp.example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	s, err := NewSMTPSender(config.MailConfig{
		Host: "smtp.example.com", Port: 465, Username: "robot@example.com",
		Password: "pw", FromEmail: "robot@example.com", FromName: "Центр",
	})
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com", s.host)
}
