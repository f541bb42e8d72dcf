package email

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []*Message
	err  error
}

func (r *recordingSender) Send(ctx context.Context, msg *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestRenderWelcome(t *testing.T) {
	t.Run("youth variant", func(t *testing.T) {
		msg, err := RenderWelcome("amina@example.com", WelcomeData{Name: "Amina", Role: "youth"})
		require.NoError(t, err)
		assert.Equal(t, "amina@example.com", msg.To)
		assert.Contains(t, msg.Subject, "Welcome to OpportunityHub Kenya")
		assert.Contains(t, msg.HTML, "Hi Amina!")
		assert.Contains(t, msg.HTML, "Browse opportunities")
		assert.NotContains(t, msg.HTML, "Post opportunities")
	})

	t.Run("employer variant", func(t *testing.T) {
		msg, err := RenderWelcome("hr@acme.co.ke", WelcomeData{Name: "Acme", Role: "employer"})
		require.NoError(t, err)
		assert.Contains(t, msg.HTML, "Post opportunities")
	})

	t.Run("escapes user input", func(t *testing.T) {
		msg, err := RenderWelcome("x@example.com", WelcomeData{Name: "<script>alert(1)</script>", Role: "youth"})
		require.NoError(t, err)
		assert.NotContains(t, msg.HTML, "<script>")
	})
}

func TestRenderApplicationStatus(t *testing.T) {
	accepted, err := RenderApplicationStatus("a@example.com", ApplicationStatusData{
		Name: "Brian", OpportunityTitle: "Junior Go Developer", Status: "accepted", EmployerName: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "🎉 Application Update: Junior Go Developer", accepted.Subject)
	assert.Contains(t, accepted.HTML, "Congratulations!")
	assert.Contains(t, accepted.HTML, "Acme")

	rejected, err := RenderApplicationStatus("a@example.com", ApplicationStatusData{
		Name: "Brian", OpportunityTitle: "Junior Go Developer", Status: "rejected",
	})
	require.NoError(t, err)
	assert.Contains(t, rejected.HTML, "keep trying")

	other, err := RenderApplicationStatus("a@example.com", ApplicationStatusData{Status: "reviewing"})
	require.NoError(t, err)
	assert.Contains(t, other.HTML, "Status updated to: reviewing")
}

func TestRenderOpportunityMatch(t *testing.T) {
	msg, err := RenderOpportunityMatch("y@example.com", OpportunityMatchData{
		Name: "Faith", OpportunityTitle: "Solar Technician", OpportunityLink: "https://app.example/opportunities/7", MatchScore: 67,
	})
	require.NoError(t, err)
	assert.Equal(t, "🎯 New Opportunity Match: Solar Technician", msg.Subject)
	assert.Contains(t, msg.HTML, "67% Match")
	assert.Contains(t, msg.HTML, "https://app.example/opportunities/7")

	_, err = RenderOpportunityMatch("y@example.com", OpportunityMatchData{MatchScore: 120})
	assert.Error(t, err)
}

func TestServiceReportsOutcomeAsBool(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rec := &recordingSender{}
		svc := NewService(rec, time.Second)
		ok := svc.SendWelcome(context.Background(), "a@example.com", WelcomeData{Name: "A", Role: "youth"})
		assert.True(t, ok)
		assert.Len(t, rec.sent, 1)
	})

	t.Run("transport failure is swallowed", func(t *testing.T) {
		svc := NewService(&recordingSender{err: errors.New("connection refused")}, time.Second)
		ok := svc.SendApplicationStatus(context.Background(), "a@example.com", ApplicationStatusData{Status: "accepted"})
		assert.False(t, ok)
	})

	t.Run("render failure is swallowed", func(t *testing.T) {
		rec := &recordingSender{}
		svc := NewService(rec, time.Second)
		ok := svc.SendOpportunityMatch(context.Background(), "a@example.com", OpportunityMatchData{MatchScore: -1})
		assert.False(t, ok)
		assert.Empty(t, rec.sent)
	})
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "noreply@opportunityhub.co.ke", addressOf("OpportunityHub <noreply@opportunityhub.co.ke>"))
	assert.Equal(t, "plain@example.com", addressOf(" plain@example.com "))
	assert.Equal(t, "j***@example.com", maskEmail("jane@example.com"))
	assert.Equal(t, "***", maskEmail("x"))

	mime := string(buildMIME("from@example.com", &Message{To: "to@example.com", Subject: "Hi", HTML: "<p>x</p>"}))
	assert.Contains(t, mime, "Content-Type: text/html; charset=UTF-8\r\n")
	assert.Contains(t, mime, "Subject: Hi\r\n")
}

func TestBuildMIMEHeaders(t *testing.T) {
	t.Run("title cannot inject headers", func(t *testing.T) {
		msg, err := RenderOpportunityMatch("a@example.com", OpportunityMatchData{
			Name: "Amina", OpportunityTitle: "Dev\r\nBcc: attacker@evil.test", MatchScore: 80,
		})
		require.NoError(t, err)

		raw := string(buildMIME("from@example.com", msg))
		headers, _, found := strings.Cut(raw, "\r\n\r\n")
		require.True(t, found)

		lines := strings.Split(headers, "\r\n")
		assert.Len(t, lines, 5)
		for _, line := range lines {
			assert.False(t, strings.HasPrefix(line, "Bcc:"), "unexpected header line %q", line)
			assert.NotContains(t, line, "\n")
		}
	})

	t.Run("non-ascii subject is q-encoded", func(t *testing.T) {
		raw := string(buildMIME("from@example.com", &Message{To: "to@example.com", Subject: "🎯 New Opportunity Match: Dev", HTML: "<p>x</p>"}))
		assert.Contains(t, raw, "Subject: =?UTF-8?q?")
		assert.NotContains(t, raw, "🎯 New")
	})
}
