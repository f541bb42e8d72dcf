package email

import (
	"context"
	"time"

	"opportunityhub-backend/pkg/logger"

	"go.uber.org/zap"
)

// Service renders and sends transactional emails. Every method reports
// success as a boolean and logs failures; callers never fail because of email.
type Service struct {
	sender  Sender
	timeout time.Duration
}

func NewService(sender Sender, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{sender: sender, timeout: timeout}
}

func (s *Service) SendWelcome(ctx context.Context, to string, data WelcomeData) bool {
	msg, err := RenderWelcome(to, data)
	return s.deliver(ctx, "welcome", msg, err)
}

func (s *Service) SendApplicationStatus(ctx context.Context, to string, data ApplicationStatusData) bool {
	msg, err := RenderApplicationStatus(to, data)
	return s.deliver(ctx, "application_status", msg, err)
}

func (s *Service) SendOpportunityMatch(ctx context.Context, to string, data OpportunityMatchData) bool {
	msg, err := RenderOpportunityMatch(to, data)
	return s.deliver(ctx, "opportunity_match", msg, err)
}

func (s *Service) deliver(ctx context.Context, kind string, msg *Message, renderErr error) bool {
	if renderErr != nil {
		logger.Log.Error("Failed to render email", zap.String("kind", kind), zap.Error(renderErr))
		return false
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.sender.Send(sendCtx, msg); err != nil {
		logger.Log.Error("Failed to send email",
			zap.String("kind", kind),
			zap.String("to", maskEmail(msg.To)),
			zap.Error(err),
		)
		return false
	}

	logger.Log.Info("Email sent", zap.String("kind", kind), zap.String("to", maskEmail(msg.To)))
	return true
}

// maskEmail keeps the first character and the domain, e.g. "j***@example.com".
func maskEmail(addr string) string {
	at := -1
	for i, c := range addr {
		if c == '@' {
			at = i
			break
		}
	}
	if at <= 1 {
		return "***"
	}
	return addr[:1] + "***" + addr[at:]
}
