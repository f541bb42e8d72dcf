package usecase

import (
	"context"
	"fmt"
	"strings"

	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/email"
)

type emailNotifier struct {
	emails      *email.Service
	frontendURL string
}

// NewEmailNotifier adapts the email service to domain notifications.
func NewEmailNotifier(emails *email.Service, frontendURL string) domain.Notifier {
	return &emailNotifier{emails: emails, frontendURL: strings.TrimRight(frontendURL, "/")}
}

func (n *emailNotifier) Welcome(ctx context.Context, account *domain.Account) bool {
	return n.emails.SendWelcome(ctx, account.Email, email.WelcomeData{
		Name: account.DisplayName(),
		Role: string(account.Role),
	})
}

func (n *emailNotifier) ApplicationStatusChanged(ctx context.Context, notice domain.ApplicationStatusNotice) bool {
	return n.emails.SendApplicationStatus(ctx, notice.Email, email.ApplicationStatusData{
		Name:             notice.Name,
		OpportunityTitle: notice.OpportunityTitle,
		Status:           string(notice.Status),
		EmployerName:     notice.CompanyName,
	})
}

func (n *emailNotifier) OpportunityMatched(ctx context.Context, notice domain.OpportunityMatchNotice) bool {
	return n.emails.SendOpportunityMatch(ctx, notice.Email, email.OpportunityMatchData{
		Name:             notice.Name,
		OpportunityTitle: notice.OpportunityTitle,
		OpportunityLink:  fmt.Sprintf("%s/opportunities/%d", n.frontendURL, notice.OpportunityID),
		MatchScore:       notice.Score,
	})
}
