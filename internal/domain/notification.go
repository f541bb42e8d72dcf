package domain

import "context"

type ApplicationStatusNotice struct {
	Email            string
	Name             string
	OpportunityTitle string
	CompanyName      string
	Status           ApplicationStatus
}

type OpportunityMatchNotice struct {
	Email            string
	Name             string
	OpportunityID    int64
	OpportunityTitle string
	Score            int
}

// MatchCandidate is a youth sharing at least one skill with an opportunity.
type MatchCandidate struct {
	AccountID     int64
	Email         string
	Name          string
	MatchedSkills int
}

// Notifier sends transactional emails. Each call reports success and never
// returns an error; failures are logged by the implementation.
type Notifier interface {
	Welcome(ctx context.Context, account *Account) bool
	ApplicationStatusChanged(ctx context.Context, notice ApplicationStatusNotice) bool
	OpportunityMatched(ctx context.Context, notice OpportunityMatchNotice) bool
}
