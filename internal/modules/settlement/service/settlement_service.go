package service

import (
	hclog "github.com/hashicorp/go-hclog"

	"focusstake/internal/modules/settlement/domain"
	"focusstake/internal/platform/logging"
)

type SettlementService struct {
	strategy  domain.RatioStrategy
	authority string
	logger    hclog.Logger
}

func NewSettlementService(strategy domain.RatioStrategy, authority string, logger hclog.Logger) *SettlementService {
	if strategy == "" {
		strategy = domain.RatioGlobal
	}
	return &SettlementService{strategy: strategy, authority: authority, logger: logging.Or(logger).Named("settlement")}
}

func (s *SettlementService) Strategy() domain.RatioStrategy {
	return s.strategy
}

// Authority is the identity that signs vault releases and treasury top ups.
func (s *SettlementService) Authority() string {
	return s.authority
}

func (s *SettlementService) Evaluate(stake, profileSessions, commitmentSessions, expected, rewardRate uint64) (domain.Outcome, error) {
	completed := s.strategy.Completed(profileSessions, commitmentSessions)
	return domain.Evaluate(stake, completed, expected, rewardRate)
}

func (s *SettlementService) LogSettled(owner string, commitmentID uint64, outcome domain.Outcome, toppedUp uint64) {
	s.logger.Info("commitment settled",
		"owner", owner,
		"id", commitmentID,
		"tier", string(outcome.Tier),
		"completed", outcome.Completed,
		"expected", outcome.Expected,
		"payout", outcome.Payout,
		"topped_up", toppedUp,
	)
}
