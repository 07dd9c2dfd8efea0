package service

import (
	"context"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"focusstake/internal/modules/commitment/domain"
	commitmentout "focusstake/internal/modules/commitment/port/out"
	"focusstake/internal/platform/logging"
)

type CommitmentService struct {
	store  commitmentout.CommitmentStore
	logger hclog.Logger
}

func NewCommitmentService(store commitmentout.CommitmentStore, logger hclog.Logger) *CommitmentService {
	return &CommitmentService{store: store, logger: logging.Or(logger).Named("commitment")}
}

func (s *CommitmentService) Create(ctx context.Context, commitment domain.Commitment) (domain.Commitment, error) {
	if err := s.store.Create(ctx, commitment); err != nil {
		return domain.Commitment{}, err
	}
	s.logger.Info("commitment created",
		"owner", commitment.Owner,
		"id", commitment.ID,
		"stake", commitment.AmountStaked,
		"sessions_per_day", commitment.SessionsPerDay,
		"days", commitment.TotalDays,
	)
	return commitment, nil
}

func (s *CommitmentService) Get(ctx context.Context, owner string, commitmentID uint64) (domain.Commitment, error) {
	return s.store.Find(ctx, owner, commitmentID)
}

func (s *CommitmentService) List(ctx context.Context, owner string) ([]domain.Commitment, error) {
	return s.store.ListByOwner(ctx, owner)
}

// PrepareSession saves the record only when the day rolled over.
func (s *CommitmentService) PrepareSession(ctx context.Context, owner string, commitmentID uint64, now time.Time) (domain.Commitment, error) {
	commitment, err := s.store.Find(ctx, owner, commitmentID)
	if err != nil {
		return domain.Commitment{}, err
	}
	rolled, err := commitment.PrepareSession(now)
	if err != nil {
		return domain.Commitment{}, err
	}
	if rolled {
		s.logger.Debug("day rollover", "owner", owner, "id", commitmentID, "day", commitment.DaysCompleted)
		if err := s.store.Save(ctx, commitment); err != nil {
			return domain.Commitment{}, err
		}
	}
	return commitment, nil
}

func (s *CommitmentService) RecordCompletion(ctx context.Context, owner string, commitmentID uint64, now time.Time) (domain.Commitment, error) {
	commitment, err := s.store.Find(ctx, owner, commitmentID)
	if err != nil {
		return domain.Commitment{}, err
	}
	if err := commitment.RecordCompletion(now); err != nil {
		return domain.Commitment{}, err
	}
	if err := s.store.Save(ctx, commitment); err != nil {
		return domain.Commitment{}, err
	}
	return commitment, nil
}

func (s *CommitmentService) Close(ctx context.Context, owner string, commitmentID uint64, now time.Time) (domain.Commitment, error) {
	commitment, err := s.store.Find(ctx, owner, commitmentID)
	if err != nil {
		return domain.Commitment{}, err
	}
	if err := commitment.Close(now); err != nil {
		return domain.Commitment{}, err
	}
	if err := s.store.Save(ctx, commitment); err != nil {
		return domain.Commitment{}, err
	}
	return commitment, nil
}
