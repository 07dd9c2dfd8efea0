package service

import (
	"context"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"focusstake/internal/modules/profile/domain"
	profileout "focusstake/internal/modules/profile/port/out"
	"focusstake/internal/platform/logging"
)

type ProfileService struct {
	store  profileout.ProfileStore
	logger hclog.Logger
}

func NewProfileService(store profileout.ProfileStore, logger hclog.Logger) *ProfileService {
	return &ProfileService{store: store, logger: logging.Or(logger).Named("profile")}
}

func (s *ProfileService) Create(ctx context.Context, owner string, now time.Time) (domain.Profile, error) {
	profile, err := domain.New(owner, now)
	if err != nil {
		return domain.Profile{}, err
	}
	if err := s.store.Create(ctx, profile); err != nil {
		return domain.Profile{}, err
	}
	s.logger.Info("profile created", "owner", owner)
	return profile, nil
}

func (s *ProfileService) Get(ctx context.Context, owner string) (domain.Profile, error) {
	return s.store.Find(ctx, owner)
}

func (s *ProfileService) RecordSession(ctx context.Context, owner string, now time.Time) (domain.Profile, error) {
	profile, err := s.store.Find(ctx, owner)
	if err != nil {
		return domain.Profile{}, err
	}
	before := profile.CurrentStreak
	if err := profile.RecordSession(now); err != nil {
		return domain.Profile{}, err
	}
	if err := s.store.Save(ctx, profile); err != nil {
		return domain.Profile{}, err
	}
	if profile.CurrentStreak != before {
		s.logger.Debug("streak updated", "owner", owner, "streak", profile.CurrentStreak, "best", profile.BestStreak)
	}
	return profile, nil
}

func (s *ProfileService) CreditRewards(ctx context.Context, owner string, value uint64) (domain.Profile, error) {
	profile, err := s.store.Find(ctx, owner)
	if err != nil {
		return domain.Profile{}, err
	}
	if err := profile.CreditRewards(value); err != nil {
		return domain.Profile{}, err
	}
	if err := s.store.Save(ctx, profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}
