package service

import (
	"context"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"focusstake/internal/modules/registry/domain"
	registryout "focusstake/internal/modules/registry/port/out"
	"focusstake/internal/platform/logging"
)

type RegistryService struct {
	store  registryout.ProgramStore
	logger hclog.Logger
}

func NewRegistryService(store registryout.ProgramStore, logger hclog.Logger) *RegistryService {
	return &RegistryService{store: store, logger: logging.Or(logger).Named("registry")}
}

func (s *RegistryService) Initialize(ctx context.Context, authority string, rewardRate uint64, now time.Time) (domain.Program, error) {
	program, err := domain.NewProgram(authority, rewardRate, now)
	if err != nil {
		return domain.Program{}, err
	}
	if err := s.store.Create(ctx, program); err != nil {
		return domain.Program{}, err
	}
	s.logger.Info("program initialized", "authority", authority, "reward_rate", rewardRate)
	return program, nil
}

func (s *RegistryService) Get(ctx context.Context) (domain.Program, error) {
	return s.store.Load(ctx)
}

func (s *RegistryService) AddStaked(ctx context.Context, value uint64) (domain.Program, error) {
	return s.update(ctx, func(p *domain.Program) error { return p.AddStaked(value) })
}

func (s *RegistryService) ReleaseStaked(ctx context.Context, value uint64) (domain.Program, error) {
	return s.update(ctx, func(p *domain.Program) error { return p.ReleaseStaked(value) })
}

func (s *RegistryService) RegisterUser(ctx context.Context) (domain.Program, error) {
	return s.update(ctx, func(p *domain.Program) error { return p.RegisterUser() })
}

func (s *RegistryService) update(ctx context.Context, mutate func(*domain.Program) error) (domain.Program, error) {
	program, err := s.store.Load(ctx)
	if err != nil {
		return domain.Program{}, err
	}
	if err := mutate(&program); err != nil {
		return domain.Program{}, err
	}
	if err := s.store.Save(ctx, program); err != nil {
		return domain.Program{}, err
	}
	return program, nil
}
