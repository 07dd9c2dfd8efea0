package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"focusstake/internal/modules/profile/domain"
	"focusstake/internal/modules/profile/dto"
	"focusstake/internal/modules/profile/service"
	"focusstake/internal/modules/profile/usecase"
	registrydto "focusstake/internal/modules/registry/dto"
	apperrors "focusstake/internal/platform/errors"
)

type memoryProfileStore struct {
	items map[string]domain.Profile
}

func newMemoryProfileStore() *memoryProfileStore {
	return &memoryProfileStore{items: map[string]domain.Profile{}}
}

func (m *memoryProfileStore) Create(_ context.Context, profile domain.Profile) error {
	if _, ok := m.items[profile.Owner]; ok {
		return apperrors.ErrAlreadyExists
	}
	m.items[profile.Owner] = profile
	return nil
}

func (m *memoryProfileStore) Find(_ context.Context, owner string) (domain.Profile, error) {
	profile, ok := m.items[owner]
	if !ok {
		return domain.Profile{}, apperrors.ErrNotFound
	}
	return profile, nil
}

func (m *memoryProfileStore) Save(_ context.Context, profile domain.Profile) error {
	m.items[profile.Owner] = profile
	return nil
}

type countingRegistry struct {
	users uint64
	err   error
}

func (r *countingRegistry) Initialize(context.Context, registrydto.InitializeInput) (registrydto.ProgramOutput, error) {
	return registrydto.ProgramOutput{}, nil
}

func (r *countingRegistry) Get(context.Context) (registrydto.ProgramOutput, error) {
	return registrydto.ProgramOutput{TotalUsers: r.users}, nil
}

func (r *countingRegistry) AddStaked(context.Context, uint64) (registrydto.ProgramOutput, error) {
	return registrydto.ProgramOutput{}, nil
}

func (r *countingRegistry) ReleaseStaked(context.Context, uint64) (registrydto.ProgramOutput, error) {
	return registrydto.ProgramOutput{}, nil
}

func (r *countingRegistry) RegisterUser(context.Context) (registrydto.ProgramOutput, error) {
	if r.err != nil {
		return registrydto.ProgramOutput{}, r.err
	}
	r.users++
	return registrydto.ProgramOutput{TotalUsers: r.users}, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestCreateRegistersUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	registry := &countingRegistry{}
	uc := usecase.NewInteractor(service.NewProfileService(newMemoryProfileStore(), nil), registry, nil, fixedClock{now: time.Unix(1_700_000_000, 0)})

	profile, err := uc.Create(ctx, dto.CreateInput{Owner: "alice"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if profile.CurrentStreak != 0 || profile.SessionsCompleted != 0 || !profile.LastActiveDay.IsZero() {
		t.Fatalf("expected zeroed profile, got %+v", profile)
	}
	if registry.users != 1 {
		t.Fatalf("expected one registered user, got %d", registry.users)
	}
	if _, err := uc.Create(ctx, dto.CreateInput{Owner: "alice"}); !errors.Is(err, apperrors.ErrAlreadyExists) {
		t.Fatalf("expected duplicate to fail, got %v", err)
	}
	if registry.users != 1 {
		t.Fatalf("duplicate create must not count a user, got %d", registry.users)
	}
}

func TestCreateFailsWithoutProgram(t *testing.T) {
	t.Parallel()
	registry := &countingRegistry{err: apperrors.ErrProgramUninitialized}
	uc := usecase.NewInteractor(service.NewProfileService(newMemoryProfileStore(), nil), registry, nil, fixedClock{now: time.Unix(1_700_000_000, 0)})
	if _, err := uc.Create(context.Background(), dto.CreateInput{Owner: "alice"}); !errors.Is(err, apperrors.ErrProgramUninitialized) {
		t.Fatalf("expected ErrProgramUninitialized, got %v", err)
	}
}

func TestRecordSessionAcrossDays(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	uc := usecase.NewInteractor(service.NewProfileService(newMemoryProfileStore(), nil), &countingRegistry{}, nil, fixedClock{now: start})
	if _, err := uc.Create(ctx, dto.CreateInput{Owner: "alice"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	var profile dto.ProfileOutput
	var err error
	for n := 0; n < 4; n++ {
		profile, err = uc.RecordSession(ctx, dto.RecordSessionInput{Owner: "alice", At: start.AddDate(0, 0, n)})
		if err != nil {
			t.Fatalf("record session day %d: %v", n, err)
		}
	}
	if profile.CurrentStreak != 4 || profile.BestStreak != 4 {
		t.Fatalf("expected 4-day streak, got %+v", profile)
	}
	if !profile.LastActiveDay.Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected last active day %s", profile.LastActiveDay)
	}

	if _, err := uc.RecordSession(ctx, dto.RecordSessionInput{Owner: "bob", At: start}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected unknown profile to fail, got %v", err)
	}
}
