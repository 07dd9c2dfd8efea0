package usecase

import (
	"context"
	"errors"
	"fmt"

	commitmentdto "focusstake/internal/modules/commitment/dto"
	commitmentin "focusstake/internal/modules/commitment/port/in"
	profiledto "focusstake/internal/modules/profile/dto"
	profilein "focusstake/internal/modules/profile/port/in"
	"focusstake/internal/modules/session/domain"
	sessiondto "focusstake/internal/modules/session/dto"
	sessionin "focusstake/internal/modules/session/port/in"
	sessionout "focusstake/internal/modules/session/port/out"
	"focusstake/internal/modules/session/service"
	"focusstake/internal/platform/clock"
	apperrors "focusstake/internal/platform/errors"
	"focusstake/internal/platform/tx"
)

type Interactor struct {
	svc         *service.SessionService
	commitments commitmentin.Usecase
	profiles    profilein.Usecase
	activeStore sessionout.ActiveSessionStore
	txm         tx.Manager
	clock       clock.Clock
	ticks       clock.TickSource
}

func NewInteractor(
	svc *service.SessionService,
	commitments commitmentin.Usecase,
	profiles profilein.Usecase,
	activeStore sessionout.ActiveSessionStore,
	txm tx.Manager,
	clk clock.Clock,
	ticks clock.TickSource,
) sessionin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Interactor{
		svc:         svc,
		commitments: commitments,
		profiles:    profiles,
		activeStore: activeStore,
		txm:         txm,
		clock:       clk,
		ticks:       ticks,
	}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.SessionOutput, error) {
	now, tick := i.clock.Now(), i.ticks.Tick()
	var session domain.Session
	err := i.txm.Within(ctx, func(ctx context.Context) error {
		commitment, err := i.commitments.PrepareSession(ctx, commitmentdto.SessionInput{
			Owner:        input.Owner,
			CommitmentID: input.CommitmentID,
			At:           now,
		})
		if err != nil {
			return err
		}
		if commitment.Owner != input.Owner {
			return fmt.Errorf("%w: commitment belongs to %s", apperrors.ErrInvalidAuthority, commitment.Owner)
		}
		if session, err = i.svc.Start(ctx, input.Owner, input.CommitmentID, input.SessionNumber, now, tick); err != nil {
			return err
		}
		if i.activeStore == nil {
			return nil
		}
		return i.activeStore.SaveActive(ctx, domain.ActiveSession{
			Owner:         session.Owner,
			CommitmentID:  session.CommitmentID,
			SessionNumber: session.Number,
			StartedAt:     session.StartAt,
		})
	})
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

// Complete verifies the session and applies its effects to the commitment,
// the profile streak and the journal as one unit.
func (i *Interactor) Complete(ctx context.Context, input sessiondto.CompleteInput) (sessiondto.CompleteOutput, error) {
	now, tick := i.clock.Now(), i.ticks.Tick()
	target, err := i.resolve(ctx, input)
	if err != nil {
		return sessiondto.CompleteOutput{}, err
	}
	out := sessiondto.CompleteOutput{}
	err = i.txm.Within(ctx, func(ctx context.Context) error {
		session, err := i.svc.Complete(ctx, input.Owner, target.CommitmentID, target.SessionNumber, now, tick)
		if err != nil {
			return err
		}
		commitment, err := i.commitments.RecordCompletion(ctx, commitmentdto.SessionInput{
			Owner:        input.Owner,
			CommitmentID: target.CommitmentID,
			At:           now,
		})
		if err != nil {
			return err
		}
		profile, err := i.profiles.RecordSession(ctx, profiledto.RecordSessionInput{Owner: input.Owner, At: now})
		if err != nil {
			return err
		}
		entry := domain.JournalEntry{
			Session:        session,
			SessionsToday:  commitment.SessionsCompletedToday,
			SessionsPerDay: commitment.SessionsPerDay,
			TotalSessions:  profile.SessionsCompleted,
			CurrentStreak:  profile.CurrentStreak,
			BestStreak:     profile.BestStreak,
		}
		path, err := i.svc.RecordJournal(ctx, entry)
		if err != nil {
			return err
		}
		if err := i.clearActive(ctx, session); err != nil {
			return err
		}
		out = sessiondto.CompleteOutput{
			Session:        toOutput(session),
			SessionsToday:  entry.SessionsToday,
			SessionsPerDay: entry.SessionsPerDay,
			CurrentStreak:  entry.CurrentStreak,
			BestStreak:     entry.BestStreak,
			JournalPath:    path,
		}
		return nil
	})
	if err != nil {
		return sessiondto.CompleteOutput{}, err
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, owner string, commitmentID, sessionNumber uint64) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Get(ctx, owner, commitmentID, sessionNumber)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) GetActive(ctx context.Context, owner string) (sessiondto.ActiveSessionOutput, error) {
	if i.activeStore == nil {
		return sessiondto.ActiveSessionOutput{}, apperrors.ErrNoActiveSession
	}
	active, err := i.activeStore.LoadActive(ctx, owner)
	if err != nil {
		return sessiondto.ActiveSessionOutput{}, err
	}
	return sessiondto.ActiveSessionOutput{
		Owner:         active.Owner,
		CommitmentID:  active.CommitmentID,
		SessionNumber: active.SessionNumber,
		StartedAt:     active.StartedAt,
		ReadyAt:       active.StartedAt.Add(domain.RequiredDuration),
	}, nil
}

func (i *Interactor) RecentJournal(ctx context.Context, owner string, limit int) ([]sessiondto.JournalEntryOutput, error) {
	entries, err := i.svc.RecentJournal(ctx, owner, limit)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.JournalEntryOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, sessiondto.JournalEntryOutput{
			CommitmentID:  entry.Session.CommitmentID,
			SessionNumber: entry.Session.Number,
			StartAt:       entry.Session.StartAt,
			EndAt:         entry.Session.EndAt,
			CurrentStreak: entry.CurrentStreak,
		})
	}
	return out, nil
}

func (i *Interactor) JournalStats(ctx context.Context, owner string) (sessiondto.JournalStatsOutput, error) {
	st, err := i.svc.JournalStats(ctx, owner)
	if err != nil {
		return sessiondto.JournalStatsOutput{}, err
	}
	return sessiondto.JournalStatsOutput(st), nil
}

func (i *Interactor) ExportJournal(ctx context.Context, owner, path string) (sessiondto.ExportOutput, error) {
	if path == "" {
		return sessiondto.ExportOutput{}, fmt.Errorf("%w: export path is required", apperrors.ErrInvalidInput)
	}
	n, err := i.svc.ExportJournal(ctx, owner, path)
	if err != nil {
		return sessiondto.ExportOutput{}, err
	}
	return sessiondto.ExportOutput{Path: path, Entries: n}, nil
}

func (i *Interactor) resolve(ctx context.Context, input sessiondto.CompleteInput) (sessiondto.CompleteInput, error) {
	if !input.UseActive {
		return input, nil
	}
	if i.activeStore == nil {
		return sessiondto.CompleteInput{}, apperrors.ErrNoActiveSession
	}
	active, err := i.activeStore.LoadActive(ctx, input.Owner)
	if err != nil {
		return sessiondto.CompleteInput{}, err
	}
	if active.Owner != input.Owner {
		return sessiondto.CompleteInput{}, fmt.Errorf("%w: active session belongs to %s", apperrors.ErrInvalidAuthority, active.Owner)
	}
	input.CommitmentID = active.CommitmentID
	input.SessionNumber = active.SessionNumber
	return input, nil
}

func (i *Interactor) clearActive(ctx context.Context, session domain.Session) error {
	if i.activeStore == nil {
		return nil
	}
	active, err := i.activeStore.LoadActive(ctx, session.Owner)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return nil
	}
	if err != nil {
		return err
	}
	if !active.Matches(session) {
		return nil
	}
	return i.activeStore.ClearActive(ctx, session.Owner)
}

func toOutput(session domain.Session) sessiondto.SessionOutput {
	return sessiondto.SessionOutput{
		Owner:            session.Owner,
		CommitmentID:     session.CommitmentID,
		SessionNumber:    session.Number,
		StartAt:          session.StartAt,
		VerificationTick: session.VerificationTick,
		Completed:        session.Completed,
		EndAt:            session.EndAt,
	}
}
