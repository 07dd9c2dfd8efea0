package out

import (
	"context"

	"focusstake/internal/modules/registry/domain"
)

// ProgramStore persists the singleton. Load reports
// apperrors.ErrProgramUninitialized before Create has run.
type ProgramStore interface {
	Create(ctx context.Context, program domain.Program) error
	Load(ctx context.Context) (domain.Program, error)
	Save(ctx context.Context, program domain.Program) error
}
