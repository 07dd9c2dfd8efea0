package out

import (
	"context"

	"focusstake/internal/modules/profile/domain"
)

type ProfileStore interface {
	Create(ctx context.Context, profile domain.Profile) error
	Find(ctx context.Context, owner string) (domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
}
