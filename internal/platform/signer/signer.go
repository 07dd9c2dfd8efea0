package signer

import (
	"context"
	"fmt"
	"strings"

	apperrors "focusstake/internal/platform/errors"
)

// Authenticator confirms that the caller holds authority over identity.
// Usecases trust its answer and only check logical ownership afterwards.
type Authenticator interface {
	Authenticate(ctx context.Context, identity string) error
}

// Allowlist accepts the configured identities. An empty list accepts any
// non-blank identity.
type Allowlist struct {
	allowed map[string]struct{}
}

func NewAllowlist(identities []string) Allowlist {
	allowed := make(map[string]struct{}, len(identities))
	for _, identity := range identities {
		identity = strings.TrimSpace(identity)
		if identity != "" {
			allowed[identity] = struct{}{}
		}
	}
	return Allowlist{allowed: allowed}
}

func (a Allowlist) Authenticate(_ context.Context, identity string) error {
	if strings.TrimSpace(identity) == "" {
		return fmt.Errorf("%w: identity is required", apperrors.ErrUnauthenticated)
	}
	if len(a.allowed) == 0 {
		return nil
	}
	if _, ok := a.allowed[identity]; !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrUnauthenticated, identity)
	}
	return nil
}
