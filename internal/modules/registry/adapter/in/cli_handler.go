package in

import (
	"context"

	registrydto "focusstake/internal/modules/registry/dto"
	registryin "focusstake/internal/modules/registry/port/in"
)

type CLIHandler struct {
	usecase   registryin.Usecase
	authority string
}

func NewCLIHandler(usecase registryin.Usecase, authority string) CLIHandler {
	return CLIHandler{usecase: usecase, authority: authority}
}

func (h CLIHandler) Init(ctx context.Context, rewardRate uint64) (registrydto.ProgramOutput, error) {
	return h.usecase.Initialize(ctx, registrydto.InitializeInput{Authority: h.authority, RewardRate: rewardRate})
}

func (h CLIHandler) Show(ctx context.Context) (registrydto.ProgramOutput, error) {
	return h.usecase.Get(ctx)
}
