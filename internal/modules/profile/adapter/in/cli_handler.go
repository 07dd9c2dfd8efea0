package in

import (
	"context"

	profiledto "focusstake/internal/modules/profile/dto"
	profilein "focusstake/internal/modules/profile/port/in"
)

type CLIHandler struct {
	usecase profilein.Usecase
}

func NewCLIHandler(usecase profilein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, owner string) (profiledto.ProfileOutput, error) {
	return h.usecase.Create(ctx, profiledto.CreateInput{Owner: owner})
}

func (h CLIHandler) Show(ctx context.Context, owner string) (profiledto.ProfileOutput, error) {
	return h.usecase.Get(ctx, owner)
}
