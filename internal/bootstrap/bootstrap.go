package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"
	"github.com/jmoiron/sqlx"

	commitmentinadapter "focusstake/internal/modules/commitment/adapter/in"
	commitmentoutadapter "focusstake/internal/modules/commitment/adapter/out"
	commitmentservice "focusstake/internal/modules/commitment/service"
	commitmentusecase "focusstake/internal/modules/commitment/usecase"
	escrowinadapter "focusstake/internal/modules/escrow/adapter/in"
	escrowoutadapter "focusstake/internal/modules/escrow/adapter/out"
	escrowservice "focusstake/internal/modules/escrow/service"
	escrowusecase "focusstake/internal/modules/escrow/usecase"
	profileinadapter "focusstake/internal/modules/profile/adapter/in"
	profileoutadapter "focusstake/internal/modules/profile/adapter/out"
	profileservice "focusstake/internal/modules/profile/service"
	profileusecase "focusstake/internal/modules/profile/usecase"
	registryinadapter "focusstake/internal/modules/registry/adapter/in"
	registryoutadapter "focusstake/internal/modules/registry/adapter/out"
	registryservice "focusstake/internal/modules/registry/service"
	registryusecase "focusstake/internal/modules/registry/usecase"
	sessioninadapter "focusstake/internal/modules/session/adapter/in"
	sessionoutadapter "focusstake/internal/modules/session/adapter/out"
	sessiondomain "focusstake/internal/modules/session/domain"
	sessionservice "focusstake/internal/modules/session/service"
	sessionusecase "focusstake/internal/modules/session/usecase"
	settlementinadapter "focusstake/internal/modules/settlement/adapter/in"
	settlementdomain "focusstake/internal/modules/settlement/domain"
	settlementservice "focusstake/internal/modules/settlement/service"
	settlementusecase "focusstake/internal/modules/settlement/usecase"
	"focusstake/internal/platform/clock"
	"focusstake/internal/platform/config"
	"focusstake/internal/platform/httpx"
	"focusstake/internal/platform/id"
	"focusstake/internal/platform/logging"
	"focusstake/internal/platform/signer"
	"focusstake/internal/platform/storage"
	"focusstake/internal/platform/tx"
	uiapp "focusstake/internal/ui/app"
)

// tickEpoch anchors the system ticker so counters keep growing across runs.
var tickEpoch = time.Unix(0, 0).UTC()

type App struct {
	Config        config.Config
	Logger        hclog.Logger
	Auth          signer.Authenticator
	ProgramCLI    registryinadapter.CLIHandler
	ProfileCLI    profileinadapter.CLIHandler
	WalletCLI     escrowinadapter.CLIHandler
	CommitmentCLI commitmentinadapter.CLIHandler
	SessionCLI    sessioninadapter.CLIHandler
	SettlementCLI settlementinadapter.CLIHandler
	HTTP          http.Handler

	db *sqlx.DB
}

type options struct {
	clock  clock.Clock
	ticks  clock.TickSource
	logger hclog.Logger
}

type Option func(*options)

func WithClock(clk clock.Clock) Option {
	return func(o *options) { o.clock = clk }
}

func WithTicker(ticks clock.TickSource) Option {
	return func(o *options) { o.ticks = ticks }
}

func WithLogger(logger hclog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = clock.SystemClock{}
	}
	if o.ticks == nil {
		o.ticks = clock.NewSystemTicker(tickEpoch, cfg.TickPeriod)
	}
	if o.logger == nil {
		o.logger = logging.New(cfg.LogLevel, nil)
	}
	strategy, err := settlementdomain.ParseRatioStrategy(cfg.RatioStrategy)
	if err != nil {
		return nil, err
	}

	db, err := storage.OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	txm := tx.NewSQLManager(db)
	clk, logger := o.clock, o.logger

	registryUC := registryusecase.NewInteractor(
		registryservice.NewRegistryService(registryoutadapter.NewSQLiteProgramStore(db), logger),
		txm, clk,
	)

	ledger := escrowoutadapter.NewSQLiteLedger(db)
	escrowUC := escrowusecase.NewInteractor(
		escrowservice.NewEscrowService(ledger, ledger, id.UUID{}, cfg.SettlementAuthority, logger),
		txm, clk,
	)

	profileUC := profileusecase.NewInteractor(
		profileservice.NewProfileService(profileoutadapter.NewSQLiteProfileStore(db), logger),
		registryUC, txm, clk,
	)

	commitmentUC := commitmentusecase.NewInteractor(
		commitmentservice.NewCommitmentService(commitmentoutadapter.NewSQLiteCommitmentStore(db), logger),
		profileUC, escrowUC, registryUC, txm, clk,
	)

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(
			sessionoutadapter.NewSQLiteSessionStore(db),
			sessionoutadapter.NewMarkdownJournal(cfg.JournalDir),
			sessiondomain.NewVerifier(o.ticks.Period()),
			logger,
		).WithExporter(sessionoutadapter.NewXLSXExporter()),
		commitmentUC,
		profileUC,
		sessionoutadapter.NewFileActiveSessionStore(cfg.ActiveSessionDir()),
		txm, clk, o.ticks,
	)

	settlementUC := settlementusecase.NewInteractor(
		settlementservice.NewSettlementService(strategy, cfg.SettlementAuthority, logger),
		commitmentUC, profileUC, escrowUC, registryUC, txm, clk,
	)

	auth := signer.NewAllowlist(cfg.Signers)
	router := httpx.NewRouter(auth, logger)
	registryinadapter.NewHTTPHandler(registryUC, cfg.SettlementAuthority).Routes(router)
	escrowinadapter.NewHTTPHandler(escrowUC, cfg.SettlementAuthority).Routes(router)
	profileinadapter.NewHTTPHandler(profileUC).Routes(router)
	commitmentinadapter.NewHTTPHandler(commitmentUC).Routes(router)
	sessioninadapter.NewHTTPHandler(sessionUC).Routes(router)
	settlementinadapter.NewHTTPHandler(settlementUC).Routes(router)

	logger.Debug("app ready", "db", cfg.DBPath, "strategy", strategy, "tick_period", o.ticks.Period())

	return &App{
		Config:        cfg,
		Logger:        logger,
		Auth:          auth,
		ProgramCLI:    registryinadapter.NewCLIHandler(registryUC, cfg.SettlementAuthority),
		ProfileCLI:    profileinadapter.NewCLIHandler(profileUC),
		WalletCLI:     escrowinadapter.NewCLIHandler(escrowUC),
		CommitmentCLI: commitmentinadapter.NewCLIHandler(commitmentUC),
		SessionCLI:    sessioninadapter.NewCLIHandler(sessionUC),
		SettlementCLI: settlementinadapter.NewCLIHandler(settlementUC),
		HTTP:          router,
		db:            db,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func RunTUI(app *App, owner string) error {
	model := uiapp.NewModel(owner, uiapp.Ports{
		Profiles:    app.ProfileCLI,
		Wallets:     app.WalletCLI,
		Program:     app.ProgramCLI,
		Commitments: app.CommitmentCLI,
		Sessions:    app.SessionCLI,
		Settlements: app.SettlementCLI,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
