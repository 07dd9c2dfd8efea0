package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"focusstake/internal/bootstrap"
	sessiondto "focusstake/internal/modules/session/dto"
	"focusstake/internal/platform/config"
	apperrors "focusstake/internal/platform/errors"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	dataDir string
	user    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "focusstake",
		Short:         "Stake on your focus sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := godotenv.Load(filepath.Join(flags.dataDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load .env: %w", err)
			}
			if flags.user == "" {
				flags.user = os.Getenv("FOCUSSTAKE_USER")
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", defaultDataDir(), "directory holding the database, journal and config")
	root.PersistentFlags().StringVar(&flags.user, "user", "", "acting identity (defaults to $FOCUSSTAKE_USER)")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newProgramCmd(flags))
	root.AddCommand(newProfileCmd(flags))
	root.AddCommand(newWalletCmd(flags))
	root.AddCommand(newCommitmentCmd(flags))
	root.AddCommand(newSessionCmd(flags))
	root.AddCommand(newServeCmd(flags))
	return root
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".focusstake"
	}
	return filepath.Join(home, ".focusstake")
}

// withApp builds the application for one command run and authenticates the
// acting user before fn runs.
func withApp(ctx context.Context, flags *rootFlags, fn func(*bootstrap.App) error) error {
	cfg, err := config.Load(flags.dataDir)
	if err != nil {
		return err
	}
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	if err := app.Auth.Authenticate(ctx, flags.user); err != nil {
		return err
	}
	return fn(app)
}

// withAuthority is withApp for commands reserved to the settlement authority.
func withAuthority(ctx context.Context, flags *rootFlags, fn func(*bootstrap.App) error) error {
	return withApp(ctx, flags, func(app *bootstrap.App) error {
		if flags.user != app.Config.SettlementAuthority {
			return fmt.Errorf("%w: %s is not the settlement authority", apperrors.ErrInvalidAuthority, flags.user)
		}
		return fn(app)
	})
}

func parseUint(name, value string) (uint64, error) {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a non-negative integer", apperrors.ErrInvalidInput, name, value)
	}
	return n, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(timeLayout)
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the focus dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				return bootstrap.RunTUI(app, flags.user)
			})
		},
	}
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cfg, err := config.Load(flags.dataDir)
			if err != nil {
				return err
			}
			app, err := bootstrap.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.Serve(ctx, app, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8740", "listen address")
	return cmd
}

func newProgramCmd(flags *rootFlags) *cobra.Command {
	program := &cobra.Command{Use: "program", Short: "Global program state"}

	var rewardRate uint64
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the program (settlement authority only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAuthority(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.ProgramCLI.Init(cmd.Context(), rewardRate)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "program initialized: authority=%s reward_rate=%d%%\n", out.Authority, out.RewardRate)
				return nil
			})
		},
	}
	initCmd.Flags().Uint64Var(&rewardRate, "reward-rate", 10, "bonus percentage paid on top of the stake")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show program totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.ProgramCLI.Show(cmd.Context())
				if err != nil {
					return err
				}
				treasury, err := app.WalletCLI.Treasury(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "authority=%s reward_rate=%d%% total_staked=%d total_users=%d treasury=%d created=%s\n",
					out.Authority, out.RewardRate, out.TotalStaked, out.TotalUsers, treasury.Balance, formatTime(out.CreatedAt))
				return nil
			})
		},
	}

	fund := &cobra.Command{
		Use:   "fund-rewards <amount>",
		Short: "Mint reward funds into the treasury (settlement authority only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseUint("amount", args[0])
			if err != nil {
				return err
			}
			return withAuthority(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.WalletCLI.FundTreasury(cmd.Context(), value)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "treasury balance: %d\n", out.Balance)
				return nil
			})
		},
	}

	program.AddCommand(initCmd, show, fund)
	return program
}

func newProfileCmd(flags *rootFlags) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "User focus profile"}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create the profile for --user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.ProfileCLI.Create(cmd.Context(), flags.user)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "profile created: %s at=%s\n", out.Owner, formatTime(out.CreatedAt))
				return nil
			})
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show streaks and totals for --user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.ProfileCLI.Show(cmd.Context(), flags.user)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s sessions=%d streak=%d best=%d rewards=%d last_active=%s\n",
					out.Owner, out.SessionsCompleted, out.CurrentStreak, out.BestStreak, out.RewardsEarned, formatTime(out.LastActiveDay))
				return nil
			})
		},
	}

	profile.AddCommand(create, show)
	return profile
}

func newWalletCmd(flags *rootFlags) *cobra.Command {
	wallet := &cobra.Command{Use: "wallet", Short: "Spendable balance"}

	fund := &cobra.Command{
		Use:   "fund <amount>",
		Short: "Mint test funds into the wallet of --user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseUint("amount", args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.WalletCLI.FundWallet(cmd.Context(), flags.user, value)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wallet balance: %d\n", out.Balance)
				return nil
			})
		},
	}

	balance := &cobra.Command{
		Use:   "balance",
		Short: "Show the wallet balance of --user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.WalletCLI.Wallet(cmd.Context(), flags.user)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s balance=%d\n", out.ID, out.Balance)
				return nil
			})
		},
	}

	var limit int
	history := &cobra.Command{
		Use:   "history [account-id]",
		Short: "List transfers touching an account (defaults to the wallet of --user)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				account := "wallet:" + flags.user
				if len(args) == 1 {
					account = args[0]
				}
				transfers, err := app.WalletCLI.Transfers(cmd.Context(), account, limit)
				if err != nil {
					return err
				}
				if len(transfers) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no transfers")
					return nil
				}
				for _, t := range transfers {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s %d  %s -> %s\n", formatTime(t.CreatedAt), t.Memo, t.Amount, t.From, t.To)
				}
				return nil
			})
		},
	}
	history.Flags().IntVar(&limit, "limit", 20, "maximum transfers to list")

	wallet.AddCommand(fund, balance, history)
	return wallet
}

func newCommitmentCmd(flags *rootFlags) *cobra.Command {
	commitment := &cobra.Command{Use: "commitment", Short: "Stake on a focus schedule"}

	var amount uint64
	var sessionsPerDay, days uint32
	create := &cobra.Command{
		Use:   "create <id> --amount <n> --sessions-per-day <n> --days <n>",
		Short: "Stake funds on a daily session schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUint("commitment id", args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.CommitmentCLI.Create(cmd.Context(), flags.user, id, amount, sessionsPerDay, days)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commitment %d staked %d in %s: %d sessions/day for %d days (%d sessions)\n",
					out.CommitmentID, out.AmountStaked, out.VaultID, out.SessionsPerDay, out.TotalDays, out.ExpectedSessions)
				return nil
			})
		},
	}
	create.Flags().Uint64Var(&amount, "amount", 0, "stake amount")
	create.Flags().Uint32Var(&sessionsPerDay, "sessions-per-day", 1, "sessions per day (1-10)")
	create.Flags().Uint32Var(&days, "days", 7, "commitment length in days (1-30)")
	_ = create.MarkFlagRequired("amount")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show commitment progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUint("commitment id", args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.CommitmentCLI.Show(cmd.Context(), flags.user, id)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commitment %d active=%t stake=%d sessions=%d/%d today=%d/%d days_completed=%d start=%s last=%s\n",
					out.CommitmentID, out.Active, out.AmountStaked, out.SessionsCompleted, out.ExpectedSessions,
					out.SessionsCompletedToday, out.SessionsPerDay, out.DaysCompleted, formatTime(out.StartAt), formatTime(out.LastSessionAt))
				return nil
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List commitments of --user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				items, err := app.CommitmentCLI.List(cmd.Context(), flags.user)
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no commitments")
					return nil
				}
				for _, c := range items {
					state := "active"
					if !c.Active {
						state = "settled"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\tstake=%d\t%d/%d sessions\n", c.CommitmentID, state, c.AmountStaked, c.SessionsCompleted, c.ExpectedSessions)
				}
				return nil
			})
		},
	}

	preview := &cobra.Command{
		Use:   "preview <id>",
		Short: "Show the settlement the commitment would receive now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettlement(cmd, flags, args[0], false)
		},
	}

	settle := &cobra.Command{
		Use:   "settle <id>",
		Short: "Settle an ended commitment and release the payout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettlement(cmd, flags, args[0], true)
		},
	}

	commitment.AddCommand(create, show, list, preview, settle)
	return commitment
}

func runSettlement(cmd *cobra.Command, flags *rootFlags, rawID string, commit bool) error {
	id, err := parseUint("commitment id", rawID)
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
		settle := app.SettlementCLI.Preview
		verb := "would settle"
		if commit {
			settle = app.SettlementCLI.Settle
			verb = "settled"
		}
		out, err := settle(cmd.Context(), flags.user, id)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d: tier=%s ratio=%.2f (%d/%d, %s) stake=%d bonus=%d payout=%d\n",
			verb, out.CommitmentID, out.Tier, out.Ratio, out.SessionsCompleted, out.SessionsExpected, out.Strategy, out.Stake, out.Bonus, out.Payout)
		if commit && out.VaultRemaining > 0 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "forfeited %d stays in %s\n", out.VaultRemaining, out.VaultID)
		}
		return nil
	})
}

func newSessionCmd(flags *rootFlags) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Focus session lifecycle"}

	start := &cobra.Command{
		Use:   "start <commitment-id> <session-number>",
		Short: "Start a 55 minute focus session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cid, n, err := sessionArgs(args)
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Start(cmd.Context(), flags.user, cid, n)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %d started on commitment %d at=%s tick=%d\n",
					out.SessionNumber, out.CommitmentID, formatTime(out.StartAt), out.VerificationTick)
				return nil
			})
		},
	}

	complete := &cobra.Command{
		Use:   "complete [<commitment-id> <session-number>]",
		Short: "Complete a session (defaults to the active one)",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected no arguments or <commitment-id> <session-number>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				var out sessiondto.CompleteOutput
				var err error
				if len(args) == 2 {
					cid, n, argErr := sessionArgs(args)
					if argErr != nil {
						return argErr
					}
					out, err = app.SessionCLI.Complete(cmd.Context(), flags.user, cid, n)
				} else {
					out, err = app.SessionCLI.CompleteActive(cmd.Context(), flags.user)
				}
				if err != nil {
					return err
				}
				line := describeCompletion(out)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
				return nil
			})
		},
	}

	show := &cobra.Command{
		Use:   "show [<commitment-id> <session-number>]",
		Short: "Show a session (defaults to the active one)",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				if len(args) < 2 {
					active, err := app.SessionCLI.GetActive(cmd.Context(), flags.user)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "active: commitment=%d session=%d started=%s ready=%s\n",
						active.CommitmentID, active.SessionNumber, formatTime(active.StartedAt), formatTime(active.ReadyAt))
					return nil
				}
				cid, n, err := sessionArgs(args)
				if err != nil {
					return err
				}
				out, err := app.SessionCLI.Show(cmd.Context(), flags.user, cid, n)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commitment=%d session=%d completed=%t start=%s end=%s tick=%d\n",
					out.CommitmentID, out.SessionNumber, out.Completed, formatTime(out.StartAt), formatTime(out.EndAt), out.VerificationTick)
				return nil
			})
		},
	}

	var limit int
	journal := &cobra.Command{
		Use:   "journal",
		Short: "List recent completed sessions from the journal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				entries, err := app.SessionCLI.Journal(cmd.Context(), flags.user, limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "journal is empty")
					return nil
				}
				for _, e := range entries {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  commitment=%d session=%d streak=%d\n",
						formatTime(e.EndAt), e.CommitmentID, e.SessionNumber, e.CurrentStreak)
				}
				return nil
			})
		},
	}
	journal.Flags().IntVar(&limit, "limit", 10, "maximum entries to list")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Summarize completed session durations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Stats(cmd.Context(), flags.user)
				if err != nil {
					return err
				}
				if out.Sessions == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no completed sessions yet")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(),
					"sessions=%d active_days=%d per_day=%.2f mean=%.1fm median=%.1fm p90=%.1fm longest=%.1fm best_streak=%d\n",
					out.Sessions, out.ActiveDays, out.SessionsPerActiveDay, out.MeanMinutes, out.MedianMinutes,
					out.P90Minutes, out.LongestMinutes, out.BestStreak)
				return nil
			})
		},
	}

	export := &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Export the journal to a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Export(cmd.Context(), flags.user, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d sessions to %s\n", out.Entries, out.Path)
				return nil
			})
		},
	}

	session.AddCommand(start, complete, show, journal, stats, export)
	return session
}

func sessionArgs(args []string) (uint64, uint64, error) {
	cid, err := parseUint("commitment id", args[0])
	if err != nil {
		return 0, 0, err
	}
	n, err := parseUint("session number", args[1])
	if err != nil {
		return 0, 0, err
	}
	return cid, n, nil
}

func describeCompletion(out sessiondto.CompleteOutput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "session %d on commitment %d completed: %d/%d today, streak %d (best %d)",
		out.Session.SessionNumber, out.Session.CommitmentID, out.SessionsToday, out.SessionsPerDay, out.CurrentStreak, out.BestStreak)
	if out.JournalPath != "" {
		fmt.Fprintf(&sb, " note=%s", out.JournalPath)
	}
	return sb.String()
}
