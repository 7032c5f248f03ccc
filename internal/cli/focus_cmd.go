package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyfocus/internal/cli/formatter"
	"github.com/alexanderramin/studyfocus/internal/clock"
	"github.com/alexanderramin/studyfocus/internal/domain"
	"github.com/alexanderramin/studyfocus/internal/timer"
)

// progressEvery is how often, in elapsed seconds, the headless loop prints.
const progressEvery = 60

type headlessOptions struct {
	focusOptions
	Save bool
	For  time.Duration
}

func addFocusFlags(cmd *cobra.Command, mode *string, opts *focusOptions) {
	cmd.Flags().StringVar(mode, "mode", string(domain.ModePomodoro), "timer mode: pomodoro, short-break, long-break, deep-work")
	cmd.Flags().StringVar(&opts.Subject, "subject", "", "subject id or name")
	cmd.Flags().BoolVar(&opts.Stopwatch, "stopwatch", false, "count up instead of down")
}

func newFocusCmd(app *App) *cobra.Command {
	var mode string
	var opts focusOptions

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run the focus timer",
		Long:  "Opens the interactive timer when attached to a terminal and runs headless otherwise.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseModeID(mode)
			if err != nil {
				return err
			}
			opts.Mode = id

			if !app.interactive() {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return runHeadless(ctx, cmd.OutOrStdout(), app, headlessOptions{focusOptions: opts})
			}

			ctx := cmd.Context()
			p := tea.NewProgram(newFocusView(ctx, app, opts), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}
	addFocusFlags(cmd, &mode, &opts)

	cmd.AddCommand(newFocusRunCmd(app))
	return cmd
}

func newFocusRunCmd(app *App) *cobra.Command {
	var mode string
	var opts headlessOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the timer without a UI, printing progress lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseModeID(mode)
			if err != nil {
				return err
			}
			opts.Mode = id

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runHeadless(ctx, cmd.OutOrStdout(), app, opts)
		},
	}
	addFocusFlags(cmd, &mode, &opts.focusOptions)
	cmd.Flags().BoolVar(&opts.Save, "save", false, "save the session on completion or interrupt")
	cmd.Flags().DurationVar(&opts.For, "for", 0, "stop after this long (e.g. 10m); 0 runs to completion")

	return cmd
}

// runHeadless drives a Timer from a goroutine-backed Ticker until the
// countdown completes, ctx is cancelled or the --for limit passes.
func runHeadless(ctx context.Context, out io.Writer, app *App, opts headlessOptions) error {
	cfg := app.config()

	subject, err := resolveSubject(ctx, app, opts.Subject)
	if err != nil {
		return err
	}

	ticker := clock.NewTicker(app.tickPeriod())
	defer ticker.Disarm()

	var completed *timer.Completion
	tm := timer.New(ticker,
		timer.WithMode(opts.Mode),
		timer.WithNow(app.now),
		timer.WithDriftCorrection(cfg.Timer.DriftCorrection),
		timer.WithCompletionHandler(func(c timer.Completion) { completed = &c }),
	)
	if opts.Stopwatch {
		tm.SelectCountMode(domain.CountUp)
	}

	policy := timer.StartPolicy{RequireSubject: cfg.Timer.RequireSubject, SubjectID: subject.ID}
	if err := tm.Start(policy); err != nil {
		return err
	}
	printProgress(out, tm.Snapshot(), subject.Name)

	var limit <-chan time.Time
	if opts.For > 0 {
		lt := time.NewTimer(opts.For)
		defer lt.Stop()
		limit = lt.C
	}

loop:
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, formatter.Dim("Interrupted."))
			break loop
		case <-limit:
			fmt.Fprintln(out, formatter.Dim("Time limit reached."))
			break loop
		case tk := <-ticker.C():
			if !tm.Tick(tk) {
				continue
			}
			if completed != nil {
				printProgress(out, tm.Snapshot(), subject.Name)
				fmt.Fprintln(out, formatter.RenderNotice(formatter.NoticeSuccess, completedNotice))
				app.notifier().Notify(ctx, *completed)
				break loop
			}
			if tm.Elapsed()%progressEvery == 0 {
				printProgress(out, tm.Snapshot(), subject.Name)
			}
		}
	}
	tm.Pause()

	if !opts.Save {
		return nil
	}
	// The save must outlive the interrupt that ended the loop.
	rec, err := app.recorder().TrySave(context.WithoutCancel(ctx), tm, subject.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, formatter.RenderNotice(formatter.NoticeSuccess,
		fmt.Sprintf("Session saved (%s)", formatter.FormatMinutes(rec.DurationMinutes))))
	return nil
}

func printProgress(out io.Writer, snap timer.Snapshot, subjectName string) {
	line := fmt.Sprintf("%s  %s  %s",
		formatter.ModeColor(snap.Mode.ID).Render(snap.Mode.Label),
		formatter.FormatClock(snap.DisplaySeconds()),
		formatter.RunStatePill(snap.RunState),
	)
	if snap.CountMode == domain.CountDown {
		line += "  " + formatter.RenderProgress(snap.Progress(), 20, formatter.ModeColor(snap.Mode.ID))
	}
	if subjectName != "" {
		line += "  " + formatter.StylePurple.Render(subjectName)
	}
	fmt.Fprintln(out, line)
}
