package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyfocus/internal/apiclient"
	"github.com/alexanderramin/studyfocus/internal/cli"
	"github.com/alexanderramin/studyfocus/internal/config"
	"github.com/alexanderramin/studyfocus/internal/db"
	"github.com/alexanderramin/studyfocus/internal/devserver"
	"github.com/alexanderramin/studyfocus/internal/domain"
	"github.com/alexanderramin/studyfocus/internal/logging"
	"github.com/alexanderramin/studyfocus/internal/notify"
	"github.com/alexanderramin/studyfocus/internal/repository"
	"github.com/alexanderramin/studyfocus/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{}

	// Detect interactive terminal; TUIs and prompts only run on one.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}()

	app.Configure = func(cmd *cobra.Command) error {
		cfg, err := config.Load(cli.ConfigFile(cmd), cmd.Flags())
		if err != nil {
			return err
		}

		// Keep the terminal clean for TUIs unless a log file is configured.
		var fallback io.Writer = os.Stderr
		if app.IsInteractive() {
			fallback = io.Discard
		}
		logger, closeLog, err := logging.Setup(cfg.Log, fallback)
		if err != nil {
			return err
		}
		closers = append(closers, closeLog)

		app.Config = cfg
		app.Logger = logger
		app.Observer = service.NewLogUseCaseObserver(logger)
		app.Scorer = service.NewPlaceholderScorer(nil)

		sinks := notify.Multi{notify.NewLog(logger)}
		if cfg.Timer.Bell {
			sinks = append(sinks, notify.NewBell(os.Stderr, logger))
		}
		app.Notifier = sinks

		if cfg.Backend == domain.BackendRemote && cmd.Name() != "serve" {
			client := apiclient.New(cfg.APIClientConfig(), apiclient.NewLogObserver(logger))
			app.Backend = service.Backend{
				Sessions:   client,
				History:    client,
				Flashcards: client,
				Cards:      client,
				Subjects:   client,
			}
			app.SubjectWriter = client
			return nil
		}

		// Open database
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		closers = append(closers, database.Close)

		// Wire repositories
		subjectRepo := repository.NewSQLiteSubjectRepo(database)
		sessionRepo := repository.NewSQLiteSessionRepo(database)
		flashcardRepo := repository.NewSQLiteFlashcardRepo(database, db.NewSQLiteUnitOfWork(database), cfg.Review.RequeueAfter)

		app.Backend = service.Backend{
			Sessions:   sessionRepo,
			History:    sessionRepo,
			Flashcards: flashcardRepo,
			Cards:      flashcardRepo,
			Subjects:   subjectRepo,
		}
		app.SubjectWriter = subjectRepo
		app.SessionRemover = sessionRepo
		app.Serve = &devserver.Deps{
			Subjects:   subjectRepo,
			Sessions:   sessionRepo,
			Flashcards: flashcardRepo,
		}
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}
