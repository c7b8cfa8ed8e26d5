package main

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/quote-saver/internal/config"
	"github.com/debemdeboas/quote-saver/internal/console"
	"github.com/debemdeboas/quote-saver/internal/db"
	"github.com/debemdeboas/quote-saver/internal/logger"
	"github.com/debemdeboas/quote-saver/internal/quotes"
	"github.com/debemdeboas/quote-saver/internal/storage"
	"github.com/debemdeboas/quote-saver/internal/theme"
	"github.com/debemdeboas/quote-saver/internal/web"
)

func main() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("quote-saver", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "config.yaml", "Path to the configuration file")
	serve := flags.Bool("serve", false, "Serve the web page instead of the console")
	reset := flags.Bool("reset", false, "Remove every stored key, after confirmation")
	if err := flags.Parse(args); err != nil {
		return err
	}

	// The level from the environment covers config loading itself.
	bootLevel := os.Getenv("QUOTES_LOG_LEVEL")
	if bootLevel == "" {
		bootLevel = config.DefaultLogLevel
	}
	setLoggers(newLogger(bootLevel, stderr))

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger(cfg.Logging.Level, stderr)
	setLoggers(log)

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	styles := theme.New(cfg.Theme, stdout)

	if *reset {
		cons := console.New(stdin, stdout, styles)
		if !cons.Confirm("Remove every stored quote list? This cannot be undone!") {
			return nil
		}
		if err := store.Clear(); err != nil {
			return fmt.Errorf("reset storage: %w", err)
		}
		log.Info().Str("backend", cfg.Storage.Backend).Msg("Storage reset")
		return nil
	}

	if *serve {
		srv, err := web.NewServer(store, cfg.Storage.Key, cfg.Web)
		if err != nil {
			return err
		}
		return srv.ListenAndServe(net.JoinHostPort(cfg.Server.Host, cfg.Server.Port))
	}

	cons := console.New(stdin, stdout, styles)
	engine := quotes.NewEngine(store, quotes.WithKey(cfg.Storage.Key), quotes.WithView(cons))
	return cons.Run(engine)
}

func newLogger(level string, w io.Writer) zerolog.Logger {
	return logger.NewWithWriter(level, zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
}

func setLoggers(l zerolog.Logger) {
	config.SetLogger(logger.Component(l, "config"))
	db.SetLogger(logger.Component(l, "db"))
	storage.SetLogger(logger.Component(l, "storage"))
	quotes.SetLogger(logger.Component(l, "quotes"))
	console.SetLogger(logger.Component(l, "console"))
	web.SetLogger(logger.Component(l, "web"))
}
