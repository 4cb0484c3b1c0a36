package commands

import (
	"os"

	"github.com/rs/zerolog"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/logging"
	"tableflip.dev/roadmap/pkg/store"
	"tableflip.dev/roadmap/pkg/timeline"
)

// session is what a command needs to run: the resolved config, a logger and
// a service bound to the selected roadmap.
type session struct {
	cfg      *store.FileConfig
	svc      *app.Service
	log      zerolog.Logger
	closeLog func() error
}

// openSession loads config and storage. The board owns the terminal, so it
// only logs to the configured log file; everything else logs to stderr.
func openSession(board bool) (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}

	lc := logging.Config{Level: cfg.LogLevel}
	if ro.LogLevel != "" {
		lc.Level = ro.LogLevel
	}
	if board {
		lc.File = cfg.LogFile
	} else {
		lc.Console = os.Stderr
	}
	log, closeLog, err := logging.New(lc)
	if err != nil {
		return nil, err
	}

	p, err := store.Load(cfg, store.WithLogger(log))
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	name := cfg.Roadmap
	if ro.Roadmap != "" {
		name = ro.Roadmap
	}
	return &session{
		cfg:      cfg,
		svc:      &app.Service{Persistence: p, Roadmap: name, Log: log},
		log:      log,
		closeLog: closeLog,
	}, nil
}

func (s *session) Close() {
	_ = s.closeLog()
}

func (s *session) year(flag int) int {
	if flag > 0 {
		return flag
	}
	return s.cfg.Year
}

func (s *session) order(sortByStart bool) timeline.Order {
	if sortByStart || s.cfg.SortByStart {
		return timeline.StartOrder
	}
	return timeline.InputOrder
}
