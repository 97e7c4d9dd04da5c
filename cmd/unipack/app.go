package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vmunix/unipack/internal/archive"
	"github.com/vmunix/unipack/internal/batch"
	"github.com/vmunix/unipack/internal/config"
	"github.com/vmunix/unipack/internal/descriptor"
	"github.com/vmunix/unipack/internal/export"
	"github.com/vmunix/unipack/internal/history"
	"github.com/vmunix/unipack/internal/host"
	"github.com/vmunix/unipack/internal/versioninfo"
)

// app holds the components shared by commands that work on a project.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	project *host.Project
	store   *descriptor.Store
	db      *sql.DB
	history *history.Store
}

// loadConfig loads the config named by --config, or the discovered one.
// Without a config file the defaults are used.
func loadConfig() (*config.Config, string, error) {
	path := cfgFile
	if path == "" {
		found, err := config.Discover()
		if errors.Is(err, config.ErrNotFound) {
			return config.Default(), "", nil
		}
		if err != nil {
			return nil, "", err
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// newLogger returns a slog logger backed by a charm log handler on stderr.
func newLogger(level string) (*slog.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	handler := log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		Prefix:          "unipack",
		ReportTimestamp: true,
	})
	return slog.New(handler), nil
}

// newApp loads the config, applies flag overrides and opens the project.
func newApp() (*app, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			printConfigErrors(cfgErr)
		}
		return nil, err
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}

	root := cfg.Project.Root
	if projectDir != "" {
		root = projectDir
	}
	if root == "" {
		root = "."
	}

	project, err := host.NewProject(root, logger.With("component", "host"))
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		log:     logger,
		project: project,
		store:   descriptor.NewStore(project, logger.With("component", "descriptor")),
	}

	if cfg.History.Enabled {
		db, err := history.Open(cfg.HistoryPath(project.Root()))
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		a.db = db
		a.history = history.NewStore(db)
	}
	return a, nil
}

func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *app) exporter() (*export.Exporter, error) {
	writer, err := archive.New(a.cfg.Legacy.Format)
	if err != nil {
		return nil, err
	}
	opts := export.Options{EscapeStrings: a.cfg.Manifest.EscapeStrings}
	return export.NewExporter(a.project, writer, opts, a.log.With("component", "export")), nil
}

func (a *app) generator() *versioninfo.Generator {
	provider := versioninfo.GitProvider{Dir: a.project.Root()}
	opts := versioninfo.Options{Template: a.cfg.Codegen.Template, Filename: a.cfg.Codegen.Filename}
	return versioninfo.NewGenerator(a.project, provider, opts, a.log.With("component", "versioninfo"))
}

func (a *app) driver() (*batch.Driver, error) {
	exp, err := a.exporter()
	if err != nil {
		return nil, err
	}
	var recorder batch.Recorder
	if a.history != nil {
		recorder = a.history
	}
	return batch.NewDriver(a.store, exp, a.generator(), recorder, a.log), nil
}
