package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"careconnect/internal/auth"
	"careconnect/internal/config"
	"careconnect/internal/repository"
	"careconnect/internal/settings"
	"careconnect/internal/store"
	"careconnect/internal/viewmode"
)

// App every CareConnect component, constructed once at startup and passed
// down explicitly.
type App struct {
	Config *config.Config
	Logger *zap.Logger

	KV       store.KV
	Settings *settings.Manager
	Profiles *settings.ProfileStore

	Patients *repository.PatientRepository
	Tasks    *repository.TaskRepository
	Messages *repository.MessageRepository
	Views    *viewmode.Selector

	Auth *auth.Validator

	Now func() time.Time
}

// Option tweaks NewApp
type Option func(*options)

type options struct {
	kv      store.KV
	now     func() time.Time
	dataset *repository.Dataset
}

// WithKV uses kv instead of opening the configured backend. App.Close still closes it.
func WithKV(kv store.KV) Option {
	return func(o *options) { o.kv = kv }
}

// WithClock drives task overdue/due-today evaluation and toggle timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithDataset replaces the embedded demo dataset.
func WithDataset(ds *repository.Dataset) Option {
	return func(o *options) { o.dataset = ds }
}

// NewApp opens the store, loads persisted settings and builds the repositories.
// A failed settings read is logged and the defaults stay in place.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	kv := o.kv
	if kv == nil {
		var err error
		kv, err = store.Open(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open settings store: %w", err)
		}
	}

	keys := store.NewKeys(cfg.App.Namespace)
	mgr := settings.NewManager(kv, keys, logger)
	if err := mgr.Load(ctx); err != nil {
		logger.Warn("Settings partially loaded", zap.Error(err))
	}

	ds := o.dataset
	if ds == nil {
		var err error
		ds, err = repository.LoadSeed(o.now())
		if err != nil {
			kv.Close()
			return nil, fmt.Errorf("failed to load dataset: %w", err)
		}
	}

	validator, err := auth.NewValidator(cfg.Auth.DemoEmail, cfg.Auth.DemoPassword, cfg.Auth.DemoPasswordHash)
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("failed to configure auth: %w", err)
	}

	patients := repository.NewPatientRepository(ds.Patients)

	logger.Debug("Application initialized",
		zap.String("namespace", cfg.App.Namespace),
		zap.String("store", cfg.Store.Backend),
		zap.Int("patients", len(ds.Patients)),
		zap.Int("tasks", len(ds.Tasks)),
		zap.Int("messages", len(ds.Messages)),
	)

	return &App{
		Config:   cfg,
		Logger:   logger,
		KV:       kv,
		Settings: mgr,
		Profiles: settings.NewProfileStore(kv, keys, logger),
		Patients: patients,
		Tasks:    repository.NewTaskRepository(ds.Tasks, o.now),
		Messages: repository.NewMessageRepository(ds.Messages),
		Views:    viewmode.NewSelector(patients),
		Auth:     validator,
		Now:      o.now,
	}, nil
}

// Close waits for pending settings writes, then releases the store.
func (a *App) Close() error {
	a.Settings.Wait()
	if err := a.KV.Close(); err != nil {
		return fmt.Errorf("failed to close settings store: %w", err)
	}
	return nil
}

type appKey struct{}

// WithApp attaches app to ctx.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

// FromContext panics when ctx carries no App; reaching for it outside the
// wiring set up by main is a programming error.
func FromContext(ctx context.Context) *App {
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		panic("service: no App in context; wrap the context with service.WithApp before use")
	}
	return app
}
