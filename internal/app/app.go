// Package app wires the storefront adapters and views from the config.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter"
	"github.com/niksmo/storefront/internal/adapter/httpapi"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/session"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type Opt func(*App)

// LogOutputOpt redirects the application log. Defaults to stderr.
func LogOutputOpt(w io.Writer) Opt {
	return func(app *App) {
		app.logOutput = w
	}
}

// SessionBackendOpt replaces the file backend of the session.
func SessionBackendOpt(b session.Backend) Opt {
	return func(app *App) {
		app.sessionBackend = b
	}
}

type views struct {
	catalog  *service.Catalog
	cart     *service.Cart
	checkout *service.Checkout
	orders   *service.Orders
	auth     *service.Auth
}

type App struct {
	ctx context.Context
	cfg config.Config

	logOutput      io.Writer
	sessionBackend session.Backend

	session *session.Session
	api     *httpapi.Client
	events  *kafka.EventsProducer
	views   views
}

func New(ctx context.Context, cfg config.Config, opts ...Opt) (*App, error) {
	const op = "app.New"

	app := &App{ctx: ctx, cfg: cfg, logOutput: os.Stderr}
	for _, opt := range opts {
		opt(app)
	}

	app.initLogger()

	if err := app.initSession(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := app.initAPIClient(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app.initEvents()
	app.initViews()

	return app, nil
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(app.logOutput, opts))
	slog.SetDefault(logger)
}

func (app *App) initSession() error {
	const op = "App.initSession"

	backend := app.sessionBackend
	if backend == nil {
		path := app.cfg.Session.Path
		if path == "" {
			var err error
			if path, err = session.DefaultPath(); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}
		backend = session.NewFileBackend(path)
	}

	s, err := session.Open(app.ctx, backend)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	app.session = s
	return nil
}

func (app *App) initAPIClient() error {
	const op = "App.initAPIClient"

	tlsCfg := app.cfg.API.TLS
	tlsConfig, err := adapter.MakeTLSConfig(tlsCfg.CA, tlsCfg.Cert, tlsCfg.Key)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	cl, err := httpapi.New(
		app.cfg.API.BaseURL,
		app.session,
		httpapi.TimeoutOpt(app.cfg.API.Timeout),
		httpapi.TLSConfigOpt(tlsConfig),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	app.api = cl
	return nil
}

// initEvents connects the client events producer. The storefront keeps
// working without events when the broker or the registry is unreachable.
func (app *App) initEvents() {
	const op = "App.initEvents"
	log := slog.With("op", op)

	if !app.cfg.Events.Enabled {
		return
	}

	p, err := app.newEventsProducer()
	if err != nil {
		log.Warn("client events disabled", "err", err)
		return
	}
	app.events = p
}

func (app *App) newEventsProducer() (*kafka.EventsProducer, error) {
	cfg := app.cfg.Events
	ctx := app.ctx

	tlsConfig, err := adapter.MakeTLSConfig(cfg.TLS.CA, cfg.TLS.Cert, cfg.TLS.Key)
	if err != nil {
		return nil, err
	}

	srOpts := []sr.ClientOpt{sr.URLs(cfg.SchemaRegistryURLs...)}
	if tlsConfig != nil {
		srOpts = append(srOpts, sr.DialTLSConfig(tlsConfig))
	}
	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		return nil, err
	}

	serde, err := schema.NewSerdeClientEventV1(
		ctx,
		schema.SubjectOpt(cfg.Topic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewRegistryIdentifier(srClient)),
	)
	if err != nil {
		return nil, err
	}

	return kafka.NewEventsProducer(
		kafka.ProducerClientOpt(ctx, cfg.SeedBrokers, cfg.Topic, tlsConfig),
		kafka.ProducerEncoderOpt(serde),
	)
}

func (app *App) initViews() {
	var events port.EventPublisher
	if app.events != nil {
		events = app.events
	}

	opts := []service.Opt{
		service.WithEvents(events),
		service.WithToastTTL(app.cfg.Notices.SuccessTTL, app.cfg.Notices.FailureTTL),
	}

	app.views = views{
		catalog:  service.NewCatalog(app.api, app.api, opts...),
		cart:     service.NewCart(app.api),
		checkout: service.NewCheckout(app.api, opts...),
		orders:   service.NewOrders(app.api),
		auth:     service.NewAuth(app.api, app.session),
	}
}

func (app *App) Config() config.Config { return app.cfg }

func (app *App) Session() *session.Session { return app.session }

func (app *App) Catalog() *service.Catalog { return app.views.catalog }

func (app *App) Cart() *service.Cart { return app.views.cart }

func (app *App) Checkout() *service.Checkout { return app.views.checkout }

func (app *App) Orders() *service.Orders { return app.views.orders }

func (app *App) Auth() *service.Auth { return app.views.auth }

// EventsEnabled reports whether client events are being produced.
func (app *App) EventsEnabled() bool { return app.events != nil }

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	if app.events != nil {
		app.events.Close(ctx)
	}

	slog.Info("application is closed")
}
