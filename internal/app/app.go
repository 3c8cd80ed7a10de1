// Package app wires configuration, logging and the database into the client
// service and runs the demonstration sequence against it.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/clientdb/internal/config"
	"github.com/dmitrijs2005/clientdb/internal/database"
	"github.com/dmitrijs2005/clientdb/internal/logging"
	"github.com/dmitrijs2005/clientdb/internal/models"
	"github.com/dmitrijs2005/clientdb/internal/opt"
	"github.com/dmitrijs2005/clientdb/internal/prompt"
	"github.com/dmitrijs2005/clientdb/internal/render"
	"github.com/dmitrijs2005/clientdb/internal/repositories/repomanager"
	"github.com/dmitrijs2005/clientdb/internal/services"
)

// ClientStore is the set of client operations the demo drives.
// *services.ClientService implements it.
type ClientStore interface {
	InitSchema(ctx context.Context) error
	AddClient(ctx context.Context, c models.NewClient) (int64, error)
	AddPhone(ctx context.Context, clientID int64, phone string) error
	ChangeClient(ctx context.Context, clientID int64, update models.ClientUpdate) (bool, error)
	DeletePhone(ctx context.Context, clientID int64, phone string) error
	DeleteClient(ctx context.Context, clientID int64) error
	FindClients(ctx context.Context, filter models.ClientFilter) ([]models.ClientRecord, error)
}

type App struct {
	store  ClientStore
	logger logging.Logger
	out    io.Writer
	format string
	db     *sql.DB
}

// New returns an App over an existing store. Results are rendered to out.
func New(store ClientStore, logger logging.Logger, out io.Writer, format string) *App {
	return &App{store: store, logger: logger, out: out, format: format}
}

// NewApp builds the production App from c: a JSON logger on stderr, an
// optional password prompt, and a PostgreSQL-backed client service. The
// caller must Close the App.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := render.Validate(c.OutputFormat); err != nil {
		return nil, err
	}

	base, err := logging.NewJSONLogger(os.Stderr, c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := base.With("run_id", uuid.NewString())

	password := c.DatabasePassword
	if c.PromptPassword {
		password, err = prompt.Password(os.Stderr)
		if err != nil {
			return nil, err
		}
	}

	db, err := database.Open(ctx, c.DatabaseDSN, password)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	svc := services.NewClientService(db, repomanager.NewPostgresRepositoryManager(), logger)

	a := New(svc, logger, os.Stdout, c.OutputFormat)
	a.db = db
	return a, nil
}

// Close releases the database handle opened by NewApp.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}

// Run resets the schema, creates two sample clients, edits them, looks up
// clients with the last name "Efimtsev" and renders the result.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "starting demo")

	if err := render.Validate(app.format); err != nil {
		return err
	}

	if err := app.store.InitSchema(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	vlad, err := app.store.AddClient(ctx, models.NewClient{
		FirstName: "Vlad",
		LastName:  "Efimtsev",
		Email:     "efimtsevva@mail.ru",
		Phones:    []string{"89858440828"},
	})
	if err != nil {
		return fmt.Errorf("add client: %w", err)
	}

	egor, err := app.store.AddClient(ctx, models.NewClient{
		FirstName: "Egor",
		LastName:  "Antonenko",
		Email:     "egor_antonenko@mail.ru",
		Phones:    []string{"89265345678", "89152301818"},
	})
	if err != nil {
		return fmt.Errorf("add client: %w", err)
	}

	if err := app.store.AddPhone(ctx, vlad, "89858220202"); err != nil {
		return fmt.Errorf("add phone: %w", err)
	}

	if _, err := app.store.ChangeClient(ctx, egor, models.ClientUpdate{
		FirstName: opt.Set("Oleg"),
		Phones:    opt.Set([]string{"89265345677", "89152301717"}),
	}); err != nil {
		return fmt.Errorf("change client: %w", err)
	}

	if err := app.store.DeletePhone(ctx, egor, "89152301717"); err != nil {
		return fmt.Errorf("delete phone: %w", err)
	}

	if err := app.store.DeleteClient(ctx, egor); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}

	records, err := app.store.FindClients(ctx, models.ClientFilter{LastName: opt.Set("Efimtsev")})
	if err != nil {
		return fmt.Errorf("find clients: %w", err)
	}

	app.logger.Info(ctx, "demo finished", "found", len(records))
	return render.Write(app.out, app.format, records)
}
