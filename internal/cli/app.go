package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/tasktracker/internal/auth"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/config"
	"github.com/dmitrijs2005/tasktracker/internal/cryptox"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/models"
	"github.com/dmitrijs2005/tasktracker/internal/repositories/sessionstate"
	"github.com/dmitrijs2005/tasktracker/internal/repositories/users"
	"github.com/dmitrijs2005/tasktracker/internal/session"
	"github.com/dmitrijs2005/tasktracker/internal/storage"
	"github.com/dmitrijs2005/tasktracker/internal/tasks"
)

// Default administrator account created on first run so a fresh install is
// usable immediately.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

type App struct {
	config      *config.Config
	db          *sql.DB
	logger      logging.Logger
	authService *auth.Service
	sessions    *session.Manager
	taskService *tasks.Service
	userRepo    users.Repository
	reader      *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	db, err := storage.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	userRepo := users.NewSQLiteRepository(db)
	if err := seedDefaultAdmin(ctx, userRepo); err != nil {
		_ = db.Close()
		return nil, err
	}

	as := auth.NewService(userRepo, logger)
	sm := session.NewManager(sessionstate.NewSQLiteRepository(db), logger, c.SessionValidityDuration)
	ts := tasks.NewService(db, sm, logger)

	return &App{
		config:      c,
		db:          db,
		logger:      logger,
		authService: as,
		sessions:    sm,
		taskService: ts,
		userRepo:    userRepo,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

// seedDefaultAdmin inserts the built-in administrator unless an account with
// that username already exists.
func seedDefaultAdmin(ctx context.Context, repo users.Repository) error {
	_, err := repo.FindByUsername(ctx, defaultAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return err
	}

	hash, salt := cryptox.NewCredential(defaultAdminPassword)
	_, err = repo.Insert(ctx, &models.User{
		Username:     defaultAdminUsername,
		PasswordHash: hash,
		Salt:         salt,
		Title:        "Administrator",
		IsAdmin:      true,
	})
	if errors.Is(err, common.ErrorAlreadyExists) {
		return nil
	}
	return err
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.IsLoggedIn(context.Background())
}
