package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/amterp/dairy/internal/config"
	dairyerr "github.com/amterp/dairy/internal/errors"
	"github.com/amterp/dairy/internal/logger"
	"github.com/amterp/dairy/internal/prompt"
	"github.com/amterp/dairy/internal/service"
)

// PasswordEnv supplies the --user password without prompting.
const PasswordEnv = "DAIRY_PASSWORD"

// options are the global flags shared by every command.
type options struct {
	DataDir        string
	User           string
	Role           string
	NonInteractive bool
	JSON           bool
}

// App holds all the dependencies for the CLI.
type App struct {
	Paths    *config.Paths
	Settings *config.Settings
	Logger   *zap.Logger
	Prompter prompt.Prompter
	Session  *service.Session

	AnimalService *service.AnimalService
	StaffService  *service.StaffService
	MilkService   *service.MilkService
	AuthService   *service.AuthService
}

// NewApp creates a new App with all dependencies wired up. Every store
// and login file is created empty if missing.
// If interactive is false, uses NoopPrompter that fails on prompts.
func NewApp(dataDir string, interactive bool) (*App, error) {
	paths := config.NewPaths(config.DataDirFromEnv(dataDir))

	settings, err := config.LoadSettings(paths, filepath.Join(paths.DataDir(), config.EnvFileName))
	if err != nil {
		return nil, err
	}

	log, err := logger.New(settings.LogLevel)
	if err != nil {
		return nil, err
	}

	if err := service.EnsureStores(paths); err != nil {
		return nil, err
	}

	var prompter prompt.Prompter
	if interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	services := service.NewServices(paths, log)

	return &App{
		Paths:         paths,
		Settings:      settings,
		Logger:        log,
		Prompter:      prompter,
		AnimalService: services.Animals,
		StaffService:  services.Staff,
		MilkService:   services.Milk,
		AuthService:   services.Auth,
	}, nil
}

// Login authenticates opts.User under opts.Role. The password comes from
// $DAIRY_PASSWORD or a prompt.
func (a *App) Login(opts options) (*service.Session, error) {
	role, err := service.ParseRole(opts.Role)
	if err != nil {
		return nil, err
	}

	password := os.Getenv(PasswordEnv)
	if password == "" {
		password, err = a.Prompter.Password(fmt.Sprintf("Password for %s", opts.User))
		if err != nil {
			return nil, err
		}
	}

	session, err := a.AuthService.Login(role, opts.User, password)
	if err != nil {
		return nil, err
	}
	a.Session = session
	return session, nil
}

// Authorize checks action against the logged-in role. Without --user the
// CLI runs unrestricted, like a local operator.
func (a *App) Authorize(opts options, action service.Action) error {
	if opts.User == "" {
		return nil
	}
	session, err := a.Login(opts)
	if err != nil {
		return err
	}
	return session.Role.Authorize(action)
}

// RequireSession logs in and fails when no --user was given.
func (a *App) RequireSession(opts options, action service.Action) (*service.Session, error) {
	if opts.User == "" {
		return nil, dairyerr.InvalidField("user", "--user is required for this command")
	}
	if err := a.Authorize(opts, action); err != nil {
		return nil, err
	}
	return a.Session, nil
}

// setup builds the App and applies the role check for action, exiting on
// failure.
func setup(opts options, action service.Action) *App {
	app, err := NewApp(opts.DataDir, !opts.NonInteractive)
	if err != nil {
		Fatal(err)
	}
	if err := app.Authorize(opts, action); err != nil {
		Fatal(err)
	}
	return app
}

// Fatal prints an error and exits.
func Fatal(err error) {
	PrintError("%v", err)
	os.Exit(1)
}
