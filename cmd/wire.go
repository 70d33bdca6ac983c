package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	authadapter "github.com/bnema/chargectl/internal/adapters/auth"
	consoleadapter "github.com/bnema/chargectl/internal/adapters/render/console"
	chainstore "github.com/bnema/chargectl/internal/adapters/secrets/chain"
	filestore "github.com/bnema/chargectl/internal/adapters/secrets/file"
	keyringstore "github.com/bnema/chargectl/internal/adapters/secrets/keyring"
	passstore "github.com/bnema/chargectl/internal/adapters/secrets/pass"
	redisstore "github.com/bnema/chargectl/internal/adapters/secrets/redis"
	"github.com/bnema/chargectl/internal/application"
	"github.com/bnema/chargectl/internal/config"
	"github.com/bnema/chargectl/internal/domain"
	"github.com/bnema/chargectl/internal/logger"
	"github.com/bnema/chargectl/internal/ports"
	"github.com/bnema/chargectl/internal/router"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type app struct {
	cfg          config.Config
	homeDir      string
	logger       zerolog.Logger
	secretStore  ports.SecretStore
	session      *application.SessionService
	pageRenderer func(consoleadapter.Page) (string, error)
	now          func() time.Time
}

func wireApp(logOutput io.Writer) (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := config.Load(viper.New(), homeDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format, logOutput)

	secretStore, err := newSecretStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("wire secret store: %w", err)
	}

	client := authadapter.Client{
		API: authadapter.API{
			BaseURL:     cfg.API.BaseURL,
			LoginPath:   cfg.API.LoginPath,
			ProfilePath: cfg.API.ProfilePath,
		},
		ClientID:       cfg.API.ClientID,
		ClientSecret:   cfg.API.ClientSecret,
		HTTPClient:     &http.Client{},
		RequestTimeout: cfg.API.Timeout,
	}

	log.Debug().
		Str("backend", cfg.Storage.Backend).
		Str("api", cfg.API.BaseURL).
		Str("config", cfg.Path).
		Msg("wired")

	return &app{
		cfg:          cfg,
		homeDir:      homeDir,
		logger:       log,
		secretStore:  secretStore,
		session:      application.NewSessionService(client, secretStore, cfg.Storage.Key, ports.SystemClock{}, log),
		pageRenderer: consoleadapter.Render,
		now:          time.Now,
	}, nil
}

func newSecretStore(storage config.StorageConfig) (ports.SecretStore, error) {
	switch storage.Backend {
	case config.BackendAuto:
		return chainstore.NewKeyringFirstWithFileFallback(keyringstore.DefaultService, storage.Dir)
	case config.BackendPass:
		return chainstore.NewPassFirstWithFileFallback(passstore.DefaultPrefix, storage.Dir)
	case config.BackendKeyring:
		return keyringstore.NewStore(keyringstore.DefaultService), nil
	case config.BackendFile:
		return filestore.NewStore(storage.Dir), nil
	case config.BackendRedis:
		return redisstore.NewStoreFromURL(storage.RedisURL, redisstore.DefaultKeyPrefix)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", storage.Backend)
	}
}

// close releases connections held by the secret store, e.g. a redis client.
func (a *app) close() error {
	if closer, ok := a.secretStore.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// startConsole restores the stored session, then installs the guard. The
// order matters: the guard must see the restored session on the first
// navigation.
func (a *app) startConsole(ctx context.Context) (*router.Router, error) {
	if err := a.session.RestoreToken(ctx); err != nil {
		if !errors.Is(err, domain.ErrProfileFetchFailed) {
			return nil, fmt.Errorf("restore session: %w", err)
		}
		a.logger.Warn().Err(err).Msg("stored session is no longer valid")
	}

	return a.consoleRouter()
}

func (a *app) consoleRouter() (*router.Router, error) {
	guard := application.NewGuard(a.session, application.LoginPath, a.logger)
	r, err := application.NewConsoleRouter(guard)
	if err != nil {
		return nil, fmt.Errorf("build console router: %w", err)
	}
	return r, nil
}

func (a *app) page(resolved router.Resolved) consoleadapter.Page {
	session := a.session.Session()
	page := consoleadapter.Page{
		Resolved: resolved,
		Session:  session,
		Now:      a.now(),
	}
	if info, ok := authadapter.InspectAccessToken(session.Token); ok {
		page.Token = &info
	}
	return page
}

func (a *app) renderPage(w io.Writer, resolved router.Resolved) error {
	rendered, err := a.pageRenderer(a.page(resolved))
	if err != nil {
		return fmt.Errorf("render %s: %w", resolved.Route.Name, err)
	}

	_, err = fmt.Fprintln(w, rendered)
	return err
}
