package command

import (
	"github.com/lippserd/mgnrega-api/pkg/api"
	"github.com/lippserd/mgnrega-api/pkg/config"
	"github.com/lippserd/mgnrega-api/pkg/pool"
	"github.com/lippserd/mgnrega-api/pkg/store"
	"go.uber.org/zap"
	"net/http"
)

type Command struct {
	Flags  *config.Flags
	Config *config.Config
	Logger *zap.SugaredLogger
}

func New() (*Command, error) {
	flags, err := config.ParseFlags()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, err
	}

	logger, err := NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	return &Command{
		Flags:  flags,
		Config: cfg,
		Logger: logger,
	}, nil
}

// NewLogger builds the process logger.
func NewLogger(c config.Logging) (*zap.SugaredLogger, error) {
	level, err := c.ZapLevel()
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}

	return logger.Sugar(), nil
}

func (c Command) Database() (*pool.Pool, error) {
	return c.Config.Database.Open(c.Logger)
}

// Server returns the HTTP server of the API backed by p.
func (c Command) Server(p *pool.Pool) *http.Server {
	s := api.New(store.New(p, c.Logger), c.Logger)

	return &http.Server{
		Addr:              c.Config.HTTP.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: c.Config.HTTP.ReadHeaderTimeout,
	}
}
