package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	pkgerrors "github.com/veerakumarak/jsend/pkg/errors"
)

const (
	EnvPrefix = "JSEND"

	EnvJSONBackend  = "JSEND_JSON_BACKEND"
	EnvEscapeHTML   = "JSEND_ESCAPE_HTML"
	EnvLogLevel     = "JSEND_LOG_LEVEL"
	EnvLogWarnStack = "JSEND_LOG_WARN_STACK"
	EnvServiceName  = "JSEND_SERVICE_NAME"
)

const (
	BackendGoccy = "goccy"
	BackendStd   = "std"
)

type Config struct {
	Render RenderConfig
	Log    LogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Render.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type RenderConfig struct {
	Backend    string `envconfig:"JSEND_JSON_BACKEND" default:"goccy"`
	EscapeHTML bool   `envconfig:"JSEND_ESCAPE_HTML" default:"true"`
}

func (r *RenderConfig) normalize() error {
	r.Backend = strings.ToLower(strings.TrimSpace(r.Backend))
	switch r.Backend {
	case "":
		r.Backend = BackendGoccy
	case BackendGoccy, BackendStd:
	default:
		return pkgerrors.New(pkgerrors.CodeInvalidArgument, fmt.Sprintf("unknown json backend %q", r.Backend)).
			WithDetails(map[string]string{"field": EnvJSONBackend})
	}
	return nil
}

type LogConfig struct {
	Level       string `envconfig:"JSEND_LOG_LEVEL" default:"info"`
	WarnStack   bool   `envconfig:"JSEND_LOG_WARN_STACK" default:"false"`
	ServiceName string `envconfig:"JSEND_SERVICE_NAME" default:"jsend"`
}
