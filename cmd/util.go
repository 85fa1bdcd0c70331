package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	DefaultHost      = "localhost"
	DefaultPort      = "5678"
	DefaultMaxMemory = 0
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

var ErrUnsupportedType = errors.New("ERR unsupported request type")

type ServerOptions struct {
	Host      string
	Port      string
	MaxMemory int
	LogLevel  string
	LogFormat string
}

func (o *ServerOptions) Addr() string {
	return o.Host + ":" + o.Port
}

// Register the server flags on cmd, taking defaults from STRQ_* variables
func (o *ServerOptions) bindFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&o.Host, "host", envOr("STRQ_HOST", DefaultHost), "Host to bind")
	flags.StringVarP(&o.Port, "port", "p", envOr("STRQ_PORT", DefaultPort), "Port to run server")
	flags.IntVar(&o.MaxMemory, "maxmemory", envIntOr("STRQ_MAXMEMORY", DefaultMaxMemory), "Memory limit in bytes for stored values, 0 for none")
	flags.StringVar(&o.LogLevel, "log-level", envOr("STRQ_LOG_LEVEL", DefaultLogLevel), "Log level")
	flags.StringVar(&o.LogFormat, "log-format", envOr("STRQ_LOG_FORMAT", DefaultLogFormat), "Log format, text or json")
}

func (o *ServerOptions) configureLogger(logger *logrus.Logger) error {
	level, err := logrus.ParseLevel(o.LogLevel)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	logger.SetLevel(level)

	switch o.LogFormat {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.Errorf("unknown log format '%s'", o.LogFormat)
	}

	return nil
}

func (o *ServerOptions) validate() error {
	if _, err := strconv.Atoi(o.Port); err != nil {
		return errors.Wrapf(err, "invalid port '%s'", o.Port)
	}
	if o.MaxMemory < 0 {
		return errors.New("maxmemory must not be negative")
	}
	return nil
}

// Convert a parsed request to command arguments
func RequestArgs(req any) ([]string, error) {
	switch req := req.(type) {
	case string:
		return sanitize(req)
	case []any:
		args := make([]string, len(req))
		for i, v := range req {
			switch v := v.(type) {
			case string:
				args[i] = v
			case int:
				args[i] = strconv.Itoa(v)
			default:
				return nil, ErrUnsupportedType
			}
		}
		return args, nil
	}

	return nil, ErrUnsupportedType
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring %s: %v\n", key, err)
		return fallback
	}
	return n
}
