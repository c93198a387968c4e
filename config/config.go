package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/heathj/tagtree/parser"
	"github.com/heathj/tagtree/parser/tags"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	envPrefix = "TAGTREE"
	// FileName is the optional dotenv file New looks for. It is set as an
	// explicit path so a file named after the binary is never picked up.
	FileName = "tagtree.env"
)

type Config struct {
	AllTagsPath         string        `mapstructure:"ALL_TAGS_PATH"`
	SelfClosingTagsPath string        `mapstructure:"SELF_CLOSING_TAGS_PATH"`
	UnbalancedPolicy    string        `mapstructure:"UNBALANCED_POLICY"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
	FetchTimeout        time.Duration `mapstructure:"FETCH_TIMEOUT"`
}

// New returns a viper instance with the defaults set, TAGTREE_* environment
// variables bound and an optional tagtree.env file in path registered. A
// FETCH_TIMEOUT of zero or less disables the fetch timeout.
func New(path string) *viper.Viper {
	v := viper.New()
	v.SetDefault("ALL_TAGS_PATH", "")
	v.SetDefault("SELF_CLOSING_TAGS_PATH", "")
	v.SetDefault("UNBALANCED_POLICY", parser.Strict.String())
	v.SetDefault("LOG_LEVEL", logrus.InfoLevel.String())
	v.SetDefault("FETCH_TIMEOUT", 30*time.Second)

	v.SetConfigFile(filepath.Join(path, FileName))
	v.SetConfigType("env")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads the config file if there is one and decodes everything v knows
// into a Config. A missing file is not an error.
func Load(v *viper.Viper) (config Config, err error) {
	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			err = errors.Wrap(err, "reading config file")
			return
		}
		err = nil
	}

	err = v.Unmarshal(&config)
	if err != nil {
		err = errors.Wrap(err, "decoding config")
		return
	}
	if _, err = config.Policy(); err != nil {
		return
	}
	_, err = config.Level()
	return
}

func (config *Config) Policy() (parser.UnbalancedPolicy, error) {
	return parser.ParseUnbalancedPolicy(config.UnbalancedPolicy)
}

func (config *Config) Level() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return lvl, errors.Wrap(err, "parsing log level")
	}
	return lvl, nil
}

// FetchContext bounds ctx by FetchTimeout. A timeout of zero or less leaves
// ctx without a deadline.
func (config *Config) FetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if config.FetchTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, config.FetchTimeout)
}

// TagTable loads the tag tables named in the config. Both paths must be set
// to replace the embedded defaults; setting only one is an error.
func (config *Config) TagTable() (*tags.Table, error) {
	switch {
	case config.AllTagsPath == "" && config.SelfClosingTagsPath == "":
		return tags.Default()
	case config.AllTagsPath == "" || config.SelfClosingTagsPath == "":
		return nil, errors.New("ALL_TAGS_PATH and SELF_CLOSING_TAGS_PATH must be set together")
	default:
		return tags.LoadFiles(config.AllTagsPath, config.SelfClosingTagsPath)
	}
}
