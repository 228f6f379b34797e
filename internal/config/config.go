// Package config loads starz settings from an optional YAML file,
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Source names accepted by the source setting.
const (
	SourceListing = "listing"
	SourceREST    = "rest"
	SourceGraphQL = "graphql"
)

// DefaultEndpoint is the listing server queried when none is configured.
const DefaultEndpoint = "http://localhost:8000"

// Config selects and parameterises the source lookups are served from.
type Config struct {
	Source      string `mapstructure:"source" validate:"required,oneof=listing rest graphql"`
	Endpoint    string `mapstructure:"endpoint" validate:"required,url"`
	// GitHubToken is required for graphql: GitHub rejects anonymous GraphQL requests.
	GitHubToken string `mapstructure:"github_token" validate:"required_if=Source graphql"`
}

// Load reads configFile (or starz.yaml from the working directory or
// $HOME/.config/starz), then STARZ_* and GITHUB_TOKEN environment
// variables, then any changed flags in flags. Later sources win.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("starz")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/starz")
	}

	v.SetDefault("source", SourceListing)
	v.SetDefault("endpoint", DefaultEndpoint)

	v.SetEnvPrefix("starz")
	v.AutomaticEnv()
	// The token is shared with other GitHub tooling, so it is read without prefix.
	if err := v.BindEnv("github_token", "GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind GITHUB_TOKEN environment variable: %w", err)
	}

	if flags != nil {
		for _, name := range []string{"source", "endpoint"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return nil, fmt.Errorf("failed to bind --%s flag: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg and reports every invalid field in one error.
func (cfg *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return err
	}
	if err := validate.Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return fmt.Errorf("failed to validate configuration: %w", err)
		}
		messages := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			messages = append(messages, fe.Translate(trans))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
	}
	return nil
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate, trans, nil
}
