package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/eringen/folio"
	"github.com/eringen/folio/api"
)

// settings layers folio.yaml, FOLIO_* environment variables and flags.
type settings struct {
	v       *viper.Viper
	cfgFile string
}

func newSettings() *settings {
	v := viper.New()
	v.SetDefault("name", "Portfolio")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("addr", ":3000")
	v.SetDefault("api_url", "http://localhost:5000/api")
	v.SetDefault("api_timeout", 15*time.Second)
	v.SetDefault("database_path", "data/folio.db")
	v.SetDefault("static_dir", "public")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("log_level", "info")
	return &settings{v: v}
}

// load reads the config file, if any, and enables environment overrides.
// A missing default folio.yaml is not an error; a missing --config file is.
func (s *settings) load() error {
	if s.cfgFile != "" {
		s.v.SetConfigFile(s.cfgFile)
	} else {
		s.v.AddConfigPath(".")
		s.v.SetConfigName("folio")
		s.v.SetConfigType("yaml")
	}
	s.v.SetEnvPrefix("FOLIO")
	s.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	s.v.AutomaticEnv()

	if err := s.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if s.cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func (s *settings) siteConfig() folio.SiteConfig {
	return folio.SiteConfig{
		Name:          s.v.GetString("name"),
		URL:           strings.TrimRight(s.v.GetString("url"), "/"),
		Description:   s.v.GetString("description"),
		Author:        s.v.GetString("author"),
		Addr:          s.v.GetString("addr"),
		APIURL:        s.v.GetString("api_url"),
		DatabasePath:  s.v.GetString("database_path"),
		SessionSecret: s.v.GetString("session_secret"),
		CookieSecure:  s.v.GetBool("cookie_secure"),
		APITimeout:    s.v.GetDuration("api_timeout"),
	}
}

func (s *settings) apiClient() (*api.Client, error) {
	return api.New(s.v.GetString("api_url"), api.WithTimeout(s.v.GetDuration("api_timeout")))
}
