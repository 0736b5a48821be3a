package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lattiq/mailcloud"
)

// Environment variables read by the CLI.
const (
	envAPIUser   = "API_USER"
	envAPIKey    = "API_KEY"
	envSubDomain = "MAILCLOUD_SUB_DOMAIN"
	envConfig    = "MAILCLOUD_CONFIG"
)

// settings is the CLI configuration. Values come from the config file,
// then the environment, then flags, each overriding the previous.
type settings struct {
	APIUser      string        `yaml:"api_user"`
	APIKey       string        `yaml:"api_key"`
	SubDomain    string        `yaml:"sub_domain"`
	BaseURL      string        `yaml:"base_url"`
	SendEndpoint string        `yaml:"send_endpoint"`
	Timeout      time.Duration `yaml:"timeout"`
	Verbose      bool          `yaml:"verbose"`
}

// loadDotEnv loads path into the process environment. A missing file is
// not an error. Variables already set are kept.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// loadSettings reads the YAML config at path, if any, and applies the
// environment on top.
func loadSettings(path string, lookup func(string) (string, bool)) (settings, error) {
	var s settings
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if v, ok := lookup(envAPIUser); ok && v != "" {
		s.APIUser = v
	}
	if v, ok := lookup(envAPIKey); ok && v != "" {
		s.APIKey = v
	}
	if v, ok := lookup(envSubDomain); ok && v != "" {
		s.SubDomain = v
	}
	return s, nil
}

func (s settings) options() []mailcloud.Option {
	var opts []mailcloud.Option
	if s.SubDomain != "" {
		opts = append(opts, mailcloud.WithSubDomain(s.SubDomain))
	}
	if s.BaseURL != "" {
		opts = append(opts, mailcloud.WithBaseURL(s.BaseURL))
	}
	if s.SendEndpoint != "" {
		opts = append(opts, mailcloud.WithSendEndpoint(s.SendEndpoint))
	}
	if s.Timeout > 0 {
		opts = append(opts, mailcloud.WithTimeout(s.Timeout))
	}
	if s.Verbose {
		opts = append(opts, mailcloud.WithLogging("debug", "text", "stderr"))
	}
	return opts
}

func (s settings) newClient() (*mailcloud.Client, error) {
	client, err := mailcloud.New(s.APIUser, s.APIKey, s.options()...)
	if errors.Is(err, mailcloud.ErrMissingCredentials) {
		return nil, fmt.Errorf("%w: set --api-user/--api-key, %s/%s or the config file", err, envAPIUser, envAPIKey)
	}
	return client, err
}
