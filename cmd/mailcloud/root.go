package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lattiq/mailcloud"
)

// app carries state shared by every command.
type app struct {
	configPath string
	envFile    string
	flags      settings
	settings   settings
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "mailcloud",
		Short:         "Customers Mail Cloud transactional email client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", os.Getenv(envConfig), "YAML config file")
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	pf.StringVar(&a.flags.APIUser, "api-user", "", "API user")
	pf.StringVar(&a.flags.APIKey, "api-key", "", "API key")
	pf.StringVar(&a.flags.SubDomain, "sub-domain", "", "default sending sub-domain")
	pf.StringVar(&a.flags.BaseURL, "base-url", "", "base URL of the resource endpoints")
	pf.StringVar(&a.flags.SendEndpoint, "send-endpoint", "", "send URL template containing {subdomain}")
	pf.DurationVar(&a.flags.Timeout, "timeout", 0, "request timeout")
	pf.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		a.sendCommand(),
		a.deliveriesCommand(),
		a.bouncesCommand(),
		a.statisticsCommand(),
		a.auditlogsCommand(),
		a.unsubscribesCommand(),
		versionCommand(),
	)
	return root
}

// load builds a.settings from the dotenv file, config file, environment
// and explicitly set flags.
func (a *app) load(cmd *cobra.Command) error {
	if err := loadDotEnv(a.envFile); err != nil {
		return err
	}
	s, err := loadSettings(a.configPath, os.LookupEnv)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("api-user") {
		s.APIUser = a.flags.APIUser
	}
	if flags.Changed("api-key") {
		s.APIKey = a.flags.APIKey
	}
	if flags.Changed("sub-domain") {
		s.SubDomain = a.flags.SubDomain
	}
	if flags.Changed("base-url") {
		s.BaseURL = a.flags.BaseURL
	}
	if flags.Changed("send-endpoint") {
		s.SendEndpoint = a.flags.SendEndpoint
	}
	if flags.Changed("timeout") {
		s.Timeout = a.flags.Timeout
	}
	if flags.Changed("verbose") {
		s.Verbose = a.flags.Verbose
	}
	a.settings = s
	return nil
}

// withClient runs fn with a client built from the loaded settings.
func (a *app) withClient(fn func(*mailcloud.Client) error) error {
	client, err := a.settings.newClient()
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(client)
}

// writeJSONLines writes each value as one JSON document per line.
func writeJSONLines[T any](w io.Writer, values []T) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

// writeDownload stores data at path and reports its size.
func writeDownload(w io.Writer, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(w, "wrote %s to %s\n", humanize.Bytes(uint64(len(data))), path)
	return nil
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Skip settings so version works without credentials or config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			info := mailcloud.GetVersionInfo()
			line := "mailcloud " + info.String()
			if info.IsDevBuild() {
				line += " (development build)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		},
	}
}
