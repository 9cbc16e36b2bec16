// Package cli implements the surge command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/surge-sh/surge-go/pkg/buildinfo"
	"github.com/surge-sh/surge-go/pkg/cache"
	"github.com/surge-sh/surge-go/pkg/credentials"
	"github.com/surge-sh/surge-go/pkg/errors"
	"github.com/surge-sh/surge-go/pkg/surge"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "surge"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfg *Config
}

// New creates a new CLI instance with a default logger. Configuration
// is loaded lazily on first use so that --version and completion never
// fail on a broken config file.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "surge",
		Short:        "Surge publishes static sites to the web",
		Long:         `Surge publishes a directory of static files to a domain on the surge.sh network, and manages the domains, DNS records and certificates of published projects.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.publishCommand())
	root.AddCommand(c.loginCommand())
	root.AddCommand(c.logoutCommand())
	root.AddCommand(c.whoamiCommand())
	root.AddCommand(c.tokenCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.teardownCommand())
	root.AddCommand(c.rollbackCommand())
	root.AddCommand(c.rollforeCommand())
	root.AddCommand(c.cutoverCommand())
	root.AddCommand(c.discardCommand())
	root.AddCommand(c.dnsCommand())
	root.AddCommand(c.sslCommand())
	root.AddCommand(c.accountCommand())
	root.AddCommand(c.plansCommand())
	root.AddCommand(c.nukeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client and Credential Factories
// =============================================================================

// config returns the loaded CLI configuration, reading it on first use.
func (c *CLI) config() *Config {
	if c.cfg == nil {
		cfg, err := LoadConfig("")
		if err != nil {
			// A broken config file should not brick the CLI; warn and
			// run on defaults.
			c.Logger.Warn("ignoring config file", "err", err)
			cfg = DefaultConfig()
		}
		c.cfg = cfg
	}
	return c.cfg
}

// newClient builds an API client from the CLI configuration.
func (c *CLI) newClient() (*surge.Client, error) {
	cfg := c.config()
	return surge.New(surge.Config{
		Endpoint: cfg.Endpoint,
		Timeout:  cfg.RequestTimeout(),
		Insecure: cfg.Insecure,
	}, c.Logger)
}

// credentialStore opens the credential store bound to the configured
// endpoint.
func (c *CLI) credentialStore() (*credentials.CLIStore, error) {
	return credentials.NewCLIStore(c.config().Endpoint)
}

// auth returns the stored login as an Auth value, or a coded error
// telling the user to log in.
func (c *CLI) auth(ctx context.Context) (surge.Auth, *credentials.Credential, error) {
	store, err := c.credentialStore()
	if err != nil {
		return nil, nil, err
	}
	cred, err := store.GetCredential(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeCredentialsNotFound, err,
			"not logged in (run 'surge login' first)")
	}
	return surge.Token(cred.Token), cred, nil
}

// =============================================================================
// Cache Factory
// =============================================================================

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/surge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
