// Package cli is the ipamctl command tree. Commands render the
// console's state; they never talk to the server directly except for
// the auth verbs, which go through the API client.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mfreund/ipam-console/internal/client"
	"github.com/mfreund/ipam-console/internal/console"
	"github.com/mfreund/ipam-console/internal/settings"
)

var (
	cfgFile   string
	logLevel  string
	apiClient *client.Client
	inventory *console.Console
	prefs     settings.Settings
	prefsPath string
)

var rootCmd = &cobra.Command{
	Use:               "ipamctl",
	Short:             "ipamctl manages subnets and IP records on an ipamd server",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the command tree. It is called by main and only once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file (default is $HOME/.ipamctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "set logging level - debug, info, warn, error")
	rootCmd.PersistentFlags().String("server", "http://localhost:8080", "base URL of the ipamd server")
	rootCmd.PersistentFlags().String("token", "", "bearer token for the server")

	_ = viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
}

func setup(cmd *cobra.Command, _ []string) error {
	viper.SetEnvPrefix("IPAMCTL")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ipamctl")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(logLevel)}))

	path, err := settings.DefaultPath()
	if err != nil {
		return err
	}
	prefsPath = path
	prefs, err = settings.Load(prefsPath)
	if err != nil {
		return err
	}

	apiClient = client.New(viper.GetString("server"), logger, client.WithToken(viper.GetString("token")))
	inventory = console.New(apiClient, logger, console.NotifierFunc(printNotice))
	return nil
}

func printNotice(notice console.Notice) {
	if notice.Severity == console.SeverityError {
		fmt.Fprintln(os.Stderr, "error:", notice.Message)
		return
	}
	fmt.Println(notice.Message)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
