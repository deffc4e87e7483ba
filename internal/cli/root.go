// internal/cli/root.go
package evalpost

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mwiater/evalpost/internal/appconfig"
	"github.com/mwiater/evalpost/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd post-processes a results bundle when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "evalpost",
	Short: "evalpost: recompute benchmark accuracy excluding empty responses",
	Long: `Reload an evaluation *_allresults.json bundle, drop examples whose model
response was empty or a placeholder (e.g. after running out of credits),
recompute accuracy over the remaining examples, print a JSON summary and
write a postprocessed HTML report next to the input.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		cfg := appconfig.Defaults()
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		if err := cfg.Validate(); err != nil {
			return err
		}
		currentConfig = &cfg

		if err := logging.Init(cfg.LogFile); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	RunE: runPostprocess,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	err := rootCmd.Execute()
	_ = logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./evalpost.{json,yaml,toml} or ~/.config/evalpost/)")

	rootCmd.PersistentFlags().Bool("debug", false, "dump resolved configuration and per-example decisions to stderr")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress the summary badge on stderr")
	rootCmd.PersistentFlags().String("logFile", "", "also append log lines to this file")
	rootCmd.PersistentFlags().String("searchDir", appconfig.DefaultSearchDir, "directory scanned by --latest")
	rootCmd.PersistentFlags().String("pattern", appconfig.DefaultPattern, "file pattern matched by --latest")

	bindFlags()
}

// bindFlags binds persistent flags to Viper keys (flags override config).
func bindFlags() {
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
	_ = viper.BindPFlag("searchDir", rootCmd.PersistentFlags().Lookup("searchDir"))
	_ = viper.BindPFlag("pattern", rootCmd.PersistentFlags().Lookup("pattern"))
}

// initConfig points Viper at the config file, or at the default search locations.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		return
	}
	viper.SetConfigName("evalpost")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "evalpost"))
	}
}

// ensureConfigLoaded reads the config and sets safe defaults.
func ensureConfigLoaded() error {
	defaults := appconfig.Defaults()
	viper.SetDefault("debug", false)
	viper.SetDefault("quiet", false)
	viper.SetDefault("logFile", "")
	viper.SetDefault("searchDir", defaults.SearchDir)
	viper.SetDefault("pattern", defaults.Pattern)
	viper.SetDefault("sourceToken", defaults.SourceToken)
	viper.SetDefault("targetToken", defaults.TargetToken)
	viper.SetDefault("reportExt", defaults.ReportExt)
	viper.SetDefault("placeholderPrefixes", defaults.PlaceholderPrefixes)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
