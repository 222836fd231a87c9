// Package root contains the root command for the application
package root

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"casha/finance-advisor/internal/config"
	"casha/finance-advisor/internal/container"
	"casha/finance-advisor/internal/currency"
	"casha/finance-advisor/internal/fileutils"
	"casha/finance-advisor/internal/ingest"
	"casha/finance-advisor/internal/logging"
	"casha/finance-advisor/internal/models"
	"casha/finance-advisor/internal/validation"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Currency string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "casha",
		Short: "A personal finance tool that reads bank exports and summarizes spending.",
		Long: `casha reads transaction exports (CSV or XLSX), normalizes amounts written
in any of the supported currencies and reports income, expenses and spending
patterns. It can also ask Gemini for narrative advice and serve the same
features over HTTP.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to casha!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer != nil {
				if err := appContainer.Close(); err != nil {
					Log.WithError(err).Warn("Failed to close container")
				}
			}
		},
	}

	// SharedFlags are the flags accessible to all commands
	SharedFlags = CommonFlags{}

	// ConfigFile overrides the config.yaml search path
	ConfigFile string

	appContainer *container.Container
	initOnce     sync.Once
)

// flagKeys maps persistent flags onto configuration keys.
var flagKeys = map[string]string{
	"log-level":     "log.level",
	"log-format":    "log.format",
	"csv-delimiter": "csv.delimiter",
	"ai-enabled":    "ai.enabled",
	"max-size-mb":   "upload.max_size_mb",
}

// Init initializes the root command and all flags. It is safe to call more
// than once.
func Init() {
	initOnce.Do(func() {
		pf := Cmd.PersistentFlags()
		pf.StringVarP(&SharedFlags.Input, "input", "i", "", "Input file (CSV or XLSX)")
		pf.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: stdout)")
		pf.StringVar(&SharedFlags.Currency, "currency", "", "Currency used to read amounts, e.g. EUR (default: detect)")
		pf.StringVar(&ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.casha, .casha or .)")
		pf.String("log-level", "", "Log level (trace, debug, info, warn, error)")
		pf.String("log-format", "", "Log format (text or json)")
		pf.String("csv-delimiter", "", "CSV field delimiter")
		pf.Bool("ai-enabled", false, "Enable Gemini insights")
		pf.Int("max-size-mb", 0, "Maximum input size in MB")
	})
}

func setup(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	appContainer = c
	Log = c.GetLogger()
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	if ConfigFile != "" {
		v.SetConfigFile(ConfigFile)
	}
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind --%s: %w", flag, err)
			}
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	if SharedFlags.Currency != "" {
		code, ok := currency.ParseCode(SharedFlags.Currency)
		if !ok {
			return nil, fmt.Errorf("unsupported currency: %s", SharedFlags.Currency)
		}
		cfg.Upload.DefaultCurrency = code.String()
	}
	return cfg, nil
}

// GetContainer returns the container built for the running command.
func GetContainer() *container.Container {
	return appContainer
}

// SetContainer replaces the container, for tests driving commands directly.
func SetContainer(c *container.Container) {
	appContainer = c
	if c != nil {
		Log = c.GetLogger()
	}
}

// ParseInput reads and parses the --input file with the configured parser.
func ParseInput() (*ingest.Result, error) {
	if SharedFlags.Input == "" {
		return nil, errors.New("an input file is required (--input)")
	}
	if err := validation.IsValidInputFile(SharedFlags.Input); err != nil {
		return nil, err
	}
	if appContainer == nil {
		return nil, errors.New("container not initialized")
	}
	parser := appContainer.GetParser()
	data, err := fileutils.ReadFileLimited(SharedFlags.Input, parser.Options().MaxBytes)
	if err != nil {
		return nil, err
	}
	result, err := parser.Parse(filepath.Base(SharedFlags.Input), data)
	if err != nil {
		return nil, err
	}
	Log.Info("Parsed input file",
		logging.F(logging.FieldFile, SharedFlags.Input),
		logging.F(logging.FieldCount, len(result.Transactions)),
		logging.F(logging.FieldDropped, result.Dropped))
	return result, nil
}

// WriteOutput writes data to the --output file, or to w when none is set.
func WriteOutput(w io.Writer, data []byte) error {
	if SharedFlags.Output == "" {
		_, err := w.Write(data)
		return err
	}
	if err := fileutils.WriteFile(SharedFlags.Output, data, models.PermissionReportFile); err != nil {
		return err
	}
	Log.Info("Output written", logging.F(logging.FieldOutputFile, SharedFlags.Output))
	return nil
}
