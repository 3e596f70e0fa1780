package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"sparsemv/internal/config"
	"sparsemv/internal/file"
	"sparsemv/internal/mover"
	"sparsemv/internal/ui"
	"sparsemv/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	cfg        *config.Config
	cfgFile    string
	noProgress bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sparsemv",
	Short: "sparsemv - move data between files without doubling storage",
	Long: `sparsemv moves a byte range from an input file to an output file.

After each chunk is written to the output, the storage backing it in the
input is freed immediately by punching a hole (fallocate with
FALLOC_FL_PUNCH_HOLE). Holes already present in the input are skipped.
This allows moving large sections of data without needing space for both
copies at once.

Usage:
  Move a whole file:   sparsemv move --input disk.img --output disk2.img
  Move a range:        sparsemv move -i disk.img --input-offset 1048576 --length 4194304 -o part.img
  Inspect allocation:  sparsemv map disk.img`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize viper configuration
		if err := initConfig(); err != nil {
			return mover.ConfigError("config", err)
		}

		loaded, err := config.Load(viper.GetViper())
		if err != nil {
			return mover.ConfigError("config", err)
		}
		if noProgress || !term.IsTerminal(int(os.Stderr.Fd())) {
			loaded.Transfer.Progress = false
		}
		if err := loaded.Validate(); err != nil {
			return mover.ConfigError("config", err)
		}
		cfg = loaded

		level, _ := cfg.SlogLevel()
		logger.Init(level, cfg.Log.File)
		return nil
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sparsemv.yaml)")
	rootCmd.PersistentFlags().String("chunk-size", "", "size of each moved chunk, e.g. 1MB or 4MB (default 1MB)")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "log progress instead of drawing a progress bar")
	rootCmd.PersistentFlags().String("log-file", "", "also write JSON logs to this file, rotated at 10MB")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error (default info)")

	viper.BindPFlag("transfer.chunk_size", rootCmd.PersistentFlags().Lookup("chunk-size"))
	viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	// Set up viper environment variable support
	viper.SetEnvPrefix("SPARSEMV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return mover.ConfigError("flags", err)
	})
}

// initConfig reads in .env, config file and ENV variables
func initConfig() error {
	_ = godotenv.Load() // ignore error if .env not found

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
		return nil
	}

	// Find home directory
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Warn("Could not find home directory", "error", err)
		return nil
	}

	// Search config in home directory with name ".sparsemv" (without extension)
	viper.AddConfigPath(home)
	viper.SetConfigType("yaml")
	viper.SetConfigName(".sparsemv")

	// A missing default config file is fine
	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("Using config file", "path", viper.ConfigFileUsed())
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// The process exits with the status derived from the first error.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mover.ExitCode(err))
	}
}

// createServices creates and wires up all the application services
func createServices() (file.FileService, *ui.ConsoleUI) {
	fileService := file.NewFileService()
	consoleUI := ui.NewConsoleUI(os.Stdout, os.Stderr, logger.Log)

	return fileService, consoleUI
}
