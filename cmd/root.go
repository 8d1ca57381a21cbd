package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"modctl/internal/app"
	"modctl/internal/config"
	"modctl/pkg/logging"
)

var rootDebug bool

// rootCmd represents the base command when called without any
// subcommands: it launches the interactive control surface.
var rootCmd = &cobra.Command{
	Use:   "modctl",
	Short: "Interactive terminal control surface for operational modules",
	Long: `modctl navigates a hierarchy of operational modules (organizations,
services, deployment targets) and executes their commands with live
feedback, completion, and a scrollable output history.

Running modctl without a subcommand starts the TUI. Configuration is
layered from built-in defaults, ~/.config/modctl/config.yaml and
./.modctl/config.yaml.`,
	// SilenceUsage prevents the usage dump on errors we already report.
	SilenceUsage: true,
	RunE:         runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := logging.LevelInfo
	if rootDebug {
		level = logging.LevelDebug
	}
	logCh := logging.InitForTUI(level)

	a := app.New(app.Options{Config: cfg, LogCh: logCh})
	return a.Run(cmd.Context())
}

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "modctl version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero.
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newDriverCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
