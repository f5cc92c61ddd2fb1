package main

import (
	"fmt"
	"os"

	"concatd/cmd/concatd/cli"
	"concatd/internal/config"
	"concatd/internal/log"

	"github.com/spf13/cobra"
)

var (
	version = "dev"

	cfgFile string
	cfg     *config.Config
)

// Entry point for the application
func main() {
	rootCmd := &cobra.Command{
		Use:     "concatd",
		Short:   "Concatenate text files into a single output",
		Long:    `Concatd joins the text files you pick under a root directory into one output file, with a GUI, a TUI, and a scripted mode.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var configErr error
			if cfgFile != "" {
				cfg, configErr = config.LoadConfigFile(cfgFile)
			} else {
				cfg, configErr = config.LoadConfig()
			}
			if configErr != nil {
				cli.Warning("Warning: %v", configErr)
				cli.Warning("Using default settings.")
				cfg = config.New()
			}
			log.SetLevel(cfg.Log.Level)
		},
		// No Run function here - default behavior is to show help
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/concatd/config.yaml)")

	// Prepend logo to help message
	helpTemplate := cli.DrawLogo() + "\n\n" + rootCmd.UsageTemplate()
	rootCmd.SetUsageTemplate(helpTemplate)
	rootCmd.SetHelpTemplate(helpTemplate)

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(guiCmd())
	rootCmd.AddCommand(tuiCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
