package main

import (
	"errors"

	"concatd/cmd/concatd/cli"
	"concatd/internal/gui"

	"github.com/spf13/cobra"
)

func guiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Launch the graphical interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !gui.IsGUIAvailable() {
				cli.Error("This build was compiled without GUI support.")
				cli.Error("Use 'concatd tui' or 'concatd generate' instead.")
				return errors.New("gui support not compiled in")
			}
			return gui.StartGUI(cfg)
		},
	}
}
