package main

import (
	"fmt"
	"os"
	"path/filepath"

	"concatd/internal/tui"

	"github.com/spf13/cobra"
)

func tuiCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tui [root]",
		Short: "Launch the terminal interface",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := ""
			if len(args) > 0 {
				root = args[0]
			}
			if root == "" {
				var err error
				root, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("error getting current directory: %w", err)
				}
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return err
			}
			info, err := os.Stat(root)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("not a directory: %s", root)
			}
			return tui.Start(cfg, root, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")

	return cmd
}
