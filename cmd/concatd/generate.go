package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"concatd/cmd/concatd/cli"
	"concatd/internal/concat"
	"concatd/pkg/types"

	"github.com/spf13/cobra"
)

// generateCmd is the scripted one-shot mode: resolve the given paths and
// concatenate them without any interface.
func generateCmd() *cobra.Command {
	var (
		output      string
		rootDir     string
		toClipboard bool
		noHeaders   bool
		noTree      bool
		gitOnly     bool
		skipUnread  bool
	)

	cmd := &cobra.Command{
		Use:   "generate [paths...]",
		Short: "Concatenate the given files and folders",
		Long:  `Concatenate the given files and folders into one output file, in the order they are listed. Folders expand to the text files beneath them.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("clipboard") {
				cfg.Output.Clipboard = toClipboard
			}
			if noHeaders {
				cfg.Format.FileHeaders = false
			}
			if noTree {
				cfg.Format.FileTree = false
			}
			if cmd.Flags().Changed("git-only") {
				cfg.Include.GitTrackedOnly = gitOnly
			}
			if cmd.Flags().Changed("skip-unreadable") {
				cfg.Run.SkipUnreadable = skipUnread
			}

			root := rootDir
			if root == "" {
				var err error
				root, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("error getting current directory: %w", err)
				}
			}

			session := types.NewSession(root)
			for _, arg := range args {
				abs, err := filepath.Abs(arg)
				if err != nil {
					return err
				}
				session.Selection.Add(abs)
			}
			session.Output = output
			if session.Output == "" {
				session.Output = cfg.Output.DefaultPath
			}
			session.Clipboard = cfg.Output.Clipboard

			engine, err := concat.NewWithConfig(cfg)
			if err != nil {
				return err
			}

			// Ctrl-C cancels between files, leaving partial output in place
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			done := make(chan types.Result, 1)
			go func() {
				done <- engine.Run(ctx, session)
			}()

			var result types.Result
			for running := true; running; {
				select {
				case p := <-engine.Progress():
					fmt.Printf("  [%d/%d] %s\n", p.Completed, p.Total, filepath.Base(p.Path))
				case result = <-done:
					running = false
				}
			}

			for _, w := range result.Warnings {
				cli.Warning("  %s", w.String())
			}

			switch result.Phase {
			case types.PhaseCompleted:
				cli.Success("%s", result.Summary())
				return nil
			case types.PhaseCancelled:
				cli.Warning("%s", result.Summary())
				if result.OutputPath != "" {
					cli.Warning("partial output left at %s", result.OutputPath)
				}
				return nil
			default:
				if result.OutputPath != "" && result.FilesWritten > 0 {
					cli.Warning("partial output left at %s", result.OutputPath)
				}
				return result.Err
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&rootDir, "root", "", "root directory for the file tree preamble (default: current directory)")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "copy the result to the clipboard instead of writing a file")
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "omit the per-file headers")
	cmd.Flags().BoolVar(&noTree, "no-tree", false, "omit the file tree preamble")
	cmd.Flags().BoolVar(&gitOnly, "git-only", false, "only include git-tracked files")
	cmd.Flags().BoolVar(&skipUnread, "skip-unreadable", false, "skip unreadable files instead of aborting")

	return cmd
}
