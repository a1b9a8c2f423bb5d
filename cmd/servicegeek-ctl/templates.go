package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"servicegeek/internal/core/templatepack"
)

func templatesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "templates", Short: "Build and check the template catalog"}
	cmd.AddCommand(templatesPackCmd(), templatesValidateCmd())
	return cmd
}

func templatesPackCmd() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Merge per-trade fragment files into templates.json",
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := templatepack.FindFragments(in)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return errors.New("no fragment files found under " + in)
			}
			frags := make([]templatepack.Fragment, 0, len(paths))
			for _, p := range paths {
				f, err := templatepack.ReadFragment(p)
				if err != nil {
					return err
				}
				frags = append(frags, f)
			}
			b, err := templatepack.Merge(map[string]any{
				"generated": time.Now().UTC().Format(time.RFC3339),
				"fragments": len(frags),
			}, frags...)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s from %d fragments\n", out, len(frags))
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "./templates", "fragment directory")
	cmd.Flags().StringVar(&out, "out", "-", "output file, - for stdout")
	return cmd
}

func templatesValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a catalog file, or the embedded one when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				p   *templatepack.Pack
				err error
			)
			if len(args) == 0 {
				p, err = templatepack.Load()
			} else {
				var b []byte
				if b, err = os.ReadFile(args[0]); err != nil {
					return err
				}
				p, err = templatepack.Parse(b)
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ok: version %d, %d templates\n", p.Version, p.Len())
			return nil
		},
	}
}
