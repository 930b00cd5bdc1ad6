// Command build-manylinux-wheels builds portable Linux wheels for a
// Go-based Python extension project, using the manylinux build container.
// Run it from the project root (next to setup.py).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	pyext "github.com/contriboss/python-extension-go"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		goVersion string
		pythons   []string
	)

	cmd := &cobra.Command{
		Use:   "build-manylinux-wheels",
		Short: "Build manylinux wheels for a Go-based Python extension",
		Long: "Builds a source distribution, then runs a manylinux container that\n" +
			"compiles wheels for each requested CPython version and repairs them\n" +
			"with auditwheel into ./dist.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pyext.CheckRequiredTools(pyext.RequiredWheelTools()); err != nil {
				return err
			}
			config := &pyext.WheelConfig{
				GoVersion: goVersion,
				Pythons:   pythons,
			}
			if err := pyext.BuildManylinuxWheels(cmd.Context(), config); err != nil {
				return err
			}
			banner := strings.Repeat("*", 79)
			fmt.Println(banner)
			color.Green("Your wheels have been built into ./dist")
			fmt.Println(banner)
			return nil
		},
	}

	cmd.Flags().StringVar(
		&goVersion, "golang", pyext.DefaultGoVersion,
		"Go version fetched inside the build container",
	)
	cmd.Flags().StringSliceVar(
		&pythons, "pythons", pyext.DefaultPythons,
		"CPython tags to build wheels for",
	)
	return cmd
}
