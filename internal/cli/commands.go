package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/vk/jsbridge/internal/app"
)

func newDeclareCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "declare [PATH...]",
		Short: "Declare the scripts of the given manifests and print the host calls",
		Long: `Loads every .hcl manifest below the given paths (or --manifests),
commits each script's declarations to an in-memory host and prints the
recorded registrations as YAML.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, outW, errW, nil)
			if err != nil {
				return err
			}
			return a.PrintDeclarations(cmd.Context(), args...)
		},
	}
}

func newCompleteCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "complete PATTERN",
		Short: "Complete a dotted path against a scope",
		Long: `Prints the full paths completing PATTERN, one per line. The scope is
the --scope file, or the scripts declared by --manifests.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, outW, errW, nil)
			if err != nil {
				return err
			}
			return a.PrintCompletions(cmd.Context(), args[0])
		},
	}
}

func newClassesCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List the classes and singletons of a reflection snapshot",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, outW, errW, nil)
			if err != nil {
				return err
			}
			return a.PrintClasses(cmd.Context())
		},
	}
}

func newTypingsCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	var out, pkg string
	cmd := &cobra.Command{
		Use:   "typings",
		Short: "Generate Go typings from a reflection snapshot",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, outW, errW, nil)
			if err != nil {
				return err
			}
			return a.WriteTypings(cmd.Context(), pkg, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, below the snapshot's directory.")
	cmd.Flags().StringVar(&pkg, "package", "godot", "Package name of the generated file.")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newBridgeCommand(opts *options, outW, errW io.Writer) *cobra.Command {
	var (
		url       string
		namespace string
		insecure  bool
		timeout   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Serve editor completion requests over socket.io",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts, outW, errW, func(cfg *app.Config) {
				flags := cmd.Flags()
				if flags.Changed("url") {
					cfg.Bridge.URL = url
				}
				if flags.Changed("namespace") {
					cfg.Bridge.Namespace = namespace
				}
				if flags.Changed("insecure-skip-verify") {
					cfg.Bridge.InsecureSkipVerify = insecure
				}
				if flags.Changed("timeout") {
					cfg.Bridge.ConnectTimeout = timeout
				}
			})
			if err != nil {
				return err
			}
			return a.RunBridge(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "Editor socket.io URL, e.g. http://localhost:6006/socket.io/.")
	cmd.Flags().StringVar(&namespace, "namespace", "/", "socket.io namespace.")
	cmd.Flags().BoolVar(&insecure, "insecure-skip-verify", false, "Skip TLS certificate verification.")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "How long to wait for the initial connection.")
	return cmd
}

func newVersionCommand(outW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  exactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(outW, "jsbridge %s\n", Version)
		},
	}
}
