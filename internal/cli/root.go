package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vk/jsbridge/internal/app"
)

// options collects the values of the persistent flags.
type options struct {
	configFile      string
	logLevel        string
	logFormat       string
	manifests       []string
	strict          bool
	snapshot        string
	scope           string
	healthcheckPort int
}

// NewRootCommand builds the jsbridge command tree. Results go to outW and
// logs to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "jsbridge",
		Short: "Script declaration registry and autocomplete for an embedded game engine",
		Long: `jsbridge declares script members (signals, exported properties,
onready fields, tool and icon flags) from HCL manifests, forwards them to a
host registry, and answers autocomplete requests for dotted paths.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "Config file (.toml, .yaml or .yml).")
	pf.StringVar(&opts.logLevel, "log-level", "info", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	pf.StringVar(&opts.logFormat, "log-format", "text", "Log output format: 'text' or 'json'.")
	pf.StringSliceVarP(&opts.manifests, "manifests", "m", nil, "Manifest files or directories.")
	pf.BoolVar(&opts.strict, "strict", false, "Reject members declared twice on the same script.")
	pf.StringVar(&opts.snapshot, "snapshot", "", "Reflection snapshot (.yaml, .json or .toml).")
	pf.StringVar(&opts.scope, "scope", "", "Completion scope file (.hcl or .json).")
	pf.IntVar(&opts.healthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")

	root.AddCommand(
		newDeclareCommand(opts, outW, errW),
		newCompleteCommand(opts, outW, errW),
		newClassesCommand(opts, outW, errW),
		newTypingsCommand(opts, outW, errW),
		newBridgeCommand(opts, outW, errW),
		newVersionCommand(outW),
	)
	return root
}

// buildConfig merges the config file with the flags the user set explicitly.
func buildConfig(cmd *cobra.Command, opts *options, extra func(*app.Config)) (*app.Config, error) {
	var cfg app.Config
	if opts.configFile != "" {
		loaded, err := app.LoadConfigFile(opts.configFile)
		if err != nil {
			return nil, usageError(err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-format") || cfg.LogFormat == "" {
		cfg.LogFormat = opts.logFormat
	}
	if flags.Changed("manifests") {
		cfg.ManifestPaths = opts.manifests
	}
	if flags.Changed("strict") {
		cfg.StrictDuplicates = opts.strict
	}
	if flags.Changed("snapshot") {
		cfg.SnapshotPath = opts.snapshot
	}
	if flags.Changed("scope") {
		cfg.ScopePath = opts.scope
	}
	if flags.Changed("healthcheck-port") {
		cfg.HealthcheckPort = opts.healthcheckPort
	}
	if extra != nil {
		extra(&cfg)
	}

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, usageError(err)
	}
	return validated, nil
}

func newApp(cmd *cobra.Command, opts *options, outW, errW io.Writer, extra func(*app.Config)) (*app.App, error) {
	cfg, err := buildConfig(cmd, opts, extra)
	if err != nil {
		return nil, err
	}
	return app.NewApp(outW, errW, cfg), nil
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &ExitError{Code: 2, Message: fmt.Sprintf("%s: accepts %d arg(s), received %d", cmd.CommandPath(), n, len(args))}
		}
		return nil
	}
}
