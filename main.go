package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "0.1.0"

type options struct {
	configPath  string
	logLevel    string
	outDir      string
	indexFile   string
	headersFile string
}

// config loads the configuration file and applies whichever flags were set
// on the command line.
func (o *options) config(cmd *cobra.Command) (Config, error) {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("out-dir") {
		cfg.OutDir = o.outDir
	}
	if flags.Changed("index-file") {
		cfg.IndexFile = o.indexFile
	}
	if flags.Changed("headers-file") {
		cfg.HeadersFile = o.headersFile
	}

	return cfg, cfg.validate()
}

func (o *options) setup(cmd *cobra.Command) (Config, *zap.Logger, error) {
	cfg, err := o.config(cmd)
	if err != nil {
		return cfg, nil, err
	}
	log, err := newLogger(cfg.LogLevel, zapcore.AddSync(cmd.ErrOrStderr()))
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

// expandArtifacts resolves every pattern to the artifact files it matches.
// A pattern matching nothing is an error.
func expandArtifacts(patterns []string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid artifact pattern '%s': %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no artifacts match '%s'", pattern)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out, nil
}

func newGenCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen <artifact>...",
		Short: "Generate declarations from truffle build artifacts on disk",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := o.setup(cmd)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			paths, err := expandArtifacts(args)
			if err != nil {
				return err
			}
			sources, err := readSources(paths)
			if err != nil {
				return err
			}
			files, err := generate(cfg, log, sources)
			if err != nil {
				return err
			}
			return writeOutputs(log, files)
		},
	}

	defaults := defaultConfig()
	cmd.Flags().StringVar(&o.outDir, "out-dir", defaults.OutDir, "directory to write the declarations to")
	cmd.Flags().StringVar(&o.indexFile, "index-file", defaults.IndexFile, "file name of the contract interfaces")
	cmd.Flags().StringVar(&o.headersFile, "headers-file", defaults.HeadersFile, "file name of the artifacts.require declarations")
	return cmd
}

func newRootCmd() *cobra.Command {
	o := new(options)
	root := &cobra.Command{
		Use:   "typegen-truffle",
		Short: "Generate truffle-typings declarations for contract ABIs",
		Long: "Generate truffle-typings declarations for contract ABIs.\n\n" +
			"Without a subcommand, reads a protoc plugin CodeGeneratorRequest on stdin whose\n" +
			"files to generate are truffle build artifacts, and writes the response to stdout.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := o.setup(cmd)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			log.Debug("generating truffle declarations", zap.String("version", version))
			return runPlugin(cmd.InOrStdin(), cmd.OutOrStdout(), cfg, log)
		},
	}

	root.PersistentFlags().StringVar(&o.configPath, "config", "", "yaml configuration file")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", defaultConfig().LogLevel, "log level: debug, info, warn or error")

	root.AddCommand(newGenCmd(o))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})
	return root
}

// reportError logs a failed command on w. It builds its own logger since
// the command may have failed before creating one.
func reportError(w zapcore.WriteSyncer, err error) {
	log, lerr := newLogger("error", w)
	if lerr != nil {
		log = zap.NewNop()
	}
	log.Error("typegen-truffle failed", zap.Error(err))
	log.Sync() //nolint:errcheck
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		reportError(zapcore.AddSync(os.Stderr), err)
		os.Exit(1)
	}
}
