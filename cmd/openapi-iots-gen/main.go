package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/blimu-dev/openapi-iots-gen/internal/cli"
	"github.com/blimu-dev/openapi-iots-gen/pkg/config"
)

func main() {
	var logParams cli.LogParams

	root := &cobra.Command{
		Use:           "openapi-iots-gen",
		Short:         "Generate io-ts TypeScript clients from OpenAPI specs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := cli.SetupLogging(logParams)
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}
	root.PersistentFlags().BoolVar(&logParams.Debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&logParams.JSON, "json-logs", false, "Log as JSON instead of console text")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newInspectCmd())

	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed")
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	defaults := config.DefaultOptions()
	var opts config.Options

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one module per operation listed in the control files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunGenerate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.SpecDir, "spec-dir", "", "Directory holding <name>.spec.json control files")
	cmd.Flags().StringVar(&opts.TargetDir, "out", "", "Output directory")
	cmd.Flags().StringVar(&opts.BaseURL, "base-url", "", "Prefix of url sources")
	cmd.Flags().StringVar(&opts.Target, "target", defaults.Target, "Spec name to generate, or all")
	cmd.Flags().StringVar(&opts.Type, "type", defaults.Type, "Generator type")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", defaults.Prefix, "Prefix of generated file names")
	cmd.Flags().StringVar(&opts.FetchModule, "fetch-module", defaults.FetchModule, "Import path of fetchGeneralRaw in generated code")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", defaults.Timeout, "Timeout of each spec download attempt")
	cmd.Flags().IntVar(&opts.Retries, "retries", defaults.Retries, "Extra spec download attempts (negative disables retrying)")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", defaults.Concurrency, "Number of specs generated at once")
	cmd.Flags().BoolVar(&opts.KeepGoing, "keep-going", false, "Report failed specs at the end instead of stopping")
	cmd.Flags().BoolVar(&opts.Validate, "validate", false, "Validate every document before generating")
	_ = cmd.MarkFlagRequired("spec-dir")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newValidateCmd() *cobra.Command {
	var input string
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.RunValidate(cmd.Context(), input, timeout); err != nil {
				return err
			}
			log.Info().Str("input", input).Msg("spec is valid")
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "OpenAPI spec file or URL (yaml/json)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Download timeout for URL inputs")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newInspectCmd() *cobra.Command {
	var p cli.InspectParams
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the handler model assembled from an OpenAPI spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Out = cmd.OutOrStdout()
			return cli.RunInspect(cmd.Context(), p)
		},
	}
	cmd.Flags().StringVar(&p.Input, "input", "", "OpenAPI spec file or URL (yaml/json)")
	cmd.Flags().StringVar(&p.Path, "path", "", "Only print the handler of this url template")
	cmd.Flags().StringVar(&p.Method, "method", "get", "HTTP method used with --path")
	cmd.Flags().DurationVar(&p.Timeout, "timeout", 30*time.Second, "Download timeout for URL inputs")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
