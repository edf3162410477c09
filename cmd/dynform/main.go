// Package main provides the dynform command line tool: an interactive
// terminal session for a form schema plus non-interactive checks over
// values documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dynform/internal/logger"
	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/renderers/tui"
)

// errInvalid signals that a values document failed validation; the issues
// were already printed.
var errInvalid = errors.New("values are invalid")

type app struct {
	out    io.Writer
	errOut io.Writer
	driver tui.PromptDriver

	schemaPath string
	presetPath string
	valuesPath string
	format     string
	logFormat  string
	asJSON     bool
	sanitize   bool
	verbose    bool

	log *zap.Logger
}

func main() {
	a := &app{out: os.Stdout, errOut: os.Stderr}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.command().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

func (a *app) command() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dynform",
		Short: "Fill and validate conditional forms",
		Long: `dynform drives forms whose visible fields depend on earlier answers.

Without --schema the bundled profile form is used. Schemas and values
documents may be written in YAML or JSON.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVarP(&a.schemaPath, "schema", "s", "", "Schema document (defaults to the bundled profile form)")
	rootCmd.PersistentFlags().StringVarP(&a.presetPath, "preset", "p", "", "Preset document overriding labels and messages")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "console", "Log format (console or json)")

	fillCmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill the form interactively",
		Long: `Prompt for every visible field, following branch changes as they happen,
and print the submitted record once the form validates.`,
		Args: cobra.NoArgs,
		RunE: a.runFill,
	}
	fillCmd.Flags().StringVarP(&a.valuesPath, "values", "f", "", "Values document used as defaults")
	fillCmd.Flags().StringVar(&a.format, "format", string(tui.OutputFormatJSON), "Output format (json, pretty or form)")
	fillCmd.Flags().BoolVar(&a.sanitize, "sanitize", true, "Strip markup from entered strings before validation")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a values document",
		Long:  `Validate a values document against the active branches. Exits with status 1 when invalid.`,
		Args:  cobra.NoArgs,
		RunE:  a.runCheck,
	}
	checkCmd.Flags().StringVarP(&a.valuesPath, "values", "f", "", "Values document to validate")
	checkCmd.Flags().BoolVar(&a.asJSON, "json", false, "Print a JSON report")
	_ = checkCmd.MarkFlagRequired("values")

	fieldsCmd := &cobra.Command{
		Use:   "fields",
		Short: "Print the visible fields with values and errors",
		Args:  cobra.NoArgs,
		RunE:  a.runFields,
	}
	fieldsCmd.Flags().StringVarP(&a.valuesPath, "values", "f", "", "Values document to apply first")

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the schema declaration",
		Args:  cobra.NoArgs,
		RunE:  a.runSchema,
	}
	schemaCmd.Flags().BoolVar(&a.asJSON, "json", false, "Print JSON instead of YAML")

	rootCmd.AddCommand(fillCmd, checkCmd, fieldsCmd, schemaCmd)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	format, err := logger.ParseFormat(a.logFormat)
	if err != nil {
		return err
	}
	level := "warn"
	if a.verbose {
		level = "debug"
	}
	a.log = logger.New(level, format, a.errOut)
	cmd.SetOut(a.out)
	return nil
}

func (a *app) orchestrator() (*orchestrator.Orchestrator, error) {
	opts := []orchestrator.Option{orchestrator.WithLogger(a.log)}
	if a.schemaPath != "" {
		opts = append(opts, orchestrator.WithSchemaFS(os.DirFS(filepath.Dir(a.schemaPath))))
	}
	if a.presetPath != "" {
		data, err := os.ReadFile(a.presetPath)
		if err != nil {
			return nil, fmt.Errorf("reading preset: %w", err)
		}
		preset, err := orchestrator.NewPresetTransformer(data)
		if err != nil {
			return nil, err
		}
		opts = append(opts, orchestrator.WithSchemaTransformer(preset))
	}
	return orchestrator.New(opts...), nil
}

func (a *app) request(rendererName string) (orchestrator.Request, error) {
	req := orchestrator.Request{Renderer: rendererName}
	if a.schemaPath != "" {
		req.SchemaPath = filepath.Base(a.schemaPath)
	}
	if a.valuesPath != "" {
		values, err := loadValues(a.valuesPath)
		if err != nil {
			return orchestrator.Request{}, err
		}
		req.Values = values
	}
	return req, nil
}

func (a *app) runFill(cmd *cobra.Command, _ []string) error {
	opts := []tui.Option{
		tui.WithOutputFormat(tui.OutputFormat(a.format)),
		tui.WithLogger(a.log),
	}
	if a.driver != nil {
		opts = append(opts, tui.WithPromptDriver(a.driver))
	} else {
		opts = append(opts, tui.WithPromptDriver(tui.NewSurveyDriver(a.out)))
	}
	renderer, err := tui.New(opts...)
	if err != nil {
		return err
	}

	orch, err := a.orchestrator()
	if err != nil {
		return err
	}
	if err := orch.Registry().Replace(renderer); err != nil {
		return err
	}

	req, err := a.request(renderer.Name())
	if err != nil {
		return err
	}
	if a.sanitize {
		req.FormOptions = append(req.FormOptions, form.WithSanitizer(nil))
	}

	out, err := orch.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(out))
	return err
}

func (a *app) runCheck(cmd *cobra.Command, _ []string) error {
	orch, err := a.orchestrator()
	if err != nil {
		return err
	}
	req, err := a.request("")
	if err != nil {
		return err
	}

	f, err := orch.Build(cmd.Context(), req)
	if err != nil {
		return err
	}

	if a.asJSON {
		report, err := orch.Registry().Get("report")
		if err != nil {
			return err
		}
		out, err := report.Render(cmd.Context(), f)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, string(out))
	} else {
		result := f.Result()
		if result.Valid {
			fmt.Fprintln(a.out, "valid")
		}
		for _, issue := range result.Issues() {
			fmt.Fprintf(a.out, "%s: %s\n", issue.Path, issue.Message)
		}
	}

	if !f.Valid() {
		return errInvalid
	}
	return nil
}

func (a *app) runFields(cmd *cobra.Command, _ []string) error {
	orch, err := a.orchestrator()
	if err != nil {
		return err
	}
	req, err := a.request("view")
	if err != nil {
		return err
	}
	out, err := orch.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}
	_, err = a.out.Write(out)
	return err
}

func (a *app) runSchema(_ *cobra.Command, _ []string) error {
	schema, err := a.loadSchema()
	if err != nil {
		return err
	}
	if a.asJSON {
		data, err := jsonIndent(schema)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, string(data))
		return nil
	}

	enc := yaml.NewEncoder(a.out)
	enc.SetIndent(2)
	if err := enc.Encode(schema); err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}
	return enc.Close()
}

func (a *app) loadSchema() (model.Schema, error) {
	if a.schemaPath == "" {
		return model.ProfileSchema(), nil
	}
	return model.LoadFS(os.DirFS(filepath.Dir(a.schemaPath)), filepath.Base(a.schemaPath))
}
