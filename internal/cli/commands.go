package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"syllabus-builder/internal/courseschema"
	"syllabus-builder/internal/domain"
	"syllabus-builder/internal/service"
	"syllabus-builder/internal/validation"

	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	var (
		file      string
		weeks     int
		out       string
		useSample bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a course from a syllabus file or stdin",
		Example: `  syllabus generate --file syllabus.txt --weeks 6 --out course.json
  cat notes.md | syllabus generate --file -
  syllabus generate --sample`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSource(cmd.InOrStdin(), file, useSample)
			if err != nil {
				return err
			}

			v := validation.NewValidator(app.DefaultWeeks, app.MaxWeeks)
			if errs := v.ValidateGenerateRequest(text, &weeks); len(errs) > 0 {
				return errs
			}

			generator, err := app.NewGenerator()
			if err != nil {
				return err
			}
			course, err := generator.GenerateCourse(context.Background(), text, weeks)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), domain.GenerationFailedMessage)
				return err
			}
			for _, issue := range course.Check() {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", issue)
			}

			data, err := json.MarshalIndent(course, "", "  ")
			if err != nil {
				return err
			}
			if out == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %q (%d weeks) to %s\n", course.Title, len(course.Modules), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "syllabus file, or - for stdin")
	cmd.Flags().IntVarP(&weeks, "weeks", "w", 0, fmt.Sprintf("number of weeks (default %d)", app.DefaultWeeks))
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the course JSON to this file instead of stdout")
	cmd.Flags().BoolVar(&useSample, "sample", false, "use the built-in sample syllabus")
	cmd.MarkFlagsMutuallyExclusive("file", "sample")

	return cmd
}

func readSource(stdin io.Reader, file string, useSample bool) (string, error) {
	switch {
	case useSample:
		return service.SampleSyllabus, nil
	case file == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("one of --file or --sample is required")
	}
}

func newSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Print the built-in sample syllabus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), service.SampleSyllabus)
			return err
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema sent to the generative service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := courseschema.JSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		},
	}
}
