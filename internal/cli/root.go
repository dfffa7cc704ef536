// Package cli implements the syllabus command line tool.
package cli

import (
	"syllabus-builder/internal/domain"

	"github.com/spf13/cobra"
)

// App holds what the commands need. NewGenerator is called only by commands that
// talk to the generative service, so schema and sample work without credentials.
type App struct {
	NewGenerator func() (domain.CourseGenerationService, error)
	DefaultWeeks int
	MaxWeeks     int
}

// NewRootCmd creates the top-level "syllabus" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "syllabus",
		Short:         "Turn raw syllabus text into a structured course",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(app),
		newSampleCmd(),
		newSchemaCmd(),
	)

	return root
}
