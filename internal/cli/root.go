// Package cli implements surveyctl, which runs the editing engine on survey
// files without a server.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/engine"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/fixture"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/idgen"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

func Execute() error {
	return NewRoot().Execute()
}

func NewRoot() *cobra.Command {
	var sequentialIDs bool
	root := &cobra.Command{
		Use:           "surveyctl",
		Short:         "Normalize, check and edit survey files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&sequentialIDs, "sequential-ids", false, "Issue reproducible ids instead of uuids")

	newEngine := func() *engine.Engine {
		if sequentialIDs {
			return engine.New(idgen.NewSequence(1))
		}
		return engine.New(idgen.NewUUID())
	}

	root.AddCommand(
		NormalizeCmd(newEngine),
		ValidateCmd(newEngine),
		PagesCmd(newEngine),
		ApplyCmd(newEngine),
	)
	return root
}

// loadNormalized reads a survey file and runs it through REPLACE_SURVEY
func loadNormalized(e *engine.Engine, path string) (*model.Survey, error) {
	s, err := fixture.Load(path)
	if err != nil {
		return nil, err
	}
	return e.Reduce(nil, engine.ReplaceSurvey{Survey: s}), nil
}
