package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/engine"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/fixture"
	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

// ErrInvalidLogic is returned by validate when some logic no longer resolves
var ErrInvalidLogic = errors.New("survey has invalid logic")

type engineFactory func() *engine.Engine

// outputFlags are shared by the commands that print a survey
type outputFlags struct {
	format string
	out    string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "format", "", "Output format: yaml or json (default: input format)")
	cmd.Flags().StringVarP(&o.out, "output", "o", "", "Write to file instead of stdout")
}

func (o *outputFlags) write(cmd *cobra.Command, inputPath string, s *model.Survey) error {
	format := fixture.FormatOf(inputPath)
	if o.format != "" {
		f, err := fixture.ParseFormat(o.format)
		if err != nil {
			return err
		}
		format = f
	}
	data, err := fixture.Encode(s, format)
	if err != nil {
		return err
	}
	if o.out == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(o.out, data, 0o644)
}

func NormalizeCmd(newEngine engineFactory) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "normalize FILE",
		Short: "Repair ids, paginate and renumber a survey file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadNormalized(newEngine(), args[0])
			if err != nil {
				return err
			}
			return out.write(cmd, args[0], s)
		},
	}
	out.register(cmd)
	return cmd
}

func ValidateCmd(newEngine engineFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Report questions whose logic references no longer resolve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadNormalized(newEngine(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			invalid := engine.InvalidLogicQuestions(s)
			if len(invalid) == 0 {
				fmt.Fprintln(w, "logic ok")
				return nil
			}
			for _, qid := range invalid {
				fmt.Fprintln(w, qid)
			}
			fmt.Fprintln(w, engine.ValidateLogicAfterMove(s))
			return ErrInvalidLogic
		},
	}
}

func PagesCmd(newEngine engineFactory) *cobra.Command {
	var blockID string
	cmd := &cobra.Command{
		Use:   "pages FILE",
		Short: "Print the pages each block renders as",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadNormalized(newEngine(), args[0])
			if err != nil {
				return err
			}
			found := false
			for _, b := range s.Blocks {
				if blockID != "" && b.ID != blockID && b.BID != blockID {
					continue
				}
				found = true
				printPages(cmd.OutOrStdout(), b)
			}
			if !found {
				return fmt.Errorf("block %q not found", blockID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&blockID, "block", "", "Only print this block (id or bid)")
	return cmd
}

func printPages(w io.Writer, b model.Block) {
	fmt.Fprintf(w, "%s\t%s\n", b.BID, b.Title)
	for i, page := range engine.PagesForBlock(b) {
		qids := make([]string, 0, len(page))
		for _, q := range page {
			qids = append(qids, q.QID)
		}
		fmt.Fprintf(w, "  page %d\t%s\n", i+1, strings.Join(qids, " "))
	}
}

func ApplyCmd(newEngine engineFactory) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "apply FILE ACTIONS",
		Short: "Apply a JSON array of editor actions to a survey file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := newEngine()
			s, err := loadNormalized(e, args[0])
			if err != nil {
				return err
			}
			actions, err := readActions(args[1])
			if err != nil {
				return err
			}
			for i, a := range actions {
				if _, ok := a.(engine.RestoreState); ok {
					return fmt.Errorf("action %d: %s cannot be applied from a file", i, a.Type())
				}
				next := e.Reduce(s, a)
				if next == s {
					fmt.Fprintf(cmd.ErrOrStderr(), "action %d (%s) changed nothing\n", i, a.Type())
					continue
				}
				if engine.ChangesOrder(a) {
					if msg := engine.ValidateLogicAfterMove(next); msg != "" {
						next = e.Reduce(next, engine.SetLogicValidationMessage{Message: msg})
						fmt.Fprintf(cmd.ErrOrStderr(), "action %d (%s): %s\n", i, a.Type(), msg)
					}
				}
				s = next
			}
			return out.write(cmd, args[0], s)
		},
	}
	out.register(cmd)
	return cmd
}

func readActions(path string) ([]engine.Action, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var envelopes []engine.Envelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	actions := make([]engine.Action, 0, len(envelopes))
	for i, env := range envelopes {
		a, err := env.Decode()
		if err != nil {
			return nil, fmt.Errorf("%s: action %d: %w", path, i, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}
