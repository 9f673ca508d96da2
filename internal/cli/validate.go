package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"survey-builder-service/internal/builder"
)

// NewValidateCmd checks a survey document and lists draft questions.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a survey document and report incomplete questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := readDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			incomplete := builder.Incomplete(questions)
			if len(incomplete) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %d questions, all complete\n", len(questions))
				return nil
			}
			for _, id := range incomplete {
				q, _ := builder.Find(questions, id)
				fmt.Fprintf(cmd.OutOrStdout(), "incomplete: %s %q\n", id, q.Label)
			}
			return fmt.Errorf("%d of %d questions incomplete", len(incomplete), len(questions))
		},
	}
}
