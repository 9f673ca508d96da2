package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"survey-builder-service/internal/builder"
	"survey-builder-service/internal/domain"
	"survey-builder-service/internal/tui"
)

// NewPreviewCmd fills in a survey document in the terminal and emits the responses JSON.
func NewPreviewCmd() *cobra.Command {
	var (
		outPath       string
		responsesPath string
		title         string
	)
	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Answer a survey document in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := readDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			seed := domain.Responses{}
			if responsesPath != "" {
				data, err := os.ReadFile(responsesPath)
				if err != nil {
					return fmt.Errorf("read responses: %w", err)
				}
				if seed, err = builder.ParseResponses(data); err != nil {
					return err
				}
			}

			if title == "" {
				title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			final, err := tea.NewProgram(tui.NewModel(title, questions, seed), tea.WithAltScreen()).Run()
			if err != nil {
				return fmt.Errorf("run preview: %w", err)
			}
			model := final.(tui.Model)
			if model.Aborted() {
				return errors.New("preview aborted")
			}

			data, err := builder.MarshalResponses(model.Responses())
			if err != nil {
				return err
			}
			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			return os.WriteFile(outPath, append(data, '\n'), 0o644)
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "write responses JSON to this file instead of stdout")
	cmd.Flags().StringVar(&responsesPath, "responses", "", "responses JSON to start from")
	cmd.Flags().StringVar(&title, "title", "", "title shown above the questions")
	return cmd
}
