package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"survey-builder-service/internal/config"
	"survey-builder-service/internal/infra/gforms"
)

// NewPublishCmd creates a Google Form from a survey document.
func NewPublishCmd(configPath *string) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "publish FILE",
		Short: "Publish a survey document as a Google Form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			questions, err := readDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			service, err := gforms.NewService(ctx, cfg.Forms.CredentialsFile)
			if err != nil {
				return err
			}
			published, err := gforms.NewPublisher(service).Publish(ctx, title, questions)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "form %s\n%s\n", published.FormID, published.ResponderURI)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "form title")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}
