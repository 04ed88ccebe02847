package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vibespecs/vibespecs/internal/conversation"
	"github.com/vibespecs/vibespecs/internal/export"
	"github.com/vibespecs/vibespecs/internal/gateway"
	"github.com/vibespecs/vibespecs/internal/prd"
)

var (
	generateAdvanced bool
	generateOffline  bool
	generateOutput   string
)

// sampleGenerator satisfies conversation.Generator without touching the
// network; used by --offline.
type sampleGenerator struct{}

func (sampleGenerator) Generate(ctx context.Context, idea string, advanced bool) (*prd.Document, error) {
	return prd.Sample(idea), nil
}

var generateCmd = &cobra.Command{
	Use:   "generate [idea...]",
	Short: "Generate a PRD from an app idea",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idea := strings.Join(args, " ")

		var generator conversation.Generator
		if generateOffline {
			generator = sampleGenerator{}
		} else {
			if vibespecsApp.Gateway == nil {
				return errors.New("no gateway API key configured; set VIBESPECS_GATEWAY_API_KEY or use --offline")
			}
			generator = vibespecsApp.Gateway
		}

		session := conversation.NewSession(generator)
		message, err := session.Submit(cmd.Context(), idea, generateAdvanced)
		if err != nil {
			var genErr *gateway.GenerationError
			if errors.As(err, &genErr) && genErr.Retryable() {
				return fmt.Errorf("%w (you can retry)", err)
			}
			return err
		}

		text, err := export.Render(message.PRD, export.Format(generateOutput))
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, text)
		return nil
	},
}

func init() {
	generateCmd.Flags().BoolVar(&generateAdvanced, "advanced", false, "Request a more detailed PRD")
	generateCmd.Flags().BoolVar(&generateOffline, "offline", false, "Use the built-in sample PRD instead of the gateway")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "json", "Output format (json, markdown, prompt, steps)")
	rootCmd.AddCommand(generateCmd)
}
