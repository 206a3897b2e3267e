package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/reviewlens/internal/submit"
	"github.com/ppiankov/reviewlens/internal/terminal"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [review text]",
	Short: "Submit one review to the prediction service",
	Long: `Check sends one review to the prediction endpoint and prints the outcome
the same way the browser form shows it: "Prediction: Fake" in red,
any other prediction in green, and errors in red.

With no arguments the review is read from stdin.

Example:
  reviewlens check "Best purchase ever!!! Five stars!!!"
  cat review.txt | reviewlens check --endpoint http://reviews.internal:5000`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addClientFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	bindClientFlags(cmd)

	review, err := reviewText(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Debug("Submitting review",
		zap.String("endpoint", cfg.Client.Endpoint),
		zap.Int("review_length", len(review)),
	)

	out := terminal.NewOutput(cmd.OutOrStdout(), colorDisabled())
	h := submit.NewHandler(terminal.Text(review), out, newClient(cfg), log)

	if d := h.Submit(cmd.Context(), &terminal.Event{}); d.IsError() {
		return ErrSubmissionFailed
	}
	return nil
}

// reviewText joins args, or reads all of r when there are none.
// The text is not validated: an empty review is submitted as-is.
func reviewText(args []string, r io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read review from stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}
