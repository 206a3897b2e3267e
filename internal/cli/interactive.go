package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/reviewlens/internal/submit"
	"github.com/ppiankov/reviewlens/internal/terminal"
)

// interactiveCmd represents the interactive command
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Submit one review per input line",
	Long: `Interactive reads reviews from stdin, one per line, and submits each as
soon as it is entered. Requests are not queued or cancelled: results are
printed in the order the service answers them.

End input with Ctrl-D.`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
	addClientFlags(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	bindClientFlags(cmd)

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	form := terminal.NewLineForm(cmd.InOrStdin())
	out := terminal.NewOutput(cmd.OutOrStdout(), colorDisabled())
	h := submit.Attach(ctx, form, form, out, newClient(cfg), log)

	fmt.Fprintf(os.Stderr, "Submitting to %s, one review per line (Ctrl-D to finish)\n", cfg.Client.Endpoint)

	n, err := form.Run(ctx)
	h.Wait()

	log.Debug("Interactive session finished", zap.Int("submissions", n))
	return err
}
