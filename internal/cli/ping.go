package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// pingCmd represents the ping command
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the prediction service is up",
	Args:  cobra.NoArgs,
	RunE:  runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
	addClientFlags(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	bindClientFlags(cmd)

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	status, err := newClient(cfg).Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("%s is not reachable: %w", cfg.Client.Endpoint, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is %s (classifier: %s)\n", cfg.Client.Endpoint, status.Status, status.Classifier)
	return nil
}
