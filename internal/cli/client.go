package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/reviewlens/internal/model"
	"github.com/ppiankov/reviewlens/internal/predict"
)

var noColor bool

// addClientFlags registers the endpoint flags shared by commands that talk to the service
func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().String("endpoint", model.DefaultConfig().Client.Endpoint, "prediction service base URL")
	cmd.Flags().Duration("timeout", 0, "request timeout (0 waits indefinitely)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// bindClientFlags binds the shared flags of the running command.
// Binding happens at run time because several commands share the same keys.
func bindClientFlags(cmd *cobra.Command) {
	_ = viper.BindPFlag("client.endpoint", cmd.Flags().Lookup("endpoint"))
	_ = viper.BindPFlag("client.timeout", cmd.Flags().Lookup("timeout"))
}

func newClient(cfg *model.Config) *predict.Client {
	return predict.NewClientFromConfig(cfg.Client)
}

func colorDisabled() bool {
	return noColor || color.NoColor
}
