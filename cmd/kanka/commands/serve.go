package commands

import (
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fivetwenty-io/kanka-client/internal/mcp"
)

// NewServeCommand creates the serve command.
func NewServeCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Long:  "Expose the configured campaign to MCP clients over stdin and stdout. Logs are written to stderr.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			logger := newLogger()
			defer func() { _ = logger.Sync() }()

			server := mcp.NewServer(client, logger.With(zap.String("component", "mcp")), version)

			return server.Run(ctx, &sdk.StdioTransport{})
		},
	}
}
