// Package mcp exposes a campaign to Model Context Protocol clients over a
// small set of read and post-writing tools.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

type Server struct {
	client kanka.Client
	logger *zap.Logger
	mcp    *sdk.Server
}

func NewServer(client kanka.Client, logger *zap.Logger, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		client: client,
		logger: logger,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "kanka",
			Version: version,
		}, nil),
	}
	s.registerTools()

	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	s.logger.Info("mcp server starting", zap.Int("campaign_id", s.client.CampaignID()))

	return s.mcp.Run(ctx, transport)
}
