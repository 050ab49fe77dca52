// Package kankaclient provides the main entry point for creating Kanka API clients
package kankaclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/kanka-client/internal/client"
	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

// New creates a new campaign-scoped Kanka API client. The config is copied;
// the caller's value is not modified.
func New(ctx context.Context, config *kanka.Config) (kanka.Client, error) {
	if config == nil {
		return nil, kanka.ErrConfigRequired
	}

	if strings.TrimSpace(config.Token) == "" {
		return nil, kanka.ErrTokenRequired
	}

	if config.CampaignID <= 0 {
		return nil, fmt.Errorf("%w: got %d", kanka.ErrCampaignIDRequired, config.CampaignID)
	}

	normalized := *config
	normalized.BaseURL = NormalizeBaseURL(config.BaseURL)

	kankaClient, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return kankaClient, nil
}

// NormalizeBaseURL trims a trailing slash and adds https:// when no scheme is
// given. An empty value yields the public Kanka API.
func NormalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return constants.DefaultBaseURL
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}

// NewWithToken creates a new client for the public Kanka API with a personal
// access token.
func NewWithToken(ctx context.Context, token string, campaignID int) (kanka.Client, error) {
	return New(ctx, &kanka.Config{
		Token:      token,
		CampaignID: campaignID,
	})
}
