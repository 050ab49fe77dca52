// Package kankaclient provides the primary entry point for constructing a
// Kanka API client that implements the kanka.Client interface.
//
// It validates and normalizes the configuration, then wires the HTTP
// transport, rate limit handling and interceptors underneath the managers
// defined in the kanka package. Most applications import kankaclient to build
// a client and then work through the returned kanka.Client.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/kanka-client/pkg/kanka"
//	  "github.com/fivetwenty-io/kanka-client/pkg/kankaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := kankaclient.New(ctx, &kanka.Config{
//	    Token:      "personal-access-token",
//	    CampaignID: 12345,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  characters, err := cli.Characters().List(ctx, kanka.NewListOptions().WithName("Aria"))
//	  if err != nil { log.Fatal(err) }
//	  _ = characters
//	}
//
// # Base URL
//
// Config.BaseURL defaults to https://api.kanka.io/1.0. A trailing slash is
// removed and https:// is assumed when no scheme is given, so
// "api.kanka.io/1.0/" and "https://api.kanka.io/1.0" are equivalent.
//
// # Helpers
//
// NewWithToken builds a client for the public API from a token and a campaign
// id.
package kankaclient
