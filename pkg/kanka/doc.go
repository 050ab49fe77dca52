// Package kanka provides types, interfaces, and helpers for working with the
// Kanka campaign-management API.
//
// # Overview
//
// The kanka package defines the entity models (Character, Location,
// Organisation and the other entity types), the sub-resource models (Post,
// EntityAsset, GalleryImage) and the client interfaces. A concrete client is
// built by the kankaclient package:
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
//	  cli, err := kankaclient.NewWithToken(ctx, "token", 12345)
//	  if err != nil { log.Fatal(err) }
//
//	  chars, err := cli.Characters().List(ctx, kanka.NewListOptions().WithTags(1, 2))
//	  if err != nil { log.Fatal(err) }
//	  _ = chars
//	}
//
// # Two kinds of id
//
// Every entity has an ID, unique within its type's endpoint, and an
// EntityID, unique across all types. Managers take the type-specific id
// (kanka.ID or a fetched entity) for CRUD and the universal id
// (kanka.EntityID, a fetched entity or a search result) for posts, assets
// and images.
//
// # Updates
//
// Update with a fetched entity sends only the fields that changed; if none
// did, no request is made:
//
//	char, _ := cli.Characters().Get(ctx, 42)
//	char, err = cli.Characters().Update(ctx, char, kanka.Fields{"title": "Queen"})
//
// # Managed images
//
// WithImages uploads local files as entity assets named "<label>:<hash>",
// rewrites src="<label>" in the entry to the asset URL, and on later updates
// reuses unchanged files, replaces changed ones and deletes dropped ones.
//
// # Pagination
//
// List returns one page wrapped in ListResponse with its links and meta.
// ListAll and PaginationIterator walk every page.
//
// # Errors
//
// Non-2xx responses are *APIError values that unwrap to ErrAuthentication,
// ErrForbidden, ErrNotFound, ErrValidation, ErrRateLimit or ErrAPI; use
// IsNotFound and friends to branch on them.
package kanka
