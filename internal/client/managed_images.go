package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

// Managed asset names look like "<label>:<12 hex chars of sha256>".
var managedAssetPattern = regexp.MustCompile(`^(.+):([0-9a-f]{12})$`)

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])[:constants.ManagedHashLength]
}

func managedLabel(placeholder string) string {
	runes := []rune(placeholder)
	if len(runes) > constants.ManagedLabelMaxLength {
		runes = runes[:constants.ManagedLabelMaxLength]
	}

	return string(runes)
}

func managedAssetName(placeholder, hash string) string {
	return managedLabel(placeholder) + ":" + hash
}

func parseManagedAssetName(name string) (string, string, bool) {
	match := managedAssetPattern.FindStringSubmatch(name)
	if match == nil {
		return "", "", false
	}

	return match[1], match[2], true
}

// rewriteImageSources replaces src="placeholder" and src='placeholder' with
// the uploaded URL. Other occurrences of the placeholder are left alone.
func rewriteImageSources(entry string, urls map[string]string) string {
	for _, placeholder := range sortedKeys(urls) {
		target := urls[placeholder]
		entry = strings.ReplaceAll(entry, `src="`+placeholder+`"`, `src="`+target+`"`)
		entry = strings.ReplaceAll(entry, `src='`+placeholder+`'`, `src='`+target+`'`)
	}

	return entry
}

// galleryIDFromAsset finds the gallery image backing a file asset from its
// URL or metadata path.
func galleryIDFromAsset(asset *kanka.EntityAsset) (string, bool) {
	if id, ok := galleryIDFromURL(asset.URL); ok {
		return id, true
	}

	if path, ok := asset.Metadata["path"].(string); ok {
		return galleryIDFromURL(path)
	}

	return "", false
}

func galleryIDFromURL(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	path := raw
	if parsed, err := url.Parse(raw); err == nil {
		path = parsed.Path
	}

	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		candidate, _, _ := strings.Cut(segments[i], ".")

		id, err := uuid.Parse(candidate)
		if err == nil {
			return id.String(), true
		}
	}

	return "", false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// uploadManagedImages uploads every image as a managed asset of the entity
// and rewrites the entry to point at them.
func (c *SubResourceClient) uploadManagedImages(
	ctx context.Context,
	entityID int,
	entry string,
	images kanka.Images,
) (string, error) {
	if len(images) == 0 || entry == "" {
		return entry, nil
	}

	urls := make(map[string]string, len(images))

	for _, placeholder := range sortedKeys(images) {
		file, err := readUploadFile(constants.FormFieldFile, images[placeholder])
		if err != nil {
			return "", err
		}

		asset, err := c.uploadFileAsset(ctx, entityID, file, &kanka.FileAssetCreate{
			Name: managedAssetName(placeholder, contentHash(file.data)),
		})
		if err != nil {
			return "", fmt.Errorf("uploading image %s: %w", placeholder, err)
		}

		if asset.URL != "" {
			urls[placeholder] = asset.URL
		}
	}

	return rewriteImageSources(entry, urls), nil
}

// reconcileManagedImages brings the entity's managed assets in line with
// images: unchanged files are reused, changed files replaced and labels no
// longer present deleted. The rewritten entry is returned.
func (c *SubResourceClient) reconcileManagedImages(
	ctx context.Context,
	entityID int,
	entry string,
	images kanka.Images,
) (string, error) {
	if len(images) == 0 || entry == "" {
		return entry, nil
	}

	assets, err := c.listAllAssets(ctx, entityID)
	if err != nil {
		return "", err
	}

	type managedAsset struct {
		hash  string
		asset kanka.EntityAsset
	}

	managed := map[string][]managedAsset{}

	for _, asset := range assets {
		label, hash, ok := parseManagedAssetName(asset.Name)
		if ok {
			managed[label] = append(managed[label], managedAsset{hash: hash, asset: asset})
		}
	}

	urls := make(map[string]string, len(images))
	used := map[string]bool{}

	for _, placeholder := range sortedKeys(images) {
		file, err := readUploadFile(constants.FormFieldFile, images[placeholder])
		if err != nil {
			return "", err
		}

		label := managedLabel(placeholder)
		hash := contentHash(file.data)
		used[label] = true

		reused := false

		for _, existing := range managed[label] {
			if !reused && existing.hash == hash && existing.asset.URL != "" {
				urls[placeholder] = existing.asset.URL
				reused = true

				continue
			}

			err = c.deleteManagedAsset(ctx, entityID, existing.asset)
			if err != nil {
				return "", err
			}
		}

		if reused {
			continue
		}

		asset, err := c.uploadFileAsset(ctx, entityID, file, &kanka.FileAssetCreate{
			Name: managedAssetName(placeholder, hash),
		})
		if err != nil {
			return "", fmt.Errorf("uploading image %s: %w", placeholder, err)
		}

		if asset.URL != "" {
			urls[placeholder] = asset.URL
		}
	}

	for _, label := range sortedKeys(managed) {
		if used[label] {
			continue
		}

		for _, orphan := range managed[label] {
			err = c.deleteManagedAsset(ctx, entityID, orphan.asset)
			if err != nil {
				return "", err
			}
		}
	}

	return rewriteImageSources(entry, urls), nil
}

func (c *SubResourceClient) listAllAssets(ctx context.Context, entityID int) ([]kanka.EntityAsset, error) {
	assets, err := kanka.FetchAllPages(ctx,
		func(ctx context.Context, page int) (*kanka.ListResponse[kanka.EntityAsset], error) {
			return c.ListAssets(ctx, kanka.EntityID(entityID), &kanka.PageOptions{
				Page:  page,
				Limit: constants.MaxPageLimit,
			})
		})
	if err != nil {
		return nil, fmt.Errorf("listing managed assets: %w", err)
	}

	return assets, nil
}

// deleteManagedAsset removes the asset and the gallery image it was stored as.
func (c *SubResourceClient) deleteManagedAsset(ctx context.Context, entityID int, asset kanka.EntityAsset) error {
	err := c.deleteAsset(ctx, entityID, asset.ID)
	if err != nil {
		return err
	}

	return c.deleteBackingGalleryImage(ctx, &asset)
}

func (c *SubResourceClient) deleteBackingGalleryImage(ctx context.Context, asset *kanka.EntityAsset) error {
	galleryID, ok := galleryIDFromAsset(asset)
	if !ok {
		return nil
	}

	err := c.gallery.Delete(ctx, galleryID)
	if err != nil && !kanka.IsNotFound(err) {
		return fmt.Errorf("deleting gallery image of asset %d: %w", asset.ID, err)
	}

	return nil
}
