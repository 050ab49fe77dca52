package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

func boolFlag(value bool) string {
	if value {
		return "1"
	}

	return "0"
}

// ListAssets implements kanka.SubResourceClient.ListAssets.
func (c *SubResourceClient) ListAssets(
	ctx context.Context,
	ref kanka.EntityRef,
	opts *kanka.PageOptions,
) (*kanka.ListResponse[kanka.EntityAsset], error) {
	entityID, err := kanka.EntityIDOf(ref)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, entityPath(entityID, constants.PathEntityAssets), pageValues(opts))
	if err != nil {
		return nil, fmt.Errorf("listing entity assets: %w", err)
	}

	assets, err := kanka.DecodeList[kanka.EntityAsset](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing entity assets list response: %w", err)
	}

	return assets, nil
}

// GetAsset implements kanka.SubResourceClient.GetAsset.
func (c *SubResourceClient) GetAsset(ctx context.Context, ref kanka.EntityRef, assetID int) (*kanka.EntityAsset, error) {
	entityID, err := kanka.EntityIDOf(ref)
	if err != nil {
		return nil, err
	}

	return c.getAsset(ctx, entityID, assetID)
}

func (c *SubResourceClient) getAsset(ctx context.Context, entityID, assetID int) (*kanka.EntityAsset, error) {
	resp, err := c.httpClient.Get(ctx, entityPath(entityID, constants.PathEntityAssets, strconv.Itoa(assetID)), nil)
	if err != nil {
		return nil, fmt.Errorf("getting entity asset: %w", err)
	}

	asset, err := kanka.DecodeData[kanka.EntityAsset](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing entity asset response: %w", err)
	}

	return asset, nil
}

// CreateFileAsset implements kanka.SubResourceClient.CreateFileAsset.
func (c *SubResourceClient) CreateFileAsset(
	ctx context.Context,
	ref kanka.EntityRef,
	path string,
	opts *kanka.FileAssetCreate,
) (*kanka.EntityAsset, error) {
	entityID, err := kanka.EntityIDOf(ref)
	if err != nil {
		return nil, err
	}

	file, err := readUploadFile(constants.FormFieldFile, path)
	if err != nil {
		return nil, err
	}

	create := kanka.FileAssetCreate{}
	if opts != nil {
		create = *opts
	}

	if create.Name == "" {
		create.Name = fileStem(path)
	}

	return c.uploadFileAsset(ctx, entityID, file, &create)
}

func (c *SubResourceClient) uploadFileAsset(
	ctx context.Context,
	entityID int,
	file *uploadFile,
	opts *kanka.FileAssetCreate,
) (*kanka.EntityAsset, error) {
	fields := map[string]string{
		"type_id":   strconv.Itoa(constants.AssetTypeFile),
		"name":      opts.Name,
		"is_pinned": boolFlag(opts.IsPinned),
	}

	if opts.Visibility != kanka.VisibilityDefault {
		fields["visibility_id"] = strconv.Itoa(int(opts.Visibility))
	}

	body, err := uploadMultipartFile(ctx, c.httpClient, entityPath(entityID, constants.PathEntityAssets), fields, file, "entity asset")
	if err != nil {
		return nil, err
	}

	asset, err := kanka.DecodeData[kanka.EntityAsset](body)
	if err != nil {
		return nil, fmt.Errorf("parsing entity asset response: %w", err)
	}

	return asset, nil
}

// CreateLinkAsset implements kanka.SubResourceClient.CreateLinkAsset.
func (c *SubResourceClient) CreateLinkAsset(
	ctx context.Context,
	ref kanka.EntityRef,
	link *kanka.LinkAssetCreate,
) (*kanka.EntityAsset, error) {
	if link == nil {
		link = &kanka.LinkAssetCreate{}
	}

	metadata := map[string]any{"url": link.URL}
	if link.Icon != "" {
		metadata["icon"] = link.Icon
	}

	payload := kanka.Fields{
		"type_id":  constants.AssetTypeLink,
		"name":     link.Name,
		"metadata": metadata,
	}

	return c.createJSONAsset(ctx, ref, payload, link.Visibility, link.IsPinned)
}

// CreateAliasAsset implements kanka.SubResourceClient.CreateAliasAsset.
func (c *SubResourceClient) CreateAliasAsset(
	ctx context.Context,
	ref kanka.EntityRef,
	alias *kanka.AliasAssetCreate,
) (*kanka.EntityAsset, error) {
	if alias == nil {
		alias = &kanka.AliasAssetCreate{}
	}

	payload := kanka.Fields{
		"type_id": constants.AssetTypeAlias,
		"name":    alias.Name,
	}

	return c.createJSONAsset(ctx, ref, payload, alias.Visibility, alias.IsPinned)
}

func (c *SubResourceClient) createJSONAsset(
	ctx context.Context,
	ref kanka.EntityRef,
	payload kanka.Fields,
	visibility kanka.Visibility,
	pinned bool,
) (*kanka.EntityAsset, error) {
	entityID, err := kanka.EntityIDOf(ref)
	if err != nil {
		return nil, err
	}

	if visibility != kanka.VisibilityDefault {
		payload["visibility_id"] = int(visibility)
	}

	if pinned {
		payload["is_pinned"] = true
	}

	resp, err := c.httpClient.Post(ctx, entityPath(entityID, constants.PathEntityAssets), payload)
	if err != nil {
		return nil, fmt.Errorf("creating entity asset: %w", err)
	}

	asset, err := kanka.DecodeData[kanka.EntityAsset](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing entity asset response: %w", err)
	}

	return asset, nil
}

// DeleteAsset implements kanka.SubResourceClient.DeleteAsset. With
// DeleteGalleryImage set, the gallery image behind a file asset is removed
// too; a gallery image that is already gone is not an error.
func (c *SubResourceClient) DeleteAsset(
	ctx context.Context,
	ref kanka.EntityRef,
	assetID int,
	opts *kanka.DeleteAssetOptions,
) error {
	entityID, err := kanka.EntityIDOf(ref)
	if err != nil {
		return err
	}

	if opts == nil || !opts.DeleteGalleryImage {
		return c.deleteAsset(ctx, entityID, assetID)
	}

	asset, err := c.getAsset(ctx, entityID, assetID)
	if err != nil {
		return err
	}

	return c.deleteManagedAsset(ctx, entityID, *asset)
}

func (c *SubResourceClient) deleteAsset(ctx context.Context, entityID, assetID int) error {
	_, err := c.httpClient.Delete(ctx, entityPath(entityID, constants.PathEntityAssets, strconv.Itoa(assetID)))
	if err != nil {
		return fmt.Errorf("deleting entity asset %d: %w", assetID, err)
	}

	return nil
}
