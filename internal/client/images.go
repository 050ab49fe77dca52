package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

// GetImage implements kanka.SubResourceClient.GetImage.
func (c *SubResourceClient) GetImage(ctx context.Context, ref kanka.EntityRef) (*kanka.EntityImageInfo, error) {
	entityID, err := kanka.EntityIDOf(ref)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, entityPath(entityID, constants.PathEntityImage), nil)
	if err != nil {
		return nil, fmt.Errorf("getting entity image: %w", err)
	}

	info, err := kanka.DecodeData[kanka.EntityImageInfo](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing entity image response: %w", err)
	}

	return info, nil
}

// SetImage implements kanka.SubResourceClient.SetImage. With header set the
// file becomes the header image instead of the main image.
func (c *SubResourceClient) SetImage(
	ctx context.Context,
	ref kanka.EntityRef,
	path string,
	header bool,
) (*kanka.EntityImageInfo, error) {
	entityID, err := kanka.EntityIDOf(ref)
	if err != nil {
		return nil, err
	}

	file, err := readUploadFile(constants.FormFieldFile, path)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if header {
		fields["is_header"] = "1"
	}

	body, err := uploadMultipartFile(ctx, c.httpClient, entityPath(entityID, constants.PathEntityImage), fields, file, "entity image")
	if err != nil {
		return nil, err
	}

	info, err := kanka.DecodeData[kanka.EntityImageInfo](body)
	if err != nil {
		return nil, fmt.Errorf("parsing entity image response: %w", err)
	}

	return info, nil
}

// DeleteImage implements kanka.SubResourceClient.DeleteImage.
func (c *SubResourceClient) DeleteImage(ctx context.Context, ref kanka.EntityRef, header bool) error {
	entityID, err := kanka.EntityIDOf(ref)
	if err != nil {
		return err
	}

	var query url.Values
	if header {
		query = url.Values{"is_header": []string{"1"}}
	}

	_, err = c.httpClient.DeleteWithQuery(ctx, entityPath(entityID, constants.PathEntityImage), query)
	if err != nil {
		return fmt.Errorf("deleting entity image: %w", err)
	}

	return nil
}
