package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/internal/http"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

// GalleryClient implements kanka.GalleryClient.
type GalleryClient struct {
	httpClient *http.Client
}

// NewGalleryClient creates a new gallery client.
func NewGalleryClient(httpClient *http.Client) *GalleryClient {
	return &GalleryClient{
		httpClient: httpClient,
	}
}

func galleryPath(id string) string {
	return constants.PathGallery + "/" + url.PathEscape(id)
}

// List implements kanka.GalleryClient.List.
func (c *GalleryClient) List(ctx context.Context, opts *kanka.PageOptions) (*kanka.ListResponse[kanka.GalleryImage], error) {
	resp, err := c.httpClient.Get(ctx, constants.PathGallery, pageValues(opts))
	if err != nil {
		return nil, fmt.Errorf("listing gallery images: %w", err)
	}

	images, err := kanka.DecodeList[kanka.GalleryImage](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing gallery list response: %w", err)
	}

	return images, nil
}

// Get implements kanka.GalleryClient.Get.
func (c *GalleryClient) Get(ctx context.Context, id string) (*kanka.GalleryImage, error) {
	if id == "" {
		return nil, kanka.ErrGalleryIDRequired
	}

	resp, err := c.httpClient.Get(ctx, galleryPath(id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting gallery image: %w", err)
	}

	image, err := kanka.DecodeData[kanka.GalleryImage](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing gallery image response: %w", err)
	}

	return image, nil
}

// Upload implements kanka.GalleryClient.Upload. The endpoint accepts several
// files and answers with a list; the first uploaded image is returned.
func (c *GalleryClient) Upload(ctx context.Context, path string, folderID string) (*kanka.GalleryImage, error) {
	file, err := readUploadFile(constants.FormFieldGalleryFile, path)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if folderID != "" {
		fields[constants.FormFieldFolderID] = folderID
	}

	body, err := uploadMultipartFile(ctx, c.httpClient, constants.PathGallery, fields, file, "gallery image")
	if err != nil {
		return nil, err
	}

	images, err := kanka.DecodeList[kanka.GalleryImage](body)
	if err != nil {
		return nil, fmt.Errorf("parsing gallery upload response: %w", err)
	}

	if len(images.Data) == 0 {
		return nil, kanka.ErrEmptyUploadResponse
	}

	return &images.Data[0], nil
}

// Delete implements kanka.GalleryClient.Delete.
func (c *GalleryClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return kanka.ErrGalleryIDRequired
	}

	_, err := c.httpClient.Delete(ctx, galleryPath(id))
	if err != nil {
		return fmt.Errorf("deleting gallery image: %w", err)
	}

	return nil
}
