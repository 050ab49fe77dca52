package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/internal/http"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

// SubResourceClient implements kanka.SubResourceClient.
type SubResourceClient struct {
	httpClient *http.Client
	gallery    *GalleryClient
}

// NewSubResourceClient creates a new sub-resource client.
func NewSubResourceClient(httpClient *http.Client, gallery *GalleryClient) *SubResourceClient {
	return &SubResourceClient{
		httpClient: httpClient,
		gallery:    gallery,
	}
}

// entityPath builds "entities/<id>/<parts...>".
func entityPath(entityID int, parts ...string) string {
	path := constants.PathEntities + "/" + strconv.Itoa(entityID)
	for _, part := range parts {
		path += "/" + part
	}

	return path
}

// pageValues applies the default page and limit to page options.
func pageValues(opts *kanka.PageOptions) url.Values {
	values := opts.ToValues()
	if values.Get("page") == "" {
		values.Set("page", strconv.Itoa(constants.DefaultPage))
	}

	if values.Get("limit") == "" {
		values.Set("limit", strconv.Itoa(constants.DefaultPageLimit))
	}

	return values
}

// ListPosts implements kanka.SubResourceClient.ListPosts.
func (c *SubResourceClient) ListPosts(ctx context.Context, ref kanka.EntityRef, opts *kanka.PageOptions) (*kanka.ListResponse[kanka.Post], error) {
	entityID, err := kanka.EntityIDOf(ref)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, entityPath(entityID, constants.PathPosts), pageValues(opts))
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	posts, err := kanka.DecodeList[kanka.Post](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing posts list response: %w", err)
	}

	return posts, nil
}

// GetPost implements kanka.SubResourceClient.GetPost.
func (c *SubResourceClient) GetPost(ctx context.Context, ref kanka.EntityRef, postID int) (*kanka.Post, error) {
	entityID, err := kanka.EntityIDOf(ref)
	if err != nil {
		return nil, err
	}

	return c.getPost(ctx, entityID, postID)
}

func (c *SubResourceClient) getPost(ctx context.Context, entityID, postID int) (*kanka.Post, error) {
	resp, err := c.httpClient.Get(ctx, entityPath(entityID, constants.PathPosts, strconv.Itoa(postID)), nil)
	if err != nil {
		return nil, fmt.Errorf("getting post: %w", err)
	}

	post, err := kanka.DecodeData[kanka.Post](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing post response: %w", err)
	}

	return post, nil
}

// CreatePost implements kanka.SubResourceClient.CreatePost. Images are
// uploaded before the post is created so the stored entry already points at
// the managed assets.
func (c *SubResourceClient) CreatePost(
	ctx context.Context,
	ref kanka.EntityRef,
	post *kanka.PostCreate,
	opts ...kanka.WriteOption,
) (*kanka.Post, error) {
	entityID, err := kanka.EntityIDOf(ref)
	if err != nil {
		return nil, err
	}

	if post == nil {
		post = &kanka.PostCreate{}
	}

	options := kanka.ApplyWriteOptions(opts...)

	entry, err := c.uploadManagedImages(ctx, entityID, post.Entry, options.Images)
	if err != nil {
		return nil, err
	}

	payload := kanka.Fields{}
	for key, value := range post.Fields {
		payload[key] = value
	}

	payload["name"] = post.Name
	payload["entry"] = entry

	if post.Visibility != kanka.VisibilityDefault {
		payload["visibility_id"] = int(post.Visibility)
	}

	resp, err := c.httpClient.Post(ctx, entityPath(entityID, constants.PathPosts), payload)
	if err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	created, err := kanka.DecodeData[kanka.Post](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing post response: %w", err)
	}

	return created, nil
}

// UpdatePost implements kanka.SubResourceClient.UpdatePost. The API requires
// a name on every post update, so the current one is sent when fields omit it.
func (c *SubResourceClient) UpdatePost(
	ctx context.Context,
	ref kanka.EntityRef,
	postID int,
	fields kanka.Fields,
	opts ...kanka.WriteOption,
) (*kanka.Post, error) {
	entityID, err := kanka.EntityIDOf(ref)
	if err != nil {
		return nil, err
	}

	options := kanka.ApplyWriteOptions(opts...)

	payload := kanka.Fields{}
	for key, value := range fields {
		payload[key] = value
	}

	_, hasName := payload["name"]
	rawEntry, hasEntry := payload["entry"]
	withImages := len(options.Images) > 0

	var current *kanka.Post
	if !hasName || (withImages && !hasEntry) {
		current, err = c.getPost(ctx, entityID, postID)
		if err != nil {
			return nil, err
		}
	}

	if !hasName {
		payload["name"] = current.Name
	}

	if withImages {
		var entry string
		if hasEntry {
			str, ok := rawEntry.(string)
			if !ok {
				return nil, fmt.Errorf("%w: got %T", kanka.ErrInvalidEntry, rawEntry)
			}

			entry = str
		} else {
			entry = current.Entry
		}

		updated, err := c.reconcileManagedImages(ctx, entityID, entry, options.Images)
		if err != nil {
			return nil, err
		}

		if hasEntry || updated != entry {
			payload["entry"] = updated
		}
	}

	resp, err := c.httpClient.Patch(ctx, entityPath(entityID, constants.PathPosts, strconv.Itoa(postID)), payload)
	if err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}

	post, err := kanka.DecodeData[kanka.Post](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing post response: %w", err)
	}

	return post, nil
}

// DeletePost implements kanka.SubResourceClient.DeletePost.
func (c *SubResourceClient) DeletePost(ctx context.Context, ref kanka.EntityRef, postID int) error {
	entityID, err := kanka.EntityIDOf(ref)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, entityPath(entityID, constants.PathPosts, strconv.Itoa(postID)))
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}

	return nil
}
