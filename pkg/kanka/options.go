package kanka

// WriteOptions collects the optional behaviour of create and update calls.
type WriteOptions struct {
	// Images maps placeholder src values in the entry to local files that are
	// uploaded as managed assets.
	Images Images
}

// WriteOption configures a create or update call.
type WriteOption func(*WriteOptions)

// WithImages uploads local files as managed assets and rewrites the matching
// src attributes of the entry to their URLs.
func WithImages(images Images) WriteOption {
	return func(o *WriteOptions) {
		if o.Images == nil {
			o.Images = Images{}
		}

		for placeholder, path := range images {
			o.Images[placeholder] = path
		}
	}
}

// ApplyWriteOptions folds options into a WriteOptions value.
func ApplyWriteOptions(opts ...WriteOption) *WriteOptions {
	options := &WriteOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	return options
}

// PostCreate is the request for creating a post.
type PostCreate struct {
	Name       string
	Entry      string
	Visibility Visibility
	// Fields carries any other post attribute (is_pinned, position, ...).
	Fields Fields
}

// FileAssetCreate holds the optional attributes of a file asset upload.
type FileAssetCreate struct {
	// Name defaults to the file name without its extension.
	Name       string
	Visibility Visibility
	IsPinned   bool
}

// LinkAssetCreate is the request for creating a link asset.
type LinkAssetCreate struct {
	Name       string
	URL        string
	Icon       string
	Visibility Visibility
	IsPinned   bool
}

// AliasAssetCreate is the request for creating an alias asset.
type AliasAssetCreate struct {
	Name       string
	Visibility Visibility
	IsPinned   bool
}

// DeleteAssetOptions controls asset deletion.
type DeleteAssetOptions struct {
	// DeleteGalleryImage also removes the gallery image that backs a file asset.
	DeleteGalleryImage bool
}
