package kanka

import (
	"context"
	"time"
)

// EntityClients provides one manager per entity type.
type EntityClients interface {
	Abilities() EntityManager[Ability]
	AttributeTemplates() EntityManager[AttributeTemplate]
	Bookmarks() EntityManager[Bookmark]
	Calendars() EntityManager[Calendar]
	Characters() EntityManager[Character]
	Conversations() EntityManager[Conversation]
	Creatures() EntityManager[Creature]
	DiceRolls() EntityManager[DiceRoll]
	Events() EntityManager[Event]
	Families() EntityManager[Family]
	Items() EntityManager[Item]
	Journals() EntityManager[Journal]
	Locations() EntityManager[Location]
	Maps() EntityManager[Map]
	Notes() EntityManager[Note]
	Organisations() EntityManager[Organisation]
	Quests() EntityManager[Quest]
	Races() EntityManager[Race]
	Tags() EntityManager[Tag]
	Timelines() EntityManager[Timeline]
}

// Client is a campaign-scoped Kanka API client.
type Client interface {
	EntityClients

	// CampaignID returns the campaign every request is scoped to.
	CampaignID() int

	// Search runs a free-text search across entity types.
	Search(ctx context.Context, term string, opts *PageOptions) (*ListResponse[SearchResult], error)

	// Entities lists entities of any type.
	Entities(ctx context.Context, opts *ListOptions) (*ListResponse[GenericEntity], error)

	// Entity fetches one entity by universal id.
	Entity(ctx context.Context, entityID int) (*GenericEntity, error)

	// EntityResources addresses posts, assets and images by universal id
	// without going through a typed manager.
	EntityResources() SubResourceClient

	Gallery() GalleryClient
}

// EntityManager provides CRUD for one entity type plus its sub-resources.
type EntityManager[T any] interface {
	SubResourceClient

	// Endpoint returns the collection path segment, e.g. "characters".
	Endpoint() string

	Get(ctx context.Context, id int) (*T, error)
	// GetRelated fetches a record with its posts and attributes.
	GetRelated(ctx context.Context, id int) (*T, error)
	List(ctx context.Context, opts *ListOptions) (*ListResponse[T], error)
	ListAll(ctx context.Context, opts *ListOptions) ([]T, error)
	Create(ctx context.Context, fields Fields, opts ...WriteOption) (*T, error)
	// Update sends exactly fields when ref is a bare ID. When ref is a
	// fetched entity only the fields that differ from it are sent, and no
	// request is made if nothing differs.
	Update(ctx context.Context, ref RecordRef, fields Fields, opts ...WriteOption) (*T, error)
	Delete(ctx context.Context, ref RecordRef) error
}

// SubResourceClient manages posts, assets and images of an entity. Every
// call resolves its EntityRef to the universal entity id.
type SubResourceClient interface {
	ListPosts(ctx context.Context, ref EntityRef, opts *PageOptions) (*ListResponse[Post], error)
	GetPost(ctx context.Context, ref EntityRef, postID int) (*Post, error)
	CreatePost(ctx context.Context, ref EntityRef, post *PostCreate, opts ...WriteOption) (*Post, error)
	UpdatePost(ctx context.Context, ref EntityRef, postID int, fields Fields, opts ...WriteOption) (*Post, error)
	DeletePost(ctx context.Context, ref EntityRef, postID int) error

	ListAssets(ctx context.Context, ref EntityRef, opts *PageOptions) (*ListResponse[EntityAsset], error)
	GetAsset(ctx context.Context, ref EntityRef, assetID int) (*EntityAsset, error)
	CreateFileAsset(ctx context.Context, ref EntityRef, path string, opts *FileAssetCreate) (*EntityAsset, error)
	CreateLinkAsset(ctx context.Context, ref EntityRef, link *LinkAssetCreate) (*EntityAsset, error)
	CreateAliasAsset(ctx context.Context, ref EntityRef, alias *AliasAssetCreate) (*EntityAsset, error)
	DeleteAsset(ctx context.Context, ref EntityRef, assetID int, opts *DeleteAssetOptions) error

	GetImage(ctx context.Context, ref EntityRef) (*EntityImageInfo, error)
	SetImage(ctx context.Context, ref EntityRef, path string, header bool) (*EntityImageInfo, error)
	DeleteImage(ctx context.Context, ref EntityRef, header bool) error
}

// GalleryClient manages the campaign gallery.
type GalleryClient interface {
	List(ctx context.Context, opts *PageOptions) (*ListResponse[GalleryImage], error)
	Get(ctx context.Context, id string) (*GalleryImage, error)
	Upload(ctx context.Context, path string, folderID string) (*GalleryImage, error)
	Delete(ctx context.Context, id string) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a kanka.Client.
//
// Requests are scoped to one campaign: every path is resolved under
// "<BaseURL>/campaigns/<CampaignID>/".
//
// # Rate limits
//
// A 429 response is retried after the server's Retry-After hint, capped at
// RetryWaitMax, up to RetryMax times per request. Set
// DisableRateLimitRetry to surface the rate limit error immediately. No
// other status is retried.
type Config struct {
	// Token is the personal access token sent as a Bearer token.
	Token string
	// CampaignID selects the campaign.
	CampaignID int
	// BaseURL defaults to https://api.kanka.io/1.0. A trailing slash is
	// trimmed and https:// is added when no scheme is given.
	BaseURL string

	// HTTPTimeout bounds each request, including retries. Defaults to 30s.
	HTTPTimeout time.Duration
	// DisableRateLimitRetry turns off the automatic 429 retry.
	DisableRateLimitRetry bool
	// RetryMax is how often one request may be replayed after a 429.
	// Defaults to 1.
	RetryMax int
	// RetryWaitMin is the backoff floor when no Retry-After hint is sent.
	RetryWaitMin time.Duration
	// RetryWaitMax caps the wait before a retry.
	RetryWaitMax time.Duration
	// RequestsPerMinute throttles the client before the server has to. Zero
	// disables throttling.
	RequestsPerMinute int

	// Debug enables HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Interceptors run around every request.
	Interceptors *InterceptorChain
}
