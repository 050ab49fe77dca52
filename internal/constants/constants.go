package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API endpoint defaults.
const (
	// DefaultBaseURL is the public Kanka API root.
	DefaultBaseURL = "https://api.kanka.io/1.0"

	// DefaultUserAgent is sent when the caller does not override it.
	DefaultUserAgent = "kanka-client-go"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as credential checks.
	ShortHTTPTimeout = 10 * time.Second
)

// Rate limit retry.
const (
	// DefaultRateLimitRetryMax bounds how often a single request is replayed after a 429.
	DefaultRateLimitRetryMax = 1

	// DefaultRetryWaitMin is the smallest wait between rate limit retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax caps the Retry-After hint. Kanka windows are one minute.
	DefaultRetryWaitMax = 60 * time.Second
)

// Pagination.
const (
	// DefaultPage is the first page of any listing.
	DefaultPage = 1

	// DefaultPageLimit is the default number of records per page.
	DefaultPageLimit = 30

	// MaxPageLimit is the largest page size the API accepts.
	MaxPageLimit = 100
)

// Entity asset type ids.
const (
	AssetTypeFile  = 1
	AssetTypeLink  = 2
	AssetTypeAlias = 3
)

// Managed image assets.
const (
	// ManagedLabelMaxLength is how many characters of the placeholder label are kept.
	ManagedLabelMaxLength = 32

	// ManagedHashLength is the number of sha256 hex characters kept in the asset name.
	ManagedHashLength = 12

	// ManagedNameMaxLength is the longest managed asset name (label, colon, hash).
	ManagedNameMaxLength = ManagedLabelMaxLength + 1 + ManagedHashLength
)

// API path segments.
const (
	PathCampaigns    = "campaigns"
	PathEntities     = "entities"
	PathPosts        = "posts"
	PathEntityAssets = "entity_assets"
	PathEntityImage  = "image"
	PathGallery      = "images"
	PathSearch       = "search"
)

// Entity type endpoints.
const (
	EndpointAbilities          = "abilities"
	EndpointAttributeTemplates = "attribute_templates"
	EndpointBookmarks          = "bookmarks"
	EndpointCalendars          = "calendars"
	EndpointCharacters         = "characters"
	EndpointConversations      = "conversations"
	EndpointCreatures          = "creatures"
	EndpointDiceRolls          = "dice_rolls"
	EndpointEvents             = "events"
	EndpointFamilies           = "families"
	EndpointItems              = "items"
	EndpointJournals           = "journals"
	EndpointLocations          = "locations"
	EndpointMaps               = "maps"
	EndpointNotes              = "notes"
	EndpointOrganisations      = "organisations"
	EndpointQuests             = "quests"
	EndpointRaces              = "races"
	EndpointTags               = "tags"
	EndpointTimelines          = "timelines"
)

// Multipart form fields.
const (
	FormFieldFile        = "file"
	FormFieldGalleryFile = "file[]"
	FormFieldFolderID    = "folder_id"
)

// Output formats.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// Display.
const (
	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// EntryPreviewLength is how much of an entry a table cell shows.
	EntryPreviewLength = 60

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)
