package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/kanka-client/internal/constants"
	"github.com/fivetwenty-io/kanka-client/internal/http"
	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

// Client implements the kanka.Client interface.
type Client struct {
	httpClient *http.Client
	campaignID int

	resources *SubResourceClient
	gallery   *GalleryClient

	// Entity managers
	abilities          *EntityManager[kanka.Ability]
	attributeTemplates *EntityManager[kanka.AttributeTemplate]
	bookmarks          *EntityManager[kanka.Bookmark]
	calendars          *EntityManager[kanka.Calendar]
	characters         *EntityManager[kanka.Character]
	conversations      *EntityManager[kanka.Conversation]
	creatures          *EntityManager[kanka.Creature]
	diceRolls          *EntityManager[kanka.DiceRoll]
	events             *EntityManager[kanka.Event]
	families           *EntityManager[kanka.Family]
	items              *EntityManager[kanka.Item]
	journals           *EntityManager[kanka.Journal]
	locations          *EntityManager[kanka.Location]
	maps               *EntityManager[kanka.Map]
	notes              *EntityManager[kanka.Note]
	organisations      *EntityManager[kanka.Organisation]
	quests             *EntityManager[kanka.Quest]
	races              *EntityManager[kanka.Race]
	tags               *EntityManager[kanka.Tag]
	timelines          *EntityManager[kanka.Timeline]
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *kanka.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	retryMax := constants.DefaultRateLimitRetryMax
	retryWaitMin := constants.DefaultRetryWaitMin
	retryWaitMax := constants.DefaultRetryWaitMax

	if config.RetryMax > 0 {
		retryMax = config.RetryMax
	}

	if config.RetryWaitMin > 0 {
		retryWaitMin = config.RetryWaitMin
	}

	if config.RetryWaitMax > 0 {
		retryWaitMax = config.RetryWaitMax
	}

	httpOpts = append(httpOpts,
		http.WithRetryConfig(retryMax, retryWaitMin, retryWaitMax),
		http.WithRateLimitRetry(!config.DisableRateLimitRetry),
	)

	if chain := interceptorChain(config); chain != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(chain))
	}

	return httpOpts
}

// interceptorChain combines the configured interceptors with the client-side
// throttle. The caller's chain is not modified.
func interceptorChain(config *kanka.Config) *kanka.InterceptorChain {
	if config.RequestsPerMinute <= 0 {
		return config.Interceptors
	}

	chain := kanka.NewInterceptorChain()
	chain.AddRequestInterceptor(kanka.ThrottleInterceptor(config.RequestsPerMinute))

	if caller := config.Interceptors; caller != nil {
		chain.AddRequestInterceptor(caller.ExecuteRequestInterceptors)
		chain.AddResponseInterceptor(caller.ExecuteResponseInterceptors)
	}

	return chain
}

// New creates a campaign-scoped Kanka client. The config is expected to be
// validated and normalized by the caller.
func New(ctx context.Context, config *kanka.Config) (*Client, error) {
	if config == nil {
		return nil, kanka.ErrConfigRequired
	}

	if config.Token == "" {
		return nil, kanka.ErrTokenRequired
	}

	if config.CampaignID <= 0 {
		return nil, fmt.Errorf("%w: %d", kanka.ErrCampaignIDRequired, config.CampaignID)
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}

	campaignURL := strings.TrimSuffix(baseURL, "/") + "/" + constants.PathCampaigns + "/" + strconv.Itoa(config.CampaignID)

	httpClient := http.NewClient(campaignURL, http.StaticTokenManager(config.Token), createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		campaignID: config.CampaignID,
	}

	// Initialize resource clients
	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.gallery = NewGalleryClient(c.httpClient)
	c.resources = NewSubResourceClient(c.httpClient, c.gallery)

	c.abilities = NewEntityManager[kanka.Ability](c.httpClient, c.resources, constants.EndpointAbilities, "ability")
	c.attributeTemplates = NewEntityManager[kanka.AttributeTemplate](c.httpClient, c.resources, constants.EndpointAttributeTemplates, "attribute template")
	c.bookmarks = NewEntityManager[kanka.Bookmark](c.httpClient, c.resources, constants.EndpointBookmarks, "bookmark")
	c.calendars = NewEntityManager[kanka.Calendar](c.httpClient, c.resources, constants.EndpointCalendars, "calendar")
	c.characters = NewEntityManager[kanka.Character](c.httpClient, c.resources, constants.EndpointCharacters, "character")
	c.conversations = NewEntityManager[kanka.Conversation](c.httpClient, c.resources, constants.EndpointConversations, "conversation")
	c.creatures = NewEntityManager[kanka.Creature](c.httpClient, c.resources, constants.EndpointCreatures, "creature")
	c.diceRolls = NewEntityManager[kanka.DiceRoll](c.httpClient, c.resources, constants.EndpointDiceRolls, "dice roll")
	c.events = NewEntityManager[kanka.Event](c.httpClient, c.resources, constants.EndpointEvents, "event")
	c.families = NewEntityManager[kanka.Family](c.httpClient, c.resources, constants.EndpointFamilies, "family")
	c.items = NewEntityManager[kanka.Item](c.httpClient, c.resources, constants.EndpointItems, "item")
	c.journals = NewEntityManager[kanka.Journal](c.httpClient, c.resources, constants.EndpointJournals, "journal")
	c.locations = NewEntityManager[kanka.Location](c.httpClient, c.resources, constants.EndpointLocations, "location")
	c.maps = NewEntityManager[kanka.Map](c.httpClient, c.resources, constants.EndpointMaps, "map")
	c.notes = NewEntityManager[kanka.Note](c.httpClient, c.resources, constants.EndpointNotes, "note")
	c.organisations = NewEntityManager[kanka.Organisation](c.httpClient, c.resources, constants.EndpointOrganisations, "organisation")
	c.quests = NewEntityManager[kanka.Quest](c.httpClient, c.resources, constants.EndpointQuests, "quest")
	c.races = NewEntityManager[kanka.Race](c.httpClient, c.resources, constants.EndpointRaces, "race")
	c.tags = NewEntityManager[kanka.Tag](c.httpClient, c.resources, constants.EndpointTags, "tag")
	c.timelines = NewEntityManager[kanka.Timeline](c.httpClient, c.resources, constants.EndpointTimelines, "timeline")
}

// CampaignID implements kanka.Client.CampaignID.
func (c *Client) CampaignID() int {
	return c.campaignID
}

// Search implements kanka.Client.Search.
func (c *Client) Search(ctx context.Context, term string, opts *kanka.PageOptions) (*kanka.ListResponse[kanka.SearchResult], error) {
	if strings.TrimSpace(term) == "" {
		return nil, kanka.ErrSearchTermRequired
	}

	resp, err := c.httpClient.Get(ctx, constants.PathSearch+"/"+url.PathEscape(term), pageValues(opts))
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	results, err := kanka.DecodeList[kanka.SearchResult](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	return results, nil
}

// Entities implements kanka.Client.Entities. Unlike typed listings no page
// defaults are applied.
func (c *Client) Entities(ctx context.Context, opts *kanka.ListOptions) (*kanka.ListResponse[kanka.GenericEntity], error) {
	resp, err := c.httpClient.Get(ctx, constants.PathEntities, opts.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}

	entities, err := kanka.DecodeList[kanka.GenericEntity](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing entities list response: %w", err)
	}

	return entities, nil
}

// Entity implements kanka.Client.Entity.
func (c *Client) Entity(ctx context.Context, entityID int) (*kanka.GenericEntity, error) {
	if entityID <= 0 {
		return nil, fmt.Errorf("%w: %d", kanka.ErrEntityIDRequired, entityID)
	}

	resp, err := c.httpClient.Get(ctx, entityPath(entityID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting entity: %w", err)
	}

	entity, err := kanka.DecodeData[kanka.GenericEntity](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing entity response: %w", err)
	}

	return entity, nil
}

// EntityResources implements kanka.Client.EntityResources.
func (c *Client) EntityResources() kanka.SubResourceClient {
	return c.resources
}

// Gallery implements kanka.Client.Gallery.
func (c *Client) Gallery() kanka.GalleryClient {
	return c.gallery
}

// Abilities implements kanka.Client.Abilities.
func (c *Client) Abilities() kanka.EntityManager[kanka.Ability] {
	return c.abilities
}

// AttributeTemplates implements kanka.Client.AttributeTemplates.
func (c *Client) AttributeTemplates() kanka.EntityManager[kanka.AttributeTemplate] {
	return c.attributeTemplates
}

// Bookmarks implements kanka.Client.Bookmarks.
func (c *Client) Bookmarks() kanka.EntityManager[kanka.Bookmark] {
	return c.bookmarks
}

// Calendars implements kanka.Client.Calendars.
func (c *Client) Calendars() kanka.EntityManager[kanka.Calendar] {
	return c.calendars
}

// Characters implements kanka.Client.Characters.
func (c *Client) Characters() kanka.EntityManager[kanka.Character] {
	return c.characters
}

// Conversations implements kanka.Client.Conversations.
func (c *Client) Conversations() kanka.EntityManager[kanka.Conversation] {
	return c.conversations
}

// Creatures implements kanka.Client.Creatures.
func (c *Client) Creatures() kanka.EntityManager[kanka.Creature] {
	return c.creatures
}

// DiceRolls implements kanka.Client.DiceRolls.
func (c *Client) DiceRolls() kanka.EntityManager[kanka.DiceRoll] {
	return c.diceRolls
}

// Events implements kanka.Client.Events.
func (c *Client) Events() kanka.EntityManager[kanka.Event] {
	return c.events
}

// Families implements kanka.Client.Families.
func (c *Client) Families() kanka.EntityManager[kanka.Family] {
	return c.families
}

// Items implements kanka.Client.Items.
func (c *Client) Items() kanka.EntityManager[kanka.Item] {
	return c.items
}

// Journals implements kanka.Client.Journals.
func (c *Client) Journals() kanka.EntityManager[kanka.Journal] {
	return c.journals
}

// Locations implements kanka.Client.Locations.
func (c *Client) Locations() kanka.EntityManager[kanka.Location] {
	return c.locations
}

// Maps implements kanka.Client.Maps.
func (c *Client) Maps() kanka.EntityManager[kanka.Map] {
	return c.maps
}

// Notes implements kanka.Client.Notes.
func (c *Client) Notes() kanka.EntityManager[kanka.Note] {
	return c.notes
}

// Organisations implements kanka.Client.Organisations.
func (c *Client) Organisations() kanka.EntityManager[kanka.Organisation] {
	return c.organisations
}

// Quests implements kanka.Client.Quests.
func (c *Client) Quests() kanka.EntityManager[kanka.Quest] {
	return c.quests
}

// Races implements kanka.Client.Races.
func (c *Client) Races() kanka.EntityManager[kanka.Race] {
	return c.races
}

// Tags implements kanka.Client.Tags.
func (c *Client) Tags() kanka.EntityManager[kanka.Tag] {
	return c.tags
}

// Timelines implements kanka.Client.Timelines.
func (c *Client) Timelines() kanka.EntityManager[kanka.Timeline] {
	return c.timelines
}
