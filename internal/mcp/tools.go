package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

var (
	errTermRequired     = errors.New("term is required")
	errTypeRequired     = errors.New("type is required")
	errIDRequired       = errors.New("id is required")
	errEntityIDRequired = errors.New("entity_id is required")
	errNameRequired     = errors.New("name is required")
)

type SearchInput struct {
	Term string `json:"term" jsonschema:"free-text search term"`
	Page int    `json:"page,omitempty" jsonschema:"result page, starting at 1"`
}

type ListEntitiesInput struct {
	Types []string `json:"types,omitempty" jsonschema:"entity types to include, e.g. character or location"`
	Name  string   `json:"name,omitempty" jsonschema:"name filter"`
	Tags  []int    `json:"tags,omitempty" jsonschema:"tag ids every entity must carry"`
	Page  int      `json:"page,omitempty" jsonschema:"result page, starting at 1"`
}

type GetEntityInput struct {
	Type    string `json:"type" jsonschema:"entity type, singular or plural"`
	ID      int    `json:"id" jsonschema:"record id within the entity type"`
	Related bool   `json:"related,omitempty" jsonschema:"include posts and attributes"`
}

type ListPostsInput struct {
	EntityID int `json:"entity_id" jsonschema:"universal entity id"`
	Page     int `json:"page,omitempty" jsonschema:"result page, starting at 1"`
}

type CreatePostInput struct {
	EntityID   int    `json:"entity_id" jsonschema:"universal entity id"`
	Name       string `json:"name" jsonschema:"post title"`
	Entry      string `json:"entry,omitempty" jsonschema:"post body as HTML"`
	Visibility string `json:"visibility,omitempty" jsonschema:"all, admin, admin-self, self or members"`
}

type PageOutput struct {
	Current int  `json:"current"`
	Last    int  `json:"last"`
	HasNext bool `json:"has_next"`
}

type SearchResultOutput struct {
	EntityID  int    `json:"entity_id"`
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	URL       string `json:"url,omitempty"`
	IsPrivate bool   `json:"is_private"`
}

type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Page    PageOutput           `json:"page"`
}

type EntitySummaryOutput struct {
	EntityID  int    `json:"entity_id"`
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Tags      []int  `json:"tags"`
	IsPrivate bool   `json:"is_private"`
}

type ListEntitiesOutput struct {
	Entities []EntitySummaryOutput `json:"entities"`
	Page     PageOutput            `json:"page"`
}

type EntityOutput struct {
	Type   string         `json:"type"`
	Record map[string]any `json:"record"`
}

type PostOutput struct {
	ID         int    `json:"id"`
	EntityID   int    `json:"entity_id"`
	Name       string `json:"name"`
	Entry      string `json:"entry"`
	Visibility string `json:"visibility"`
	IsPinned   bool   `json:"is_pinned"`
}

type ListPostsOutput struct {
	Posts []PostOutput `json:"posts"`
	Page  PageOutput   `json:"page"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search",
		Description: "Search the campaign by name across every entity type",
	}, s.handleSearch)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_entities",
		Description: "List entities of any type with optional type, name and tag filters",
	}, s.handleListEntities)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_entity",
		Description: "Retrieve one entity by type and id",
	}, s.handleGetEntity)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_posts",
		Description: "List the posts attached to an entity",
	}, s.handleListPosts)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "create_post",
		Description: "Attach a new post to an entity",
	}, s.handleCreatePost)
}

func (s *Server) handleSearch(ctx context.Context, req *sdk.CallToolRequest, input SearchInput) (*sdk.CallToolResult, SearchOutput, error) {
	if strings.TrimSpace(input.Term) == "" {
		return nil, SearchOutput{}, errTermRequired
	}

	s.logger.Debug("tool call", zap.String("tool", "search"), zap.String("term", input.Term))

	results, err := s.client.Search(ctx, input.Term, &kanka.PageOptions{Page: input.Page})
	if err != nil {
		return nil, SearchOutput{}, s.toolError("search", err)
	}

	output := make([]SearchResultOutput, 0, len(results.Data))
	for _, result := range results.Data {
		output = append(output, SearchResultOutput{
			EntityID:  result.EntityID,
			ID:        result.ID,
			Name:      result.Name,
			Type:      result.Type,
			URL:       result.URL,
			IsPrivate: result.IsPrivate,
		})
	}

	return nil, SearchOutput{Results: output, Page: pageOutput(results)}, nil
}

func (s *Server) handleListEntities(ctx context.Context, req *sdk.CallToolRequest, input ListEntitiesInput) (*sdk.CallToolResult, ListEntitiesOutput, error) {
	s.logger.Debug("tool call", zap.String("tool", "list_entities"), zap.Strings("types", input.Types))

	opts := kanka.NewListOptions().WithName(input.Name).WithPage(input.Page)

	for _, name := range input.Types {
		entityType, err := kanka.LookupEntityType(name)
		if err != nil {
			return nil, ListEntitiesOutput{}, err
		}

		opts = opts.WithTypes(entityType.Name)
	}

	if len(input.Tags) > 0 {
		opts = opts.WithTags(input.Tags...)
	}

	entities, err := s.client.Entities(ctx, opts)
	if err != nil {
		return nil, ListEntitiesOutput{}, s.toolError("list_entities", err)
	}

	output := make([]EntitySummaryOutput, 0, len(entities.Data))
	for _, entity := range entities.Data {
		output = append(output, EntitySummaryOutput{
			EntityID:  entity.ID,
			ID:        entity.ChildID,
			Name:      entity.Name,
			Type:      entity.Type,
			Tags:      nonNilTags(entity.Tags),
			IsPrivate: entity.IsPrivate,
		})
	}

	return nil, ListEntitiesOutput{Entities: output, Page: pageOutput(entities)}, nil
}

func (s *Server) handleGetEntity(ctx context.Context, req *sdk.CallToolRequest, input GetEntityInput) (*sdk.CallToolResult, EntityOutput, error) {
	if input.Type == "" {
		return nil, EntityOutput{}, errTypeRequired
	}

	if input.ID <= 0 {
		return nil, EntityOutput{}, errIDRequired
	}

	entityType, err := kanka.LookupEntityType(input.Type)
	if err != nil {
		return nil, EntityOutput{}, err
	}

	s.logger.Debug("tool call", zap.String("tool", "get_entity"),
		zap.String("type", entityType.Name), zap.Int("id", input.ID))

	record, err := recordGetters(s.client)[entityType.Endpoint](ctx, input.ID, input.Related)
	if err != nil {
		return nil, EntityOutput{}, s.toolError("get_entity", err)
	}

	return nil, EntityOutput{Type: entityType.Name, Record: record}, nil
}

func (s *Server) handleListPosts(ctx context.Context, req *sdk.CallToolRequest, input ListPostsInput) (*sdk.CallToolResult, ListPostsOutput, error) {
	if input.EntityID <= 0 {
		return nil, ListPostsOutput{}, errEntityIDRequired
	}

	s.logger.Debug("tool call", zap.String("tool", "list_posts"), zap.Int("entity_id", input.EntityID))

	posts, err := s.client.EntityResources().ListPosts(ctx, kanka.EntityID(input.EntityID), &kanka.PageOptions{Page: input.Page})
	if err != nil {
		return nil, ListPostsOutput{}, s.toolError("list_posts", err)
	}

	output := make([]PostOutput, 0, len(posts.Data))
	for i := range posts.Data {
		output = append(output, postOutput(&posts.Data[i]))
	}

	return nil, ListPostsOutput{Posts: output, Page: pageOutput(posts)}, nil
}

func (s *Server) handleCreatePost(ctx context.Context, req *sdk.CallToolRequest, input CreatePostInput) (*sdk.CallToolResult, PostOutput, error) {
	if input.EntityID <= 0 {
		return nil, PostOutput{}, errEntityIDRequired
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, PostOutput{}, errNameRequired
	}

	visibility := kanka.VisibilityDefault
	if input.Visibility != "" {
		parsed, err := kanka.ParseVisibility(input.Visibility)
		if err != nil {
			return nil, PostOutput{}, err
		}

		visibility = parsed
	}

	s.logger.Info("tool call", zap.String("tool", "create_post"), zap.Int("entity_id", input.EntityID))

	post, err := s.client.EntityResources().CreatePost(ctx, kanka.EntityID(input.EntityID), &kanka.PostCreate{
		Name:       input.Name,
		Entry:      input.Entry,
		Visibility: visibility,
	})
	if err != nil {
		return nil, PostOutput{}, s.toolError("create_post", err)
	}

	return nil, postOutput(post), nil
}

func (s *Server) toolError(tool string, err error) error {
	s.logger.Warn("tool call failed", zap.String("tool", tool), zap.Error(err))

	return fmt.Errorf("%s: %w", tool, err)
}

func pageOutput[T any](page *kanka.ListResponse[T]) PageOutput {
	return PageOutput{
		Current: int(page.Meta.CurrentPage),
		Last:    int(page.Meta.LastPage),
		HasNext: page.HasNext(),
	}
}

func nonNilTags(tags []int) []int {
	if tags == nil {
		return []int{}
	}

	return tags
}

func postOutput(post *kanka.Post) PostOutput {
	return PostOutput{
		ID:         post.ID,
		EntityID:   post.EntityID,
		Name:       post.Name,
		Entry:      post.Entry,
		Visibility: post.VisibilityID.String(),
		IsPinned:   post.IsPinned,
	}
}
