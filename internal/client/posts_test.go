package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

func post(id int, name, entry string) map[string]interface{} {
	return map[string]interface{}{
		"id":        id,
		"entity_id": 70,
		"name":      name,
		"entry":     entry,
	}
}

func TestSubResourceClient_ListPosts(t *testing.T) {
	t.Parallel()

	refs := []struct {
		name string
		ref  kanka.EntityRef
	}{
		{name: "entity id", ref: kanka.EntityID(70)},
		{name: "entity pointer", ref: &kanka.Character{Entity: kanka.Entity{ID: 7, EntityID: 70}}},
		{name: "search result", ref: kanka.SearchResult{ID: 7, EntityID: 70}},
	}

	for _, tt := range refs {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := newFakeAPI(t)
			api.handle(http.MethodGet, "/entities/70/posts", http.StatusOK,
				pageBody([]interface{}{post(1, "Backstory", "<p>Born at sea</p>")}, 1, 1))

			posts, err := api.client().Characters().ListPosts(context.Background(), tt.ref, nil)
			require.NoError(t, err)

			require.Len(t, posts.Data, 1)
			assert.Equal(t, "Backstory", posts.Data[0].Name)
			assert.Equal(t, []string{"GET /entities/70/posts"}, api.calls())
			assert.Equal(t, "1", api.request(0).Query.Get("page"))
			assert.Equal(t, "30", api.request(0).Query.Get("limit"))
		})
	}

	t.Run("missing entity id", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)

		_, err := api.client().EntityResources().ListPosts(context.Background(), kanka.EntityID(0), nil)
		require.ErrorIs(t, err, kanka.ErrEntityIDRequired)
		assert.Empty(t, api.calls())
	})
}

func TestSubResourceClient_CreatePost(t *testing.T) {
	t.Parallel()

	t.Run("payload", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		api.handle(http.MethodPost, "/entities/70/posts", http.StatusCreated, dataBody(post(3, "Secrets", "<p>hidden</p>")))

		created, err := api.client().EntityResources().CreatePost(context.Background(), kanka.EntityID(70), &kanka.PostCreate{
			Name:       "Secrets",
			Entry:      "<p>hidden</p>",
			Visibility: kanka.VisibilityAdmin,
			Fields:     kanka.Fields{"is_pinned": true},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, created.ID)

		assert.Equal(t, map[string]interface{}{
			"name":          "Secrets",
			"entry":         "<p>hidden</p>",
			"visibility_id": float64(2),
			"is_pinned":     true,
		}, api.request(0).JSON(t))
	})

	t.Run("images are uploaded before the post", func(t *testing.T) {
		t.Parallel()

		file := writeTempFile(t, "crest.png", "crest")

		api := newFakeAPI(t)
		api.handle(http.MethodPost, "/entities/70/entity_assets", http.StatusCreated, dataBody(map[string]interface{}{
			"id": 4, "name": "crest:" + contentHash([]byte("crest")), "_url": "https://cdn.example/crest.png",
		}))
		api.handle(http.MethodPost, "/entities/70/posts", http.StatusCreated, dataBody(post(3, "Heraldry", "")))

		_, err := api.client().EntityResources().CreatePost(context.Background(), kanka.EntityID(70),
			&kanka.PostCreate{Name: "Heraldry", Entry: `<img src='crest'>`},
			kanka.WithImages(kanka.Images{"crest": file}),
		)
		require.NoError(t, err)

		assert.Equal(t, []string{
			"POST /entities/70/entity_assets",
			"POST /entities/70/posts",
		}, api.calls())
		assert.Equal(t, `<img src='https://cdn.example/crest.png'>`, api.request(1).JSON(t)["entry"])
	})
}

func TestSubResourceClient_UpdatePost(t *testing.T) {
	t.Parallel()

	t.Run("name is kept when omitted", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		api.handle(http.MethodGet, "/entities/70/posts/3", http.StatusOK, dataBody(post(3, "Secrets", "old")))
		api.handle(http.MethodPatch, "/entities/70/posts/3", http.StatusOK, dataBody(post(3, "Secrets", "new")))

		updated, err := api.client().EntityResources().UpdatePost(context.Background(), kanka.EntityID(70), 3,
			kanka.Fields{"entry": "new"})
		require.NoError(t, err)
		assert.Equal(t, "new", updated.Entry)

		assert.Equal(t, []string{"GET /entities/70/posts/3", "PATCH /entities/70/posts/3"}, api.calls())
		assert.Equal(t, map[string]interface{}{"name": "Secrets", "entry": "new"}, api.request(1).JSON(t))
	})

	t.Run("name given makes a single request", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		api.handle(http.MethodPatch, "/entities/70/posts/3", http.StatusOK, dataBody(post(3, "Renamed", "old")))

		_, err := api.client().EntityResources().UpdatePost(context.Background(), kanka.EntityID(70), 3,
			kanka.Fields{"name": "Renamed"})
		require.NoError(t, err)

		assert.Equal(t, []string{"PATCH /entities/70/posts/3"}, api.calls())
	})

	t.Run("images without entry fetch the post first", func(t *testing.T) {
		t.Parallel()

		file := writeTempFile(t, "crest.png", "crest")

		api := newFakeAPI(t)
		api.handle(http.MethodGet, "/entities/70/posts/3", http.StatusOK, dataBody(post(3, "Heraldry", `<img src="crest">`)))
		api.handle(http.MethodGet, "/entities/70/entity_assets", http.StatusOK, pageBody([]interface{}{}, 1, 1))
		api.handle(http.MethodPost, "/entities/70/entity_assets", http.StatusCreated, dataBody(map[string]interface{}{
			"id": 4, "name": "crest:" + contentHash([]byte("crest")), "_url": "https://cdn.example/crest.png",
		}))
		api.handle(http.MethodPatch, "/entities/70/posts/3", http.StatusOK, dataBody(post(3, "Heraldry", "")))

		_, err := api.client().EntityResources().UpdatePost(context.Background(), kanka.EntityID(70), 3, nil,
			kanka.WithImages(kanka.Images{"crest": file}))
		require.NoError(t, err)

		assert.Equal(t, []string{
			"GET /entities/70/posts/3",
			"GET /entities/70/entity_assets",
			"POST /entities/70/entity_assets",
			"PATCH /entities/70/posts/3",
		}, api.calls())
		assert.Equal(t, map[string]interface{}{
			"name":  "Heraldry",
			"entry": `<img src="https://cdn.example/crest.png">`,
		}, api.request(3).JSON(t))
	})

	t.Run("entry must be a string", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)

		_, err := api.client().EntityResources().UpdatePost(context.Background(), kanka.EntityID(70), 3,
			kanka.Fields{"name": "x", "entry": 42}, kanka.WithImages(kanka.Images{"crest": "unused.png"}))
		require.ErrorIs(t, err, kanka.ErrInvalidEntry)
		assert.Empty(t, api.calls())
	})
}

func TestSubResourceClient_DeletePost(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodDelete, "/entities/70/posts/3", http.StatusNoContent, nil)

	err := api.client().EntityResources().DeletePost(context.Background(), kanka.EntityID(70), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"DELETE /entities/70/posts/3"}, api.calls())
}
