package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

func character(id, entityID int, name string) map[string]interface{} {
	return map[string]interface{}{
		"id":        id,
		"entity_id": entityID,
		"name":      name,
	}
}

func TestEntityManager_Get(t *testing.T) {
	t.Parallel()

	t.Run("decodes record and extras", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		api.handle(http.MethodGet, "/characters/7", http.StatusOK, dataBody(map[string]interface{}{
			"id":        7,
			"entity_id": 70,
			"name":      "Aria",
			"title":     "Captain",
			"pronouns":  "she/her",
		}))

		got, err := api.client().Characters().Get(context.Background(), 7)
		require.NoError(t, err)

		assert.Equal(t, 7, got.ID)
		assert.Equal(t, 70, got.EntityID)
		assert.Equal(t, "Aria", got.Name)
		assert.Equal(t, "Captain", got.Title)
		assert.Equal(t, "she/her", got.Extra["pronouns"])
		assert.Equal(t, []string{"GET /characters/7"}, api.calls())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)

		_, err := api.client().Locations().Get(context.Background(), 99)
		require.Error(t, err)
		assert.True(t, kanka.IsNotFound(err))
		assert.Contains(t, err.Error(), "getting location")
	})

	t.Run("forbidden", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		api.handle(http.MethodGet, "/notes/1", http.StatusForbidden, map[string]string{"message": "nope"})

		_, err := api.client().Notes().Get(context.Background(), 1)
		assert.True(t, kanka.IsForbidden(err))
	})

	t.Run("invalid id makes no request", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)

		_, err := api.client().Characters().Get(context.Background(), 0)
		require.ErrorIs(t, err, kanka.ErrRecordIDRequired)
		assert.Empty(t, api.calls())
	})

	t.Run("related", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		api.handle(http.MethodGet, "/characters/7", http.StatusOK, dataBody(character(7, 70, "Aria")))

		_, err := api.client().Characters().GetRelated(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "1", api.request(0).Query.Get("related"))
	})
}

func TestEntityManager_List(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     *kanka.ListOptions
		expected map[string]string
	}{
		{
			name:     "defaults",
			opts:     nil,
			expected: map[string]string{"page": "1", "limit": "30"},
		},
		{
			name: "filters",
			opts: kanka.NewListOptions().
				WithPage(2).
				WithLimit(10).
				WithName("Ari").
				WithTags(1, 2).
				WithPrivate(false).
				WithFilter("is_dead", true),
			expected: map[string]string{
				"page":       "2",
				"limit":      "10",
				"name":       "Ari",
				"tags":       "1,2",
				"is_private": "0",
				"is_dead":    "1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := newFakeAPI(t)
			api.handle(http.MethodGet, "/characters", http.StatusOK,
				pageBody([]interface{}{character(1, 10, "Aria"), character(2, 20, "Bran")}, 1, 3))

			list, err := api.client().Characters().List(context.Background(), tt.opts)
			require.NoError(t, err)

			require.Len(t, list.Data, 2)
			assert.Equal(t, "Bran", list.Data[1].Name)
			assert.True(t, list.HasNext())

			query := api.request(0).Query
			for key, value := range tt.expected {
				assert.Equal(t, value, query.Get(key), key)
			}
		})
	}
}

func TestEntityManager_ListAll(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/races", http.StatusOK, pageBody([]interface{}{character(1, 10, "Elf")}, 1, 2))
	api.handle(http.MethodGet, "/races", http.StatusOK, pageBody([]interface{}{character(2, 20, "Dwarf")}, 2, 2))

	races, err := api.client().Races().ListAll(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, races, 2)
	assert.Equal(t, "Elf", races[0].Name)
	assert.Equal(t, "Dwarf", races[1].Name)

	assert.Equal(t, "1", api.request(0).Query.Get("page"))
	assert.Equal(t, "2", api.request(1).Query.Get("page"))
	assert.Equal(t, "100", api.request(0).Query.Get("limit"))
}

func TestEntityManager_Create(t *testing.T) {
	t.Parallel()

	t.Run("strips server fields", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		api.handle(http.MethodPost, "/characters", http.StatusCreated, dataBody(character(7, 70, "Aria")))

		created, err := api.client().Characters().Create(context.Background(), kanka.Fields{
			"name":       "Aria",
			"id":         3,
			"entity_id":  30,
			"created_at": "2024-01-01T00:00:00Z",
		})
		require.NoError(t, err)
		assert.Equal(t, 7, created.ID)

		body := api.request(0).JSON(t)
		assert.Equal(t, map[string]interface{}{"name": "Aria"}, body)
	})

	t.Run("validation error", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		api.handle(http.MethodPost, "/characters", http.StatusUnprocessableEntity, map[string]interface{}{
			"message": "The given data was invalid.",
			"errors":  map[string][]string{"name": {"The name field is required."}},
		})

		_, err := api.client().Characters().Create(context.Background(), kanka.Fields{})
		require.Error(t, err)
		assert.True(t, kanka.IsValidation(err))

		apiErr, ok := kanka.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, []string{"The name field is required."}, apiErr.FieldErrors("name"))
	})

	t.Run("uploads images and patches entry", func(t *testing.T) {
		t.Parallel()

		file := writeTempFile(t, "map.png", "map-bytes")

		created := character(7, 70, "Aria")
		created["entry"] = `<p><img src="map"></p>`

		patched := character(7, 70, "Aria")
		patched["entry"] = `<p><img src="https://cdn.example/map.png"></p>`

		api := newFakeAPI(t)
		api.handle(http.MethodPost, "/characters", http.StatusCreated, dataBody(created))
		api.handle(http.MethodPost, "/entities/70/entity_assets", http.StatusCreated, dataBody(map[string]interface{}{
			"id":   5,
			"name": "map:" + contentHash([]byte("map-bytes")),
			"_url": "https://cdn.example/map.png",
		}))
		api.handle(http.MethodPatch, "/characters/7", http.StatusOK, dataBody(patched))

		got, err := api.client().Characters().Create(context.Background(),
			kanka.Fields{"name": "Aria", "entry": `<p><img src="map"></p>`},
			kanka.WithImages(kanka.Images{"map": file}),
		)
		require.NoError(t, err)
		assert.Equal(t, patched["entry"], got.Entry)

		assert.Equal(t, []string{
			"POST /characters",
			"POST /entities/70/entity_assets",
			"PATCH /characters/7",
		}, api.calls())

		form, files := multipartForm(t, api.request(1))
		assert.Equal(t, []string{"map:" + contentHash([]byte("map-bytes"))}, form["name"])
		assert.Equal(t, []string{"1"}, form["type_id"])
		assert.Equal(t, []byte("map-bytes"), files["file"])

		assert.Equal(t, map[string]interface{}{"entry": patched["entry"]}, api.request(2).JSON(t))
	})
}

func TestEntityManager_Update(t *testing.T) {
	t.Parallel()

	snapshot := func() *kanka.Character {
		return &kanka.Character{
			Entity: kanka.Entity{
				ID:       7,
				EntityID: 70,
				Name:     "Aria",
				Extra:    kanka.Extras{"pronouns": "she/her"},
			},
			Title: "Captain",
		}
	}

	t.Run("bare id sends fields as given", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		api.handle(http.MethodPatch, "/characters/7", http.StatusOK, dataBody(character(7, 70, "Aria")))

		_, err := api.client().Characters().Update(context.Background(), kanka.ID(7), kanka.Fields{"name": "Aria"})
		require.NoError(t, err)

		assert.Equal(t, []string{"PATCH /characters/7"}, api.calls())
		assert.Equal(t, map[string]interface{}{"name": "Aria"}, api.request(0).JSON(t))
	})

	t.Run("snapshot sends only changed fields", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		api.handle(http.MethodPatch, "/characters/7", http.StatusOK, dataBody(character(7, 70, "Aria")))

		_, err := api.client().Characters().Update(context.Background(), snapshot(), kanka.Fields{
			"name":     "Aria",
			"title":    "Queen",
			"pronouns": "she/her",
			"id":       7,
		})
		require.NoError(t, err)

		assert.Equal(t, map[string]interface{}{"title": "Queen"}, api.request(0).JSON(t))
	})

	t.Run("snapshot value works like pointer", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		api.handle(http.MethodPatch, "/characters/7", http.StatusOK, dataBody(character(7, 70, "Aria")))

		_, err := api.client().Characters().Update(context.Background(), *snapshot(), kanka.Fields{"title": "Queen"})
		require.NoError(t, err)

		assert.Equal(t, []string{"PATCH /characters/7"}, api.calls())
	})

	t.Run("no changes makes no request", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		current := snapshot()

		got, err := api.client().Characters().Update(context.Background(), current, kanka.Fields{
			"name":  "Aria",
			"title": "Captain",
		})
		require.NoError(t, err)

		assert.Same(t, current, got)
		assert.Empty(t, api.calls())
	})

	t.Run("bare id without fields fetches record", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)
		api.handle(http.MethodGet, "/characters/7", http.StatusOK, dataBody(character(7, 70, "Aria")))

		got, err := api.client().Characters().Update(context.Background(), kanka.ID(7), nil)
		require.NoError(t, err)

		assert.Equal(t, "Aria", got.Name)
		assert.Equal(t, []string{"GET /characters/7"}, api.calls())
	})

	t.Run("nil reference", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)

		var missing *kanka.Character

		_, err := api.client().Characters().Update(context.Background(), missing, kanka.Fields{"name": "x"})
		require.ErrorIs(t, err, kanka.ErrRecordIDRequired)
		assert.Empty(t, api.calls())
	})
}

func TestEntityManager_UpdateImages(t *testing.T) {
	t.Parallel()

	const cdnURL = "https://cdn.example/w/campaigns/1/gallery/6f1c2a7e-3b1d-4e5f-9a8b-0c1d2e3f4a5b.png"

	t.Run("unchanged image is reused without a request", func(t *testing.T) {
		t.Parallel()

		file := writeTempFile(t, "map.png", "map-bytes")

		api := newFakeAPI(t)
		api.handle(http.MethodGet, "/entities/70/entity_assets", http.StatusOK, pageBody([]interface{}{
			map[string]interface{}{"id": 5, "name": "map:" + contentHash([]byte("map-bytes")), "_url": cdnURL},
			map[string]interface{}{"id": 6, "name": "Handout"},
		}, 1, 1))

		current := &kanka.Character{Entity: kanka.Entity{
			ID:       7,
			EntityID: 70,
			Name:     "Aria",
			Entry:    `<img src="` + cdnURL + `">`,
		}}

		got, err := api.client().Characters().Update(context.Background(), current,
			kanka.Fields{"entry": `<img src="map">`},
			kanka.WithImages(kanka.Images{"map": file}),
		)
		require.NoError(t, err)

		assert.Same(t, current, got)
		assert.Equal(t, []string{"GET /entities/70/entity_assets"}, api.calls())
		assert.Equal(t, "100", api.request(0).Query.Get("limit"))
	})

	t.Run("changed image and orphans are replaced", func(t *testing.T) {
		t.Parallel()

		file := writeTempFile(t, "map.png", "new-map-bytes")
		newName := "map:" + contentHash([]byte("new-map-bytes"))

		api := newFakeAPI(t)
		api.handle(http.MethodGet, "/characters/7", http.StatusOK, dataBody(map[string]interface{}{
			"id":        7,
			"entity_id": 70,
			"name":      "Aria",
			"entry":     `<img src="map">`,
		}))
		api.handle(http.MethodGet, "/entities/70/entity_assets", http.StatusOK, pageBody([]interface{}{
			map[string]interface{}{"id": 5, "name": "map:000000000000", "_url": cdnURL},
			map[string]interface{}{"id": 6, "name": "portrait:abcdefabcdef"},
		}, 1, 1))
		api.handle(http.MethodDelete, "/entities/70/entity_assets/5", http.StatusNoContent, nil)
		api.handle(http.MethodDelete, "/images/6f1c2a7e-3b1d-4e5f-9a8b-0c1d2e3f4a5b", http.StatusNotFound, nil)
		api.handle(http.MethodPost, "/entities/70/entity_assets", http.StatusCreated, dataBody(map[string]interface{}{
			"id": 9, "name": newName, "_url": "https://cdn.example/new.png",
		}))
		api.handle(http.MethodDelete, "/entities/70/entity_assets/6", http.StatusNoContent, nil)
		api.handle(http.MethodPatch, "/characters/7", http.StatusOK, dataBody(character(7, 70, "Aria")))

		_, err := api.client().Characters().Update(context.Background(), kanka.ID(7), nil,
			kanka.WithImages(kanka.Images{"map": file}),
		)
		require.NoError(t, err)

		assert.Equal(t, []string{
			"GET /characters/7",
			"GET /entities/70/entity_assets",
			"DELETE /entities/70/entity_assets/5",
			"DELETE /images/6f1c2a7e-3b1d-4e5f-9a8b-0c1d2e3f4a5b",
			"POST /entities/70/entity_assets",
			"DELETE /entities/70/entity_assets/6",
			"PATCH /characters/7",
		}, api.calls())

		assert.Equal(t,
			map[string]interface{}{"entry": `<img src="https://cdn.example/new.png">`},
			api.request(6).JSON(t))
	})
}

func TestEntityManager_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ref  kanka.RecordRef
	}{
		{name: "bare id", ref: kanka.ID(7)},
		{name: "entity value", ref: kanka.Character{Entity: kanka.Entity{ID: 7, EntityID: 70}}},
		{name: "entity pointer", ref: &kanka.Character{Entity: kanka.Entity{ID: 7, EntityID: 70}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := newFakeAPI(t)
			api.handle(http.MethodDelete, "/characters/7", http.StatusNoContent, nil)

			require.NoError(t, api.client().Characters().Delete(context.Background(), tt.ref))
			assert.Equal(t, []string{"DELETE /characters/7"}, api.calls())
		})
	}

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		api := newFakeAPI(t)

		err := api.client().Characters().Delete(context.Background(), kanka.ID(7))
		assert.True(t, kanka.IsNotFound(err))
	})
}
