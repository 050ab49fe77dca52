package mcp

import (
	"context"

	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

type recordGetter func(ctx context.Context, id int, related bool) (map[string]any, error)

func getterFor[T any](manager kanka.EntityManager[T]) recordGetter {
	return func(ctx context.Context, id int, related bool) (map[string]any, error) {
		var (
			record *T
			err    error
		)

		if related {
			record, err = manager.GetRelated(ctx, id)
		} else {
			record, err = manager.Get(ctx, id)
		}

		if err != nil {
			return nil, err
		}

		return kanka.Flatten(record)
	}
}

// recordGetters is keyed by endpoint.
func recordGetters(client kanka.Client) map[string]recordGetter {
	return map[string]recordGetter{
		"abilities":           getterFor(client.Abilities()),
		"attribute_templates": getterFor(client.AttributeTemplates()),
		"bookmarks":           getterFor(client.Bookmarks()),
		"calendars":           getterFor(client.Calendars()),
		"characters":          getterFor(client.Characters()),
		"conversations":       getterFor(client.Conversations()),
		"creatures":           getterFor(client.Creatures()),
		"dice_rolls":          getterFor(client.DiceRolls()),
		"events":              getterFor(client.Events()),
		"families":            getterFor(client.Families()),
		"items":               getterFor(client.Items()),
		"journals":            getterFor(client.Journals()),
		"locations":           getterFor(client.Locations()),
		"maps":                getterFor(client.Maps()),
		"notes":               getterFor(client.Notes()),
		"organisations":       getterFor(client.Organisations()),
		"quests":              getterFor(client.Quests()),
		"races":               getterFor(client.Races()),
		"tags":                getterFor(client.Tags()),
		"timelines":           getterFor(client.Timelines()),
	}
}
