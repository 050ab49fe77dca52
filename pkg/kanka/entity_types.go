package kanka

import (
	"fmt"
	"strings"
)

// EntityType names one entity type: Name is the singular form the API
// reports in search and entity listings, Endpoint the collection path.
type EntityType struct {
	Name     string
	Endpoint string
}

// EntityTypes lists every entity type with a typed manager.
var EntityTypes = []EntityType{
	{Name: "ability", Endpoint: "abilities"},
	{Name: "attribute_template", Endpoint: "attribute_templates"},
	{Name: "bookmark", Endpoint: "bookmarks"},
	{Name: "calendar", Endpoint: "calendars"},
	{Name: "character", Endpoint: "characters"},
	{Name: "conversation", Endpoint: "conversations"},
	{Name: "creature", Endpoint: "creatures"},
	{Name: "dice_roll", Endpoint: "dice_rolls"},
	{Name: "event", Endpoint: "events"},
	{Name: "family", Endpoint: "families"},
	{Name: "item", Endpoint: "items"},
	{Name: "journal", Endpoint: "journals"},
	{Name: "location", Endpoint: "locations"},
	{Name: "map", Endpoint: "maps"},
	{Name: "note", Endpoint: "notes"},
	{Name: "organisation", Endpoint: "organisations"},
	{Name: "quest", Endpoint: "quests"},
	{Name: "race", Endpoint: "races"},
	{Name: "tag", Endpoint: "tags"},
	{Name: "timeline", Endpoint: "timelines"},
}

// LookupEntityType resolves a singular name or an endpoint. Matching ignores
// case and treats "-" and " " like "_".
func LookupEntityType(name string) (EntityType, error) {
	key := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(name)))

	for _, entityType := range EntityTypes {
		if entityType.Name == key || entityType.Endpoint == key {
			return entityType, nil
		}
	}

	return EntityType{}, fmt.Errorf("%w: %q", ErrUnknownEntityType, name)
}
