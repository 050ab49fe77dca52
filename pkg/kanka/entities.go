package kanka

import "time"

// Entity holds the attributes shared by every entity type.
//
// ID is unique within one entity type's endpoint. EntityID is the universal
// id shared by all types; posts, assets and images are addressed by it.
type Entity struct {
	ID         int              `json:"id"                   yaml:"id"`
	EntityID   int              `json:"entity_id"            yaml:"entity_id"`
	Name       string           `json:"name"                 yaml:"name"`
	Entry      string           `json:"entry"                yaml:"entry"`
	Image      string           `json:"image"                yaml:"image"`
	ImageFull  string           `json:"image_full"           yaml:"image_full"`
	ImageThumb string           `json:"image_thumb"          yaml:"image_thumb"`
	IsPrivate  bool             `json:"is_private"           yaml:"is_private"`
	Tags       []int            `json:"tags"                 yaml:"tags"`
	CreatedAt  time.Time        `json:"created_at"           yaml:"created_at"`
	CreatedBy  int              `json:"created_by"           yaml:"created_by"`
	UpdatedAt  time.Time        `json:"updated_at"           yaml:"updated_at"`
	UpdatedBy  int              `json:"updated_by"           yaml:"updated_by"`
	Posts      []Post           `json:"posts,omitempty"      yaml:"posts,omitempty"`
	Attributes []map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Extra      Extras           `json:"-"                    yaml:"extra,omitempty"`
}

// Base returns the shared attributes of an entity.
func (e *Entity) Base() *Entity {
	return e
}

func (e Entity) recordID() int    { return e.ID }
func (e Entity) universalID() int { return e.EntityID }

func (e *Entity) setExtras(extra Extras) { e.Extra = extra }

// Ability is a spell, skill, feat or other power.
type Ability struct {
	Entity `yaml:",inline"`

	Type      string `json:"type"       yaml:"type"`
	AbilityID *int   `json:"ability_id" yaml:"ability_id"`
	Charges   *int   `json:"charges"    yaml:"charges"`
}

// AttributeTemplate is a reusable set of entity attributes.
type AttributeTemplate struct {
	Entity `yaml:",inline"`

	AttributeTemplateID *int `json:"attribute_template_id" yaml:"attribute_template_id"`
}

// Bookmark is a sidebar shortcut to an entity or a filtered list.
type Bookmark struct {
	Entity `yaml:",inline"`

	Type             string `json:"type"               yaml:"type"`
	Tab              string `json:"tab"                yaml:"tab"`
	Filters          string `json:"filters"            yaml:"filters"`
	Menu             string `json:"menu"               yaml:"menu"`
	Icon             string `json:"icon"               yaml:"icon"`
	IsActive         bool   `json:"is_active"          yaml:"is_active"`
	Parent           string `json:"parent"             yaml:"parent"`
	RandomEntityType string `json:"random_entity_type" yaml:"random_entity_type"`
}

// Calendar defines a custom calendar system.
type Calendar struct {
	Entity `yaml:",inline"`

	Type           string           `json:"type"             yaml:"type"`
	Date           string           `json:"date"             yaml:"date"`
	Parameters     string           `json:"parameters"       yaml:"parameters"`
	Months         []map[string]any `json:"months"           yaml:"months"`
	Weekdays       []string         `json:"weekdays"         yaml:"weekdays"`
	Years          any              `json:"years"            yaml:"years"`
	Seasons        []map[string]any `json:"seasons"          yaml:"seasons"`
	Moons          []map[string]any `json:"moons"            yaml:"moons"`
	Suffix         string           `json:"suffix"           yaml:"suffix"`
	HasLeapYear    *bool            `json:"has_leap_year"    yaml:"has_leap_year"`
	LeapYearAmount *int             `json:"leap_year_amount" yaml:"leap_year_amount"`
	LeapYearMonth  *int             `json:"leap_year_month"  yaml:"leap_year_month"`
	LeapYearOffset *int             `json:"leap_year_offset" yaml:"leap_year_offset"`
	LeapYearStart  *int             `json:"leap_year_start"  yaml:"leap_year_start"`
}

// Character is a person: player character, NPC or historical figure.
type Character struct {
	Entity `yaml:",inline"`

	LocationID *int   `json:"location_id" yaml:"location_id"`
	Title      string `json:"title"       yaml:"title"`
	Age        string `json:"age"         yaml:"age"`
	Sex        string `json:"sex"         yaml:"sex"`
	RaceID     *int   `json:"race_id"     yaml:"race_id"`
	Type       string `json:"type"        yaml:"type"`
	FamilyID   *int   `json:"family_id"   yaml:"family_id"`
	IsDead     bool   `json:"is_dead"     yaml:"is_dead"`
	Traits     any    `json:"traits"      yaml:"traits"`
}

// Conversation stores a dialog.
type Conversation struct {
	Entity `yaml:",inline"`

	Type   string `json:"type"   yaml:"type"`
	Target string `json:"target" yaml:"target"`
}

// Creature is a monster, animal or other non-character being.
type Creature struct {
	Entity `yaml:",inline"`

	Type       string `json:"type"        yaml:"type"`
	LocationID *int   `json:"location_id" yaml:"location_id"`
}

// DiceRoll is a saved dice expression.
type DiceRoll struct {
	Entity `yaml:",inline"`

	CharacterID *int   `json:"character_id" yaml:"character_id"`
	System      string `json:"system"       yaml:"system"`
	Parameters  string `json:"parameters"   yaml:"parameters"`
}

// Event is a historical or campaign event.
type Event struct {
	Entity `yaml:",inline"`

	Type       string `json:"type"        yaml:"type"`
	Date       string `json:"date"        yaml:"date"`
	LocationID *int   `json:"location_id" yaml:"location_id"`
}

// Family is a family group or lineage.
type Family struct {
	Entity `yaml:",inline"`

	LocationID *int `json:"location_id" yaml:"location_id"`
	FamilyID   *int `json:"family_id"   yaml:"family_id"`
}

// Item is an object, artifact or piece of equipment.
type Item struct {
	Entity `yaml:",inline"`

	Type        string `json:"type"         yaml:"type"`
	LocationID  *int   `json:"location_id"  yaml:"location_id"`
	CharacterID *int   `json:"character_id" yaml:"character_id"`
}

// Journal is a session log or chronicle.
type Journal struct {
	Entity `yaml:",inline"`

	Type        string `json:"type"         yaml:"type"`
	Date        string `json:"date"         yaml:"date"`
	CharacterID *int   `json:"character_id" yaml:"character_id"`
}

// Location is a place: country, city, building or room.
type Location struct {
	Entity `yaml:",inline"`

	Type             string `json:"type"               yaml:"type"`
	Map              string `json:"map"                yaml:"map"`
	MapURL           string `json:"map_url"            yaml:"map_url"`
	IsMapPrivate     *int   `json:"is_map_private"     yaml:"is_map_private"`
	ParentLocationID *int   `json:"parent_location_id" yaml:"parent_location_id"`
}

// Map is an image with markers and layers.
type Map struct {
	Entity `yaml:",inline"`

	Type            string   `json:"type"             yaml:"type"`
	Map             string   `json:"map"              yaml:"map"`
	MapURL          string   `json:"map_url"          yaml:"map_url"`
	Grid            *int     `json:"grid"             yaml:"grid"`
	IsReal          *bool    `json:"is_real"          yaml:"is_real"`
	Width           *int     `json:"width"            yaml:"width"`
	Height          *int     `json:"height"           yaml:"height"`
	DistanceName    string   `json:"distance_name"    yaml:"distance_name"`
	DistanceMeasure *float64 `json:"distance_measure" yaml:"distance_measure"`
}

// Note is campaign lore or documentation.
type Note struct {
	Entity `yaml:",inline"`

	Type string `json:"type" yaml:"type"`
}

// Organisation is a guild, government, cult or other group.
type Organisation struct {
	Entity `yaml:",inline"`

	LocationID     *int   `json:"location_id"     yaml:"location_id"`
	Type           string `json:"type"            yaml:"type"`
	OrganisationID *int   `json:"organisation_id" yaml:"organisation_id"`
}

// Quest is an objective or mission.
type Quest struct {
	Entity `yaml:",inline"`

	Type        string `json:"type"         yaml:"type"`
	QuestID     *int   `json:"quest_id"     yaml:"quest_id"`
	CharacterID *int   `json:"character_id" yaml:"character_id"`
}

// Race is a character race or species.
type Race struct {
	Entity `yaml:",inline"`

	Type   string `json:"type"    yaml:"type"`
	RaceID *int   `json:"race_id" yaml:"race_id"`
}

// Tag groups entities.
type Tag struct {
	Entity `yaml:",inline"`

	Type   string `json:"type"   yaml:"type"`
	Colour string `json:"colour" yaml:"colour"`
	TagID  *int   `json:"tag_id" yaml:"tag_id"`
}

// Timeline orders events chronologically.
type Timeline struct {
	Entity `yaml:",inline"`

	Type       string `json:"type"        yaml:"type"`
	CalendarID *int   `json:"calendar_id" yaml:"calendar_id"`
}
