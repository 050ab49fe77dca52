package kanka

import "time"

// Post is a note attached to one entity through its universal entity id.
type Post struct {
	ID           int        `json:"id"            yaml:"id"`
	EntityID     int        `json:"entity_id"     yaml:"entity_id"`
	Name         string     `json:"name"          yaml:"name"`
	Entry        string     `json:"entry"         yaml:"entry"`
	IsPrivate    bool       `json:"is_private"    yaml:"is_private"`
	IsPinned     bool       `json:"is_pinned"     yaml:"is_pinned"`
	VisibilityID Visibility `json:"visibility_id" yaml:"visibility_id"`
	Position     *int       `json:"position"      yaml:"position"`
	CreatedAt    time.Time  `json:"created_at"    yaml:"created_at"`
	CreatedBy    int        `json:"created_by"    yaml:"created_by"`
	UpdatedAt    time.Time  `json:"updated_at"    yaml:"updated_at"`
	UpdatedBy    int        `json:"updated_by"    yaml:"updated_by"`
	Extra        Extras     `json:"-"             yaml:"extra,omitempty"`
}

func (p *Post) setExtras(extra Extras) { p.Extra = extra }

// EntityAsset is a file, link or alias attached to an entity.
type EntityAsset struct {
	ID           int            `json:"id"            yaml:"id"`
	EntityID     int            `json:"entity_id"     yaml:"entity_id"`
	Name         string         `json:"name"          yaml:"name"`
	TypeID       int            `json:"type_id"       yaml:"type_id"`
	VisibilityID Visibility     `json:"visibility_id" yaml:"visibility_id"`
	IsPinned     bool           `json:"is_pinned"     yaml:"is_pinned"`
	IsPrivate    bool           `json:"is_private"    yaml:"is_private"`
	Metadata     map[string]any `json:"metadata"      yaml:"metadata"`
	URL          string         `json:"_url"          yaml:"url"`
	CreatedAt    time.Time      `json:"created_at"    yaml:"created_at"`
	CreatedBy    int            `json:"created_by"    yaml:"created_by"`
	UpdatedAt    time.Time      `json:"updated_at"    yaml:"updated_at"`
	UpdatedBy    int            `json:"updated_by"    yaml:"updated_by"`
	Extra        Extras         `json:"-"             yaml:"extra,omitempty"`
}

func (a *EntityAsset) setExtras(extra Extras) { a.Extra = extra }

// EntityImage describes one image slot of an entity.
type EntityImage struct {
	UUID      string `json:"uuid"      yaml:"uuid"`
	Full      string `json:"full"      yaml:"full"`
	Thumbnail string `json:"thumbnail" yaml:"thumbnail"`
	FocusX    *int   `json:"focus_x"   yaml:"focus_x"`
	FocusY    *int   `json:"focus_y"   yaml:"focus_y"`
	Extra     Extras `json:"-"         yaml:"extra,omitempty"`
}

// EntityImageInfo is the main image and the header image of an entity.
type EntityImageInfo struct {
	Image  *EntityImage `json:"image"  yaml:"image"`
	Header *EntityImage `json:"header" yaml:"header"`
	Extra  Extras       `json:"-"      yaml:"extra,omitempty"`
}

func (i *EntityImageInfo) setExtras(extra Extras) { i.Extra = extra }

// GalleryImage is a campaign gallery file or folder.
type GalleryImage struct {
	ID           string     `json:"id"            yaml:"id"`
	Name         string     `json:"name"          yaml:"name"`
	Ext          string     `json:"ext"           yaml:"ext"`
	Size         FlexInt    `json:"size"          yaml:"size"`
	FolderID     string     `json:"folder_id"     yaml:"folder_id"`
	IsFolder     bool       `json:"is_folder"     yaml:"is_folder"`
	VisibilityID Visibility `json:"visibility_id" yaml:"visibility_id"`
	Path         string     `json:"path"          yaml:"path"`
	Thumbnail    string     `json:"thumbnail"     yaml:"thumbnail"`
	CreatedAt    time.Time  `json:"created_at"    yaml:"created_at"`
	CreatedBy    int        `json:"created_by"    yaml:"created_by"`
	Extra        Extras     `json:"-"             yaml:"extra,omitempty"`
}

func (g *GalleryImage) setExtras(extra Extras) { g.Extra = extra }

// SearchResult is the lightweight projection returned by free-text search.
type SearchResult struct {
	ID        int        `json:"id"         yaml:"id"`
	EntityID  int        `json:"entity_id"  yaml:"entity_id"`
	Name      string     `json:"name"       yaml:"name"`
	Type      string     `json:"type"       yaml:"type"`
	URL       string     `json:"url"        yaml:"url"`
	Image     string     `json:"image"      yaml:"image"`
	IsPrivate bool       `json:"is_private" yaml:"is_private"`
	Tooltip   string     `json:"tooltip"    yaml:"tooltip"`
	Tags      []int      `json:"tags"       yaml:"tags"`
	CreatedAt *time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" yaml:"updated_at"`
	Extra     Extras     `json:"-"          yaml:"extra,omitempty"`
}

func (r SearchResult) universalID() int { return r.EntityID }

func (r *SearchResult) setExtras(extra Extras) { r.Extra = extra }

// GenericEntity is one row of the cross-type entity listing. Its ID is the
// universal entity id; ChildID is the id within the entity type's endpoint.
type GenericEntity struct {
	ID        int       `json:"id"         yaml:"id"`
	ChildID   int       `json:"child_id"   yaml:"child_id"`
	Name      string    `json:"name"       yaml:"name"`
	Type      string    `json:"type"       yaml:"type"`
	Tags      []int     `json:"tags"       yaml:"tags"`
	IsPrivate bool      `json:"is_private" yaml:"is_private"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	CreatedBy int       `json:"created_by" yaml:"created_by"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
	UpdatedBy int       `json:"updated_by" yaml:"updated_by"`
	Extra     Extras    `json:"-"          yaml:"extra,omitempty"`
}

func (g GenericEntity) universalID() int { return g.ID }

func (g *GenericEntity) setExtras(extra Extras) { g.Extra = extra }
