package models

// Slug is the CMS slug object ({"current": "east-legon-villa"}).
type Slug struct {
	Current string `json:"current"`
}

// Reference points at another document by ID.
type Reference struct {
	Ref  string `json:"_ref"`
	Type string `json:"_type,omitempty"`
	Key  string `json:"_key,omitempty"`
}

// Image is a CMS image field. Asset.Ref looks like "image-<id>-<w>x<h>-<ext>".
type Image struct {
	Key   string    `json:"_key,omitempty"`
	Asset Reference `json:"asset"`
	Alt   string    `json:"alt,omitempty"`
}

// Block is one Portable Text node. Image blocks reuse Asset/Alt.
type Block struct {
	Type     string    `json:"_type"`
	Key      string    `json:"_key,omitempty"`
	Style    string    `json:"style,omitempty"`
	ListItem string    `json:"listItem,omitempty"`
	Level    int       `json:"level,omitempty"`
	Children []Span    `json:"children,omitempty"`
	MarkDefs []MarkDef `json:"markDefs,omitempty"`
	Asset    Reference `json:"asset,omitempty"`
	Alt      string    `json:"alt,omitempty"`
}

type Span struct {
	Type  string   `json:"_type"`
	Key   string   `json:"_key,omitempty"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
}

type MarkDef struct {
	Key  string `json:"_key"`
	Type string `json:"_type"`
	Href string `json:"href,omitempty"`
}
