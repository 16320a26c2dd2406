package models

import "html/template"

// Page is a locally stored legal page (privacy policy, terms).
type Page struct {
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Updated     string        `json:"updated,omitempty"`
	HTML        template.HTML `json:"html"`
}
