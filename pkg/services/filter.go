package services

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"estate-site/pkg/models"
)

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// ListingFilter narrows a property list. Zero-valued fields do not filter.
type ListingFilter struct {
	Search      string  `json:"search,omitempty"`
	Location    string  `json:"location,omitempty"`
	Type        string  `json:"type,omitempty"`
	Status      string  `json:"status,omitempty"`
	MinPrice    float64 `json:"minPrice,omitempty"`
	MaxPrice    float64 `json:"maxPrice,omitempty"`
	MinBedrooms int     `json:"minBedrooms,omitempty"`
	Sort        string  `json:"sort,omitempty"`
}

// ParseListingFilter reads a filter from query parameters. Unparsable
// numbers are ignored.
func ParseListingFilter(q url.Values) ListingFilter {
	f := ListingFilter{
		Search:   strings.TrimSpace(q.Get("q")),
		Location: strings.TrimSpace(q.Get("location")),
		Type:     strings.TrimSpace(q.Get("type")),
		Status:   strings.TrimSpace(q.Get("status")),
		Sort:     strings.TrimSpace(q.Get("sort")),
	}
	if v, err := strconv.ParseFloat(q.Get("minPrice"), 64); err == nil && v > 0 && !math.IsInf(v, 0) {
		f.MinPrice = v
	}
	if v, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil && v > 0 && !math.IsInf(v, 0) {
		f.MaxPrice = v
	}
	if v, err := strconv.Atoi(q.Get("beds")); err == nil && v > 0 {
		f.MinBedrooms = v
	}
	return f
}

func (f ListingFilter) IsZero() bool {
	return f.Search == "" && f.Location == "" && f.Type == "" && f.Status == "" &&
		f.MinPrice == 0 && f.MaxPrice == 0 && f.MinBedrooms == 0
}

func (f ListingFilter) Match(p models.Property) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !containsFold(p.Title, needle) && !containsFold(p.Location, needle) && !containsFold(p.Address, needle) {
			return false
		}
	}
	if f.Location != "" && !strings.EqualFold(strings.TrimSpace(p.Location), f.Location) {
		return false
	}
	if f.Type != "" && !strings.EqualFold(p.PropertyType, f.Type) {
		return false
	}
	if f.Status != "" && !strings.EqualFold(p.Status, f.Status) {
		return false
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.MinBedrooms > 0 && p.Bedrooms < f.MinBedrooms {
		return false
	}
	return true
}

// Apply returns the matching properties in the requested order.
// The input slice is left untouched.
func (f ListingFilter) Apply(properties []models.Property) []models.Property {
	out := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if f.Match(p) {
			out = append(out, p)
		}
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	}
	return out
}

// PostFilter narrows the insight list.
type PostFilter struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
}

func ParsePostFilter(q url.Values) PostFilter {
	return PostFilter{
		Search:   strings.TrimSpace(q.Get("q")),
		Category: strings.TrimSpace(q.Get("category")),
	}
}

func (f PostFilter) Match(p models.Post) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !containsFold(p.Title, needle) && !containsFold(p.Excerpt, needle) {
			return false
		}
	}
	if f.Category != "" {
		found := false
		for _, c := range p.Categories {
			if strings.EqualFold(c.Slug.Current, f.Category) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f PostFilter) Apply(posts []models.Post) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Locations returns the distinct property locations in first-seen order.
func Locations(properties []models.Property) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range properties {
		key := strings.ToLower(strings.TrimSpace(p.Location))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(p.Location))
	}
	return out
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
