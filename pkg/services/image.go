package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"estate-site/pkg/models"
)

const imageCDN = "https://cdn.sanity.io/images"

// ImageOptions are the transformations passed to the image CDN.
type ImageOptions struct {
	Width  int
	Height int
	Fit    string
}

// ImageBuilder turns image asset references into CDN URLs.
type ImageBuilder struct {
	ProjectID string
	Dataset   string
	BaseURL   string
}

func NewImageBuilder(projectID, dataset string) *ImageBuilder {
	return &ImageBuilder{ProjectID: projectID, Dataset: dataset, BaseURL: imageCDN}
}

// URL maps "image-<id>-<w>x<h>-<ext>" to its CDN location.
// Malformed references yield an empty string.
func (b *ImageBuilder) URL(ref string, opts ImageOptions) string {
	file, ok := parseImageRef(ref)
	if !ok || b.ProjectID == "" {
		return ""
	}

	base := b.BaseURL
	if base == "" {
		base = imageCDN
	}
	u := fmt.Sprintf("%s/%s/%s/%s", strings.TrimSuffix(base, "/"), b.ProjectID, b.Dataset, file)

	q := url.Values{}
	if opts.Width > 0 {
		q.Set("w", strconv.Itoa(opts.Width))
	}
	if opts.Height > 0 {
		q.Set("h", strconv.Itoa(opts.Height))
	}
	if opts.Width > 0 || opts.Height > 0 {
		fit := opts.Fit
		if fit == "" {
			fit = "crop"
		}
		q.Set("fit", fit)
	}
	q.Set("auto", "format")
	return u + "?" + q.Encode()
}

// Image is a convenience wrapper for templates.
func (b *ImageBuilder) Image(img *models.Image, width, height int) string {
	if img == nil {
		return ""
	}
	return b.URL(img.Asset.Ref, ImageOptions{Width: width, Height: height})
}

func parseImageRef(ref string) (string, bool) {
	if !strings.HasPrefix(ref, "image-") {
		return "", false
	}
	parts := strings.Split(strings.TrimPrefix(ref, "image-"), "-")
	if len(parts) != 3 {
		return "", false
	}
	id, dims, ext := parts[0], parts[1], parts[2]
	if id == "" || ext == "" {
		return "", false
	}
	wh := strings.Split(dims, "x")
	if len(wh) != 2 {
		return "", false
	}
	for _, n := range wh {
		if _, err := strconv.Atoi(n); err != nil {
			return "", false
		}
	}
	return fmt.Sprintf("%s-%s.%s", id, dims, ext), true
}
