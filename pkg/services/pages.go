package services

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"estate-site/pkg/models"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// PageStore serves the Markdown legal pages under <root>/legal.
type PageStore struct {
	root     string
	markdown goldmark.Markdown
	policy   *bluemonday.Policy

	mu     sync.Mutex
	pages  map[string]models.Page
	loaded bool
}

func NewPageStore(root string) *PageStore {
	return &PageStore{
		root:     root,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:   bluemonday.UGCPolicy(),
	}
}

func (s *PageStore) Page(slug string) (*models.Page, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	page, ok := s.pages[slug]
	if !ok {
		return nil, ErrNotFound
	}
	return &page, nil
}

func (s *PageStore) List() ([]models.Page, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Page, 0, len(s.pages))
	for _, p := range s.pages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (s *PageStore) Reload() error {
	s.mu.Lock()
	s.loaded = false
	s.pages = nil
	s.mu.Unlock()
	return s.ensureLoaded()
}

func (s *PageStore) ensureLoaded() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	pages := make(map[string]models.Page)
	legalDir := filepath.Join(s.root, "legal")
	err := filepath.WalkDir(legalDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		slug := strings.TrimSuffix(d.Name(), ".md")
		page, err := s.render(slug, content)
		if err != nil {
			return fmt.Errorf("%s: %w", d.Name(), err)
		}
		pages[slug] = page
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	s.pages = pages
	s.loaded = true
	return nil
}

func (s *PageStore) render(slug string, content []byte) (models.Page, error) {
	page := models.Page{Slug: slug, Title: slug}

	fm, body, _, err := ParseFrontMatter(content)
	if err != nil {
		// Plain Markdown without front matter.
		body = string(content)
	} else {
		if t := frontMatterString(fm, "title"); t != "" {
			page.Title = t
		}
		page.Description = frontMatterString(fm, "description")
		page.Updated = frontMatterString(fm, "updated")
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(body), &buf); err != nil {
		return page, err
	}
	page.HTML = template.HTML(s.policy.SanitizeBytes(buf.Bytes()))
	return page, nil
}
