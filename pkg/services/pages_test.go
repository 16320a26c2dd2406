package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLegal(t *testing.T, root, name, content string) {
	t.Helper()
	dir := filepath.Join(root, "legal")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestParseFrontMatterFormats(t *testing.T) {
	tests := []struct {
		name    string
		content string
		format  string
		title   string
		body    string
	}{
		{"yaml", "---\ntitle: Privacy\n---\n\n# Body\n", "yaml", "Privacy", "# Body"},
		{"toml", "+++\ntitle = \"Terms\"\n+++\nBody text\n", "toml", "Terms", "Body text"},
		{"json", "{\"title\": \"Cookies\"}\nWe use cookies.\n", "json", "Cookies", "We use cookies."},
		{"crlf", "---\r\ntitle: Windows\r\n---\r\nLine\r\n", "yaml", "Windows", "Line"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, format, err := ParseFrontMatter([]byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.title, fm["title"])
			assert.Equal(t, tt.body, body)
		})
	}
}

func TestParseFrontMatterUnknown(t *testing.T) {
	_, _, _, err := ParseFrontMatter([]byte("just markdown"))
	assert.Error(t, err)

	_, _, _, err = ParseFrontMatter([]byte("---\ntitle: [broken\n---\nbody"))
	assert.Error(t, err)
}

func TestPageStore(t *testing.T) {
	root := t.TempDir()
	writeLegal(t, root, "privacy-policy.md", "---\ntitle: Privacy Policy\nupdated: \"1 March 2024\"\ndescription: How we handle your data\n---\n\nWe collect **names** and emails.\n\n<script>alert(1)</script>\n")
	writeLegal(t, root, "terms.md", "+++\ntitle = \"Terms of Use\"\n+++\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	writeLegal(t, root, "plain.md", "# Plain\n")
	writeLegal(t, root, "notes.txt", "ignored")

	store := NewPageStore(root)

	page, err := store.Page("privacy-policy")
	require.NoError(t, err)
	assert.Equal(t, "Privacy Policy", page.Title)
	assert.Equal(t, "1 March 2024", page.Updated)
	assert.Equal(t, "How we handle your data", page.Description)
	assert.Contains(t, string(page.HTML), "<strong>names</strong>")
	assert.NotContains(t, string(page.HTML), "<script>")

	terms, err := store.Page("terms")
	require.NoError(t, err)
	assert.Equal(t, "Terms of Use", terms.Title)
	assert.Contains(t, string(terms.HTML), "<table>")

	plain, err := store.Page("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", plain.Title)
	assert.Contains(t, string(plain.HTML), "Plain</h1>")

	_, err = store.Page("notes")
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "plain", list[0].Slug)
}

func TestPageStoreReload(t *testing.T) {
	root := t.TempDir()
	store := NewPageStore(root)

	_, err := store.Page("terms")
	assert.ErrorIs(t, err, ErrNotFound, "missing legal dir is not an error")

	writeLegal(t, root, "terms.md", "---\ntitle: Terms\n---\nBody")
	_, err = store.Page("terms")
	assert.ErrorIs(t, err, ErrNotFound, "pages are cached until reload")

	require.NoError(t, store.Reload())
	page, err := store.Page("terms")
	require.NoError(t, err)
	assert.Equal(t, "Terms", page.Title)
}
