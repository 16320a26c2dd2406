package services

import (
	"html"
	"html/template"
	"strings"

	"estate-site/pkg/models"

	"github.com/microcosm-cc/bluemonday"
)

var blockTags = map[string]string{
	"normal":     "p",
	"h2":         "h2",
	"h3":         "h3",
	"h4":         "h4",
	"blockquote": "blockquote",
}

var markTags = map[string]string{
	"strong":    "strong",
	"em":        "em",
	"code":      "code",
	"underline": "u",
}

// RichText renders Portable Text blocks into sanitized HTML.
type RichText struct {
	images *ImageBuilder
	policy *bluemonday.Policy
}

func NewRichText(images *ImageBuilder) *RichText {
	return &RichText{images: images, policy: bluemonday.UGCPolicy()}
}

func (r *RichText) Render(blocks []models.Block) template.HTML {
	var b strings.Builder
	openList := ""

	closeList := func() {
		if openList != "" {
			b.WriteString("</" + openList + ">")
			openList = ""
		}
	}

	for _, block := range blocks {
		switch block.Type {
		case "block":
			if block.ListItem != "" {
				tag := "ul"
				if block.ListItem == "number" {
					tag = "ol"
				}
				if openList != tag {
					closeList()
					b.WriteString("<" + tag + ">")
					openList = tag
				}
				b.WriteString("<li>")
				writeSpans(&b, block)
				b.WriteString("</li>")
				continue
			}
			closeList()
			tag, ok := blockTags[block.Style]
			if !ok {
				tag = "p"
			}
			b.WriteString("<" + tag + ">")
			writeSpans(&b, block)
			b.WriteString("</" + tag + ">")
		case "image":
			closeList()
			if r.images == nil {
				continue
			}
			src := r.images.URL(block.Asset.Ref, ImageOptions{Width: 1200})
			if src == "" {
				continue
			}
			b.WriteString(`<figure><img src="` + html.EscapeString(src) + `" alt="` + html.EscapeString(block.Alt) + `"></figure>`)
		default:
			// Unknown custom block types are skipped.
			closeList()
		}
	}
	closeList()

	return template.HTML(r.policy.Sanitize(b.String()))
}

// PlainText flattens blocks, used for excerpts and meta descriptions.
func PlainText(blocks []models.Block, limit int) string {
	var parts []string
	for _, block := range blocks {
		if block.Type != "block" {
			continue
		}
		var line strings.Builder
		for _, span := range block.Children {
			line.WriteString(span.Text)
		}
		if s := strings.TrimSpace(line.String()); s != "" {
			parts = append(parts, s)
		}
	}
	text := strings.Join(parts, " ")
	if limit > 0 && len([]rune(text)) > limit {
		runes := []rune(text)
		text = strings.TrimSpace(string(runes[:limit])) + "…"
	}
	return text
}

func writeSpans(b *strings.Builder, block models.Block) {
	links := make(map[string]string, len(block.MarkDefs))
	for _, def := range block.MarkDefs {
		if def.Type == "link" {
			links[def.Key] = def.Href
		}
	}

	for _, span := range block.Children {
		var open, closing []string
		for _, mark := range span.Marks {
			if tag, ok := markTags[mark]; ok {
				open = append(open, "<"+tag+">")
				closing = append([]string{"</" + tag + ">"}, closing...)
				continue
			}
			if href, ok := links[mark]; ok {
				open = append(open, `<a href="`+html.EscapeString(href)+`">`)
				closing = append([]string{"</a>"}, closing...)
			}
		}
		text := html.EscapeString(span.Text)
		text = strings.ReplaceAll(text, "\n", "<br>")
		b.WriteString(strings.Join(open, ""))
		b.WriteString(text)
		b.WriteString(strings.Join(closing, ""))
	}
}
