package handlers

import (
	"html/template"
	"io/fs"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"estate-site/pkg/models"
	"estate-site/pkg/services"

	"github.com/dustin/go-humanize"
)

// TemplateFuncs are available to every page template.
func TemplateFuncs(images *services.ImageBuilder, rich *services.RichText) template.FuncMap {
	return template.FuncMap{
		"price": FormatPrice,
		"img": func(v interface{}, width, height int) string {
			if images == nil {
				return ""
			}
			switch img := v.(type) {
			case *models.Image:
				return images.Image(img, width, height)
			case models.Image:
				return images.Image(&img, width, height)
			}
			return ""
		},
		"richtext": func(blocks []models.Block) template.HTML {
			if rich == nil {
				return ""
			}
			return rich.Render(blocks)
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2 Jan 2006")
		},
		"ago": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return humanize.Time(t)
		},
		"title": func(s string) string {
			r, size := utf8.DecodeRuneInString(s)
			if r == utf8.RuneError {
				return s
			}
			return string(unicode.ToUpper(r)) + s[size:]
		},
		"stars": func(n int) string {
			if n < 0 {
				n = 0
			}
			if n > 5 {
				n = 5
			}
			return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
		},
	}
}

// FormatPrice renders "GHS 1,250,000". Fractions are only shown when present.
func FormatPrice(amount float64, currency string) string {
	if currency == "" {
		currency = "GHS"
	}
	if amount <= 0 {
		return "Price on request"
	}
	if amount == math.Trunc(amount) {
		return currency + " " + humanize.Comma(int64(amount))
	}
	return currency + " " + humanize.CommafWithDigits(amount, 2)
}

// ParseTemplates loads every *.html page from fsys.
func ParseTemplates(fsys fs.FS, funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(fsys, "templates/*.html")
}
