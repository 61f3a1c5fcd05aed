package pages

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxHTMLBodyBytes = 1 << 20 // 1 MiB

// htmlFields are the payload keys checked, in order, for generated markup.
var htmlFields = []string{"html", "content", "page", "template"}

// findHTML returns the first HTML-looking string in a generate-page payload.
func findHTML(payload any) string {
	switch v := payload.(type) {
	case string:
		if looksLikeHTML(v) {
			return v
		}
	case map[string]any:
		for _, key := range htmlFields {
			if s, ok := v[key].(string); ok && looksLikeHTML(s) {
				return s
			}
		}
		if nested, ok := v["data"]; ok {
			return findHTML(nested)
		}
	}
	return ""
}

func looksLikeHTML(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "<") && strings.Contains(s, ">")
}

type pageMeta struct {
	Title       string
	Description string
}

func parseMeta(body []byte) (pageMeta, error) {
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pageMeta{}, fmt.Errorf("parse html: %w", err)
	}

	extract := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	return pageMeta{
		Title: firstNonEmpty(
			extract(`meta[property="og:title"]`),
			doc.Find("title").First().Text(),
			doc.Find("h1").First().Text(),
		),
		Description: firstNonEmpty(
			extract(`meta[property="og:description"]`),
			extract(`meta[name="description"]`),
			doc.Find("p").First().Text(),
		),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
