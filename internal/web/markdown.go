package web

import (
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/debemdeboas/quote-saver/internal/cache"
	"github.com/debemdeboas/quote-saver/internal/util"
)

// renderQuote turns quote text into HTML. With markdown enabled, inline
// markdown is rendered and raw HTML in the quote is dropped.
func renderQuote(text string, md bool) template.HTML {
	if !md {
		return template.HTML(template.HTMLEscapeString(text))
	}

	hash := util.ContentHashString(text)
	if html, ok := cache.GetRenderedQuote(hash); ok {
		return html
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoIntraEmphasis)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.SkipHTML | mdhtml.Safelink | mdhtml.NofollowLinks | mdhtml.NoreferrerLinks | mdhtml.HrefTargetBlank,
	})

	out := strings.TrimSpace(string(markdown.ToHTML([]byte(text), p, r)))
	// A one-line quote is a single paragraph; drop the wrapper.
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}

	html := template.HTML(out)
	cache.SetRenderedQuote(hash, html)
	return html
}
