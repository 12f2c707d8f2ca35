// Package sanitizer cleans user-written HTML before it is shown to other
// members.
package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var descriptionPolicy = sync.OnceValue(func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements(
		"p", "br", "hr",
		"strong", "b", "em", "i", "del",
		"ul", "ol", "li",
		"code", "pre", "blockquote",
	)
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
})

// Description keeps the formatting an event or network description may use
// (paragraphs, emphasis, lists, code, quotes and links). Links get
// rel="nofollow"; scripts, styles, event handlers and javascript: URLs are
// removed.
func Description(s string) string {
	return descriptionPolicy().Sanitize(s)
}
