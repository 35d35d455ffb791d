package links

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/hansolyoo/cardtalk/internal/cardtalk"
)

// Fallbacks shown when a page carries no usable metadata. The strings
// match what the web client renders for unknown pages.
const (
	FallbackTitle       = "제목 없음"
	FallbackDescription = "설명 없음"
	DefaultImage        = "/iphoneimage.png"
)

// ExtractPreview parses doc and builds a preview card, falling back per
// field:
//
//	title:       og:title > <title> > FallbackTitle
//	description: og:description > meta[name=description] > FallbackDescription
//	image:       og:image > twitter:image > DefaultImage
//	siteName:    og:site_name or empty
//
// It is deterministic and never fails: malformed HTML degrades to the
// fallbacks, not to an error.
func ExtractPreview(doc string, sourceURL string) (cardtalk.Preview, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return cardtalk.Preview{}, err
	}

	meta := make(map[string]string)
	var title string
	walk(root, &title, meta)

	p := cardtalk.Preview{
		Title:       firstNonEmpty(meta["og:title"], title, FallbackTitle),
		Description: firstNonEmpty(meta["og:description"], meta["description"], FallbackDescription),
		Image:       firstNonEmpty(meta["og:image"], meta["twitter:image"], DefaultImage),
		SiteName:    meta["og:site_name"],
		SourceURL:   sourceURL,
	}
	return p, nil
}

// walk collects the first <title> text and the content of every keyed
// <meta> tag. Both property= and name= are accepted as the key attribute:
// pages disagree on which one twitter:* and description live under.
func walk(n *html.Node, title *string, meta map[string]string) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			if *title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				*title = strings.TrimSpace(n.FirstChild.Data)
			}
		case "meta":
			var key, content string
			for _, a := range n.Attr {
				switch a.Key {
				case "property", "name":
					if key == "" {
						key = a.Val
					}
				case "content":
					content = a.Val
				}
			}
			if key != "" && content != "" {
				if _, ok := meta[key]; !ok {
					meta[key] = content
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, title, meta)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
