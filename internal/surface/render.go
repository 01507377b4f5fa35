package surface

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"mime"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// activeContent is removed before sanitizing; none of it may run or load
// third-party documents inside a preview.
const activeContent = "script, noscript, iframe, frame, frameset, object, embed, applet, portal, " +
	"link[rel=preload], link[rel=prefetch], link[rel=import], meta[http-equiv]"

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("audio", "video", "source", "figure", "figcaption", "picture")
	p.AllowAttrs("controls", "muted", "loop", "poster", "preload", "width", "height").OnElements("audio", "video")
	p.AllowAttrs("src", "type").OnElements("audio", "video", "source")
	p.AllowAttrs("srcset", "media").OnElements("source")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

func (p *Proxy) render(data []byte, contentType, final string) (Document, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = "application/octet-stream"
	}

	base, err := url.Parse(final)
	if err != nil {
		return Document{}, fmt.Errorf("invalid document URL: %w", err)
	}

	var markup string
	title := base.Host

	switch {
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		doc, err := goquery.NewDocumentFromReader(decode(data, contentType))
		if err != nil {
			return Document{}, fmt.Errorf("parse HTML: %w", err)
		}
		if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
			title = t
		}
		stripActiveContent(doc)
		absolutize(doc, base)
		markup, err = doc.Find("body").Html()
		if err != nil {
			return Document{}, fmt.Errorf("render HTML: %w", err)
		}
	case strings.HasPrefix(mediaType, "image/"):
		markup = fmt.Sprintf(`<img src="%s" alt="%s">`, html.EscapeString(final), html.EscapeString(title))
	case strings.HasPrefix(mediaType, "video/"):
		markup = fmt.Sprintf(`<video controls src="%s"></video>`, html.EscapeString(final))
	case strings.HasPrefix(mediaType, "audio/"):
		markup = fmt.Sprintf(`<audio controls src="%s"></audio>`, html.EscapeString(final))
	case strings.HasPrefix(mediaType, "text/"):
		text, err := io.ReadAll(decode(data, contentType))
		if err != nil {
			return Document{}, fmt.Errorf("decode text: %w", err)
		}
		markup = "<pre>" + html.EscapeString(string(text)) + "</pre>"
	default:
		return Document{}, fmt.Errorf("unsupported content type %q", mediaType)
	}

	return Document{
		URL:         final,
		Title:       title,
		HTML:        strings.TrimSpace(p.policy.Sanitize(markup)),
		ContentType: mediaType,
	}, nil
}

// decode returns a UTF-8 reader over data. The declared charset wins;
// otherwise the charset is detected from the bytes.
func decode(data []byte, contentType string) io.Reader {
	if _, params, err := mime.ParseMediaType(contentType); err == nil && params["charset"] != "" {
		if r, err := charset.NewReader(bytes.NewReader(data), contentType); err == nil {
			return r
		}
	}

	detector := chardet.NewHtmlDetector()
	if result, err := detector.DetectBest(data); err == nil && result != nil {
		if r, err := charset.NewReaderLabel(result.Charset, bytes.NewReader(data)); err == nil {
			return r
		}
	}
	return bytes.NewReader(data)
}

func stripActiveContent(doc *goquery.Document) {
	doc.Find(activeContent).Remove()

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		var handlers []string
		for _, attr := range s.Nodes[0].Attr {
			if strings.HasPrefix(strings.ToLower(attr.Key), "on") {
				handlers = append(handlers, attr.Key)
			}
		}
		for _, name := range handlers {
			s.RemoveAttr(name)
		}
		s.RemoveAttr("autoplay")
	})

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if isPixel(s.AttrOr("width", "")) && isPixel(s.AttrOr("height", "")) {
			s.Remove()
		}
	})
}

func isPixel(dim string) bool {
	dim = strings.TrimSuffix(strings.TrimSpace(dim), "px")
	return dim == "0" || dim == "1"
}

// absolutize rewrites relative references against base so the snapshot
// renders outside the origin it was fetched from.
func absolutize(doc *goquery.Document, base *url.URL) {
	rewrite := func(selector, attr string) {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			ref, ok := s.Attr(attr)
			if !ok || ref == "" || strings.HasPrefix(ref, "#") {
				return
			}
			if abs := resolveURL(ref, base); abs != "" {
				s.SetAttr(attr, abs)
			} else {
				s.RemoveAttr(attr)
			}
		})
	}
	rewrite("a[href]", "href")
	rewrite("img[src]", "src")
	rewrite("source[src]", "src")
	rewrite("video[src]", "src")
	rewrite("audio[src]", "src")
	rewrite("video[poster]", "poster")
}

func resolveURL(ref string, base *url.URL) string {
	lower := strings.ToLower(strings.TrimSpace(ref))
	for _, scheme := range []string{"data:", "javascript:", "vbscript:", "file:"} {
		if strings.HasPrefix(lower, scheme) {
			return ""
		}
	}

	parsed, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	return base.ResolveReference(parsed).String()
}

// applyMuted toggles the muted attribute on every media element of markup.
func applyMuted(markup string, muted bool) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup
	}
	media := doc.Find("audio, video")
	if media.Length() == 0 {
		return markup
	}
	if muted {
		media.SetAttr("muted", "")
	} else {
		media.RemoveAttr("muted")
	}
	out, err := doc.Find("body").Html()
	if err != nil {
		return markup
	}
	return strings.TrimSpace(out)
}
