package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	minFashionDim  = 200
	minAspectRatio = 0.75 // height/width; square-ish lower bound
	maxAspectRatio = 2.5  // tall portrait upper bound
)

// fashionKeywords mark an image as plausibly showing a garment when they
// appear in its alt text, source URL or class list.
var fashionKeywords = []string{
	"shirt", "dress", "jacket", "skirt", "pant", "jean", "top",
	"cloth", "apparel", "wear", "fashion", "outfit", "garment", "model",
}

// BestImageURL prefers a high-resolution zoom attribute over the rendered
// src, but only when it parses as an absolute URL.
func BestImageURL(img *goquery.Selection) string {
	src := strings.TrimSpace(img.AttrOr("src", ""))
	for _, attr := range []string{"data-zoom-image", "data-high-res"} {
		if zoom, ok := img.Attr(attr); ok {
			zoom = strings.TrimSpace(zoom)
			if isAbsoluteURL(zoom) {
				return zoom
			}
		}
	}
	return src
}

// IsFashionImage filters out icons, logos and unrelated thumbnails: the
// image must be reasonably large, roughly vertical-to-square, and carry at
// least one fashion-related signal in its attributes.
func IsFashionImage(width, height int, alt, src, class string) bool {
	if width < minFashionDim || height < minFashionDim {
		return false
	}
	ratio := float64(height) / float64(width)
	if ratio < minAspectRatio || ratio > maxAspectRatio {
		return false
	}
	signals := strings.ToLower(alt + " " + src + " " + class)
	for _, k := range fashionKeywords {
		if strings.Contains(signals, k) {
			return true
		}
	}
	return false
}

func isAbsoluteURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.IsAbs() && (u.Scheme == "http" || u.Scheme == "https")
}
