package base

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetcher acquires product pages for extraction. Storefronts vary in how
// hostile they are to plain clients, so it escalates: HTTP first, then
// headless Chrome, then a full Selenium browser.
type Fetcher struct {
	Client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		Client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				ForceAttemptHTTP2:     false,
				TLSNextProto:          make(map[string]func(string, *tls.Conn) http.RoundTripper),
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

// FetchDocument tries each strategy in turn until one yields a document that
// passes ready. The readiness check catches pages whose product markup only
// appears after client-side rendering.
func (f *Fetcher) FetchDocument(url string, ready func(*goquery.Document) bool) (*goquery.Document, error) {
	doc, err := f.FetchDocumentHTTP(url)
	if err == nil {
		if ready(doc) {
			return doc, nil
		}
		fmt.Printf("[Fetcher] HTTP content not ready, trying fallbacks: %s\n", url)
	} else {
		fmt.Printf("[Fetcher] HTTP failed: %v\n", err)
	}

	doc, err = f.FetchDocumentChromeDP(url)
	if err == nil && ready(doc) {
		return doc, nil
	}
	if err != nil {
		fmt.Printf("[Fetcher] ChromeDP failed: %v\n", err)
	}

	doc, err = f.FetchDocumentSelenium(url)
	if err == nil && ready(doc) {
		return doc, nil
	}
	if err != nil {
		fmt.Printf("[Fetcher] Selenium failed: %v\n", err)
	}

	return nil, fmt.Errorf("all fetch strategies failed for %s", url)
}

// ProductMarkupReady is the default readiness check: accept once the page
// shows either structured product data or a heading, and was not served by a
// bot interstitial.
func ProductMarkupReady(doc *goquery.Document) bool {
	title := strings.ToLower(strings.TrimSpace(doc.Find("title").Text()))
	if strings.Contains(title, "robot check") ||
		strings.Contains(title, "captcha") ||
		strings.Contains(title, "access denied") {
		return false
	}
	return doc.Find(`script[type="application/ld+json"]`).Length() > 0 ||
		doc.Find("h1").Length() > 0
}

// FetchDocumentHTTP fetches the URL with a plain HTTP client dressed up as a
// desktop browser.
func (f *Fetcher) FetchDocumentHTTP(url string) (*goquery.Document, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	req.Header.Set("Sec-Fetch-User", "?1")

	res, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		return nil, fmt.Errorf("status code error: %d %s", res.StatusCode, res.Status)
	}

	return goquery.NewDocumentFromReader(res.Body)
}
