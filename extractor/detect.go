package extractor

import (
	"net/url"
	"strings"
)

// marketplacePatterns are the path fragments that mark a page as a product
// detail page. Shape-based allowlist: unrecognized storefront URL layouts are
// missed, and non-product pages sharing a fragment slip through.
var marketplacePatterns = []string{
	"/dp/",             // Amazon (Detail Page)
	"/gp/product/",     // Amazon (General Product)
	"/p/",              // Flipkart, Target (Short product links)
	"/buy/",            // Myntra (e.g., myntra.com/tshirt/buy)
	"/ip/",             // Walmart (Item Page)
	"/pd/",             // Generic "Product Detail"
	"/catalog/product/", // Magento / Adobe Commerce default
}

// IsProductPath reports whether rawURL looks like a product detail page.
func IsProductPath(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	path := u.Path
	if path == "" {
		path = rawURL
	}
	for _, pattern := range marketplacePatterns {
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}
