package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/anywear/anywear-agent/extractor"
	"github.com/anywear/anywear-agent/extractor/base"
)

// Manual probe for the extraction pipeline: fetches a URL and prints the
// extracted product as JSON.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: extract <product_url>")
		os.Exit(1)
	}
	url := os.Args[1]

	if !extractor.IsProductPath(url) {
		fmt.Printf("URL does not look like a product page: %s\n", url)
		os.Exit(1)
	}

	fetcher := base.NewFetcher()
	doc, err := fetcher.FetchDocument(url, base.ProductMarkupReady)
	if err != nil {
		fmt.Printf("Fetch failed: %v\n", err)
		os.Exit(1)
	}

	product, err := extractor.New().Capture(doc, url)
	if err != nil {
		fmt.Printf("Extraction failed: %v\n", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(product, "", "  ")
	fmt.Println(string(out))
}
