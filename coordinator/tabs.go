package coordinator

import "sync"

// TabRegistry tracks the live URL of each page context. Capture messages are
// gated on it rather than on the URL the page reported at extraction time,
// since a message can arrive after the user has navigated away.
type TabRegistry struct {
	mu   sync.RWMutex
	urls map[int]string
}

func NewTabRegistry() *TabRegistry {
	return &TabRegistry{urls: make(map[int]string)}
}

// Navigate records the tab's current URL.
func (t *TabRegistry) Navigate(tabID int, url string) {
	t.mu.Lock()
	t.urls[tabID] = url
	t.mu.Unlock()
}

// URL returns the tab's last known URL.
func (t *TabRegistry) URL(tabID int) (string, bool) {
	t.mu.RLock()
	url, ok := t.urls[tabID]
	t.mu.RUnlock()
	return url, ok
}

// Close forgets a tab.
func (t *TabRegistry) Close(tabID int) {
	t.mu.Lock()
	delete(t.urls, tabID)
	t.mu.Unlock()
}
