package feed

import (
	"fmt"
	"time"

	"github.com/gorilla/feeds"
)

// Channel is the feed-level metadata used when no feed document exists
// yet. Established feeds carry their own metadata through Merge; this is
// only consulted on the very first publish.
type Channel struct {
	Title       string
	Link        string
	Description string
}

// NewDocument generates an empty RSS channel document for a brand-new
// feed. The result is merge-ready: Merge inserts the first item into it.
func NewDocument(ch Channel, now time.Time) (string, error) {
	f := &feeds.Feed{
		Title:       ch.Title,
		Link:        &feeds.Link{Href: ch.Link},
		Description: ch.Description,
		Created:     now,
	}
	rss, err := f.ToRss()
	if err != nil {
		return "", fmt.Errorf("generate feed: %w", err)
	}
	return rss, nil
}
