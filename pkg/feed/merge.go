// Package feed maintains the podcast RSS document: inserting the newly
// published episode at the head of the channel, and generating a fresh
// channel when none exists yet.
package feed

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
)

// Item is one new feed entry built from the selected schedule row and
// the published audio asset.
type Item struct {
	Title           string
	Description     string
	GUID            string
	PubDate         time.Time
	EnclosureURL    string
	EnclosureLength int64
	EnclosureType   string
}

// CorruptError reports a feed document missing required structure.
type CorruptError struct {
	Reason string
}

func (e *CorruptError) Error() string {
	return "feed document corrupt: " + e.Reason
}

// GUID derives the deterministic entry identity. Reruns before the
// processed-flag commit produce the same value, keeping retries from
// minting duplicate identities.
func GUID(namespace, date, fileName string) string {
	return fmt.Sprintf("%s-%s-%s", namespace, date, fileName)
}

// Merge inserts one new item into the feed document, newest first.
// Channel metadata and the existing items pass through untouched and in
// order; re-serializing the result again yields identical bytes.
func Merge(feedXML string, item Item) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(feedXML); err != nil {
		return "", &CorruptError{Reason: err.Error()}
	}

	channel := doc.FindElement("//channel")
	if channel == nil {
		return "", &CorruptError{Reason: "no channel element"}
	}

	el := newItemElement(item)
	if existing := channel.SelectElements("item"); len(existing) > 0 {
		channel.InsertChildAt(existing[0].Index(), el)
	} else {
		channel.AddChild(el)
	}

	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("serialize feed: %w", err)
	}
	return out, nil
}

func newItemElement(item Item) *etree.Element {
	el := etree.NewElement("item")
	el.CreateElement("title").SetText(item.Title)
	el.CreateElement("description").SetText(item.Description)
	el.CreateElement("pubDate").SetText(item.PubDate.Format(time.RFC1123Z))

	enclosure := el.CreateElement("enclosure")
	enclosure.CreateAttr("url", item.EnclosureURL)
	enclosure.CreateAttr("length", strconv.FormatInt(item.EnclosureLength, 10))
	enclosure.CreateAttr("type", item.EnclosureType)

	guid := el.CreateElement("guid")
	guid.CreateAttr("isPermaLink", "false")
	guid.SetText(item.GUID)

	return el
}
