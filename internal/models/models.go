package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Image struct {
	Src     string `json:"src"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// Post is the canonical feed entry. Raw backend records from either source are
// reconciled into this shape by Normalize; nothing downstream reads raw fields.
type Post struct {
	ID        string    `json:"id,omitempty"`
	Author    string    `json:"author"`
	Timestamp string    `json:"timestamp"`
	Text      string    `json:"text,omitempty"`
	Images    []Image   `json:"images,omitempty"`
	When      time.Time `json:"-"`
	HasWhen   bool      `json:"-"`
}

// Draft is a not-yet-committed post built from the authoring form.
type Draft struct {
	ID        string  `json:"id"`
	Author    string  `json:"author"`
	Timestamp string  `json:"timestamp"`
	Text      string  `json:"text" validate:"required"`
	Images    []Image `json:"images"`
}

func (d *Draft) Post() Post {
	return normalizeFields(Post{
		ID:        d.ID,
		Author:    d.Author,
		Timestamp: d.Timestamp,
		Text:      d.Text,
		Images:    d.Images,
	})
}

// timestampFormats covers the snapshot's ISO-8601 strings and the live store's
// native datetime serializations.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseWhen parses a timestamp into a comparable instant. Unparseable values
// report ok=false and are displayed verbatim by the renderer.
func ParseWhen(timestamp string) (time.Time, bool) {
	value := strings.TrimSpace(timestamp)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Normalize maps a raw backend record onto a Post. It accepts both backend
// shapes ({timestamp, images:[{src,alt,caption}]} from the snapshot and
// {created_at, images:[{src,alt}]} from the live store), defaults the author
// to the configured owner name, drops images without a src, and fills missing
// alt text. It returns nil only for non-object input; a partial field issue
// never rejects the whole post.
func Normalize(data json.RawMessage, ownerName string) *Post {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		// a JSON null unmarshals into a nil map without error
		return nil
	}

	post := Post{
		ID:     stringField(raw, "id"),
		Author: stringField(raw, "author"),
		Text:   stringField(raw, "text"),
	}

	post.Timestamp = stringField(raw, "timestamp")
	if post.Timestamp == "" {
		post.Timestamp = stringField(raw, "created_at")
	}

	if imagesRaw, ok := raw["images"]; ok {
		// best effort: a malformed images array drops to none
		_ = json.Unmarshal(imagesRaw, &post.Images)
	}

	if post.Author == "" {
		post.Author = ownerName
	}

	post = normalizeFields(post)
	return &post
}

// normalizeFields applies the field-level defaults to an already-shaped post:
// image filtering, alt placeholders and timestamp parsing.
func normalizeFields(post Post) Post {
	kept := make([]Image, 0, len(post.Images))
	for _, image := range post.Images {
		if strings.TrimSpace(image.Src) == "" {
			continue
		}
		if image.Alt == "" {
			image.Alt = fmt.Sprintf("Update image %d", len(kept)+1)
		}
		kept = append(kept, image)
	}
	if len(kept) == 0 {
		kept = nil
	}
	post.Images = kept

	post.When, post.HasWhen = ParseWhen(post.Timestamp)
	return post
}

func stringField(raw map[string]json.RawMessage, key string) string {
	value, ok := raw[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return ""
	}
	return s
}
