package render

import (
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"updatesfeed/internal/models"
)

// MaxVisibleImages caps the media block; overflow is truncated, not queued.
const MaxVisibleImages = 4

const timeLabelLayout = "Jan 2, 2006, 3:04 PM"

type MediaItem struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
}

// Action is a placeholder interaction affordance: visibly present, explicitly
// non-functional, labeled as such for assistive tech.
type Action struct {
	Label     string `json:"label"`
	AriaLabel string `json:"ariaLabel"`
	Enabled   bool   `json:"enabled"`
}

type Card struct {
	ID         string      `json:"id,omitempty"`
	Author     string      `json:"author"`
	AriaLabel  string      `json:"ariaLabel"`
	DateTime   string      `json:"dateTime"`
	TimeLabel  string      `json:"timeLabel"`
	TimeAgo    string      `json:"timeAgo,omitempty"`
	TextHTML   string      `json:"textHtml,omitempty"`
	Media      []MediaItem `json:"media,omitempty"`
	MediaClass string      `json:"mediaClass,omitempty"`
	Actions    []Action    `json:"actions"`
}

// Render produces one card per input post, sorted by recency. It is a pure
// projection: calling it twice with the same input yields the same cards, and
// an empty input yields an empty list, never an error. Empty-state messaging
// is the caller's concern.
func Render(posts []models.Post) []Card {
	sorted := Sort(posts)
	return lo.Map(sorted, func(post models.Post, _ int) Card {
		return buildCard(post)
	})
}

// Sort returns the posts in strict descending order by parsed timestamp
// without mutating the input. Posts with unparseable timestamps are treated
// as epoch, so they sink to the bottom; ties keep relative input order.
func Sort(posts []models.Post) []models.Post {
	sorted := make([]models.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].When.After(sorted[j].When)
	})
	return sorted
}

// TimestampLabel formats a parsed instant for display; unparseable timestamps
// are shown verbatim rather than failing.
func TimestampLabel(post models.Post) string {
	if !post.HasWhen {
		return post.Timestamp
	}
	return post.When.Format(timeLabelLayout)
}

func buildCard(post models.Post) Card {
	label := TimestampLabel(post)

	card := Card{
		ID:        post.ID,
		Author:    post.Author,
		AriaLabel: fmt.Sprintf("%s posted on %s", post.Author, label),
		DateTime:  post.Timestamp,
		TimeLabel: label,
	}
	if post.HasWhen {
		card.TimeAgo = humanize.Time(post.When)
	}

	if post.Text != "" {
		card.TextHTML = FormatText(post.Text)
	}

	images := post.Images
	if len(images) > MaxVisibleImages {
		images = images[:MaxVisibleImages]
	}
	if len(images) > 0 {
		card.Media = lo.Map(images, func(image models.Image, _ int) MediaItem {
			return MediaItem{Src: image.Src, Alt: image.Alt, Caption: image.Caption}
		})
		card.MediaClass = fmt.Sprintf("update-card__media--count-%d", len(images))
	}

	card.Actions = []Action{
		{Label: "Like", AriaLabel: "Like (coming soon)"},
		{Label: "Reply", AriaLabel: "Reply (coming soon)"},
		{Label: "Share", AriaLabel: "Share (coming soon)"},
	}

	return card
}

// HTML renders the card as an accessible article element. TextHTML is inserted
// as-is: it is already escaped by FormatText; everything else is escaped here.
func (c Card) HTML() string {
	var b strings.Builder

	b.WriteString(`<article class="update-card"`)
	if c.ID != "" {
		fmt.Fprintf(&b, ` id="%s"`, template.HTMLEscapeString(c.ID))
	}
	fmt.Fprintf(&b, ` aria-label="%s">`, template.HTMLEscapeString(c.AriaLabel))

	fmt.Fprintf(&b, `<div class="update-card__meta"><span class="update-card__author">%s</span>`,
		template.HTMLEscapeString(c.Author))
	fmt.Fprintf(&b, `<time class="update-card__time" datetime="%s">%s</time></div>`,
		template.HTMLEscapeString(c.DateTime), template.HTMLEscapeString(c.TimeLabel))

	if c.TextHTML != "" {
		fmt.Fprintf(&b, `<p class="update-card__text">%s</p>`, c.TextHTML)
	}

	if len(c.Media) > 0 {
		fmt.Fprintf(&b, `<div class="update-card__media %s">`, c.MediaClass)
		for _, item := range c.Media {
			b.WriteString(`<figure>`)
			fmt.Fprintf(&b, `<img src="%s" alt="%s" loading="lazy" decoding="async">`,
				template.HTMLEscapeString(item.Src), template.HTMLEscapeString(item.Alt))
			if item.Caption != "" {
				fmt.Fprintf(&b, `<figcaption>%s</figcaption>`, template.HTMLEscapeString(item.Caption))
			}
			b.WriteString(`</figure>`)
		}
		b.WriteString(`</div>`)
	}

	b.WriteString(`<div class="update-card__actions">`)
	for _, action := range c.Actions {
		fmt.Fprintf(&b, `<button type="button" aria-label="%s" disabled>%s</button>`,
			template.HTMLEscapeString(action.AriaLabel), template.HTMLEscapeString(action.Label))
	}
	b.WriteString(`</div></article>`)

	return b.String()
}
