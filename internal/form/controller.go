package form

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"updatesfeed/internal/models"
)

// ErrEmptyText is the user-facing rejection for drafts with no text after
// trimming. An image-only post is rejected by this policy.
var ErrEmptyText = errors.New("Please add some text before publishing.")

var ErrLastRow = errors.New("the last image row cannot be removed")

var ErrRowNotFound = errors.New("image row not found")

// ImageRow is the projection of one URL+alt input pair. CanRemove reflects
// the form invariant that at least one image slot is always offered.
type ImageRow struct {
	ID        int    `json:"id"`
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	CanRemove bool   `json:"canRemove"`
}

type imageRow struct {
	id  int
	url string
	alt string
}

// Controller holds the authoring form state: the draft text and an ordered
// sequence of image rows. Rendering of rows is a pure projection of this
// state; row IDs are monotonic per session and never reused after removal.
type Controller struct {
	ownerName string
	validate  *validator.Validate

	mu     sync.Mutex
	nextID int
	text   string
	rows   []imageRow
}

func NewController(ownerName string) *Controller {
	c := &Controller{
		ownerName: ownerName,
		validate:  validator.New(),
	}
	c.AddImageRow("", "")
	return c
}

// AddImageRow appends one URL+alt pair and returns the full row projection.
func (c *Controller) AddImageRow(initialURL, initialAlt string) []ImageRow {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	c.rows = append(c.rows, imageRow{id: c.nextID, url: initialURL, alt: initialAlt})
	return c.projectRows()
}

// RemoveImageRow deletes the row with the given id. Removal is refused while
// exactly one row remains.
func (c *Controller) RemoveImageRow(id int) ([]ImageRow, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.rows) == 1 {
		return c.projectRows(), ErrLastRow
	}
	for i, row := range c.rows {
		if row.id == id {
			c.rows = append(c.rows[:i], c.rows[i+1:]...)
			return c.projectRows(), nil
		}
	}
	return c.projectRows(), ErrRowNotFound
}

func (c *Controller) SetImageRow(id int, url, alt string) ([]ImageRow, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, row := range c.rows {
		if row.id == id {
			c.rows[i].url = url
			c.rows[i].alt = alt
			return c.projectRows(), nil
		}
	}
	return c.projectRows(), ErrRowNotFound
}

func (c *Controller) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
}

func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

func (c *Controller) Rows() []ImageRow {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectRows()
}

// BuildDraft reads the text field and all surviving rows into a Draft. Text is
// trimmed and required; rows with an empty URL are silently skipped; blank alt
// falls back to an index-based placeholder. No state is consumed; the form is
// cleared separately, and only on confirmed commit success.
func (c *Controller) BuildDraft() (*models.Draft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	text := strings.TrimSpace(c.text)

	images := make([]models.Image, 0, len(c.rows))
	for _, row := range c.rows {
		src := strings.TrimSpace(row.url)
		if src == "" {
			continue
		}
		alt := strings.TrimSpace(row.alt)
		if alt == "" {
			alt = fmt.Sprintf("Update image %d", len(images)+1)
		}
		images = append(images, models.Image{Src: src, Alt: alt})
	}

	draft := &models.Draft{
		ID:        uuid.New().String(),
		Author:    c.ownerName,
		Timestamp: time.Now().Format(time.RFC3339),
		Text:      text,
		Images:    images,
	}

	if err := c.validate.Struct(draft); err != nil {
		return nil, ErrEmptyText
	}

	return draft, nil
}

// Reset clears the form back to a single empty row. The row counter keeps
// climbing so IDs stay unique across the session.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.text = ""
	c.nextID++
	c.rows = []imageRow{{id: c.nextID}}
}

func (c *Controller) projectRows() []ImageRow {
	canRemove := len(c.rows) > 1
	projected := make([]ImageRow, len(c.rows))
	for i, row := range c.rows {
		projected[i] = ImageRow{ID: row.id, URL: row.url, Alt: row.alt, CanRemove: canRemove}
	}
	return projected
}
