package casestudies

import "encoding/json"

// CaseStudy is the persisted content record. Content is opaque to the
// store: whatever block structure the frontend sends is kept and
// returned verbatim. The external JSON shape (camelCase sideImages) is
// the store's public contract; backends that keep snake_case columns
// translate at the scan boundary.
type CaseStudy struct {
	ID         int64           `json:"id"`
	Title      string          `json:"title"`
	Client     string          `json:"client"`
	Date       string          `json:"date"`
	Duration   string          `json:"duration"`
	Industry   string          `json:"industry"`
	Category   string          `json:"category"`
	Image      string          `json:"image"`
	SideImages []string        `json:"sideImages"`
	Content    json.RawMessage `json:"content"`
}

type CreateRequest struct {
	Title      string          `json:"title" validate:"required"`
	Client     string          `json:"client" validate:"required"`
	Date       string          `json:"date" validate:"required"`
	Duration   string          `json:"duration" validate:"required"`
	Industry   string          `json:"industry" validate:"required"`
	Category   string          `json:"category" validate:"required"`
	Image      string          `json:"image" validate:"required"`
	SideImages []string        `json:"sideImages"`
	Content    json.RawMessage `json:"content"`
}

// UpdateRequest carries a partial record: nil fields are left untouched
// on the stored record, the id is never overwritten.
type UpdateRequest struct {
	Title      *string         `json:"title"`
	Client     *string         `json:"client"`
	Date       *string         `json:"date"`
	Duration   *string         `json:"duration"`
	Industry   *string         `json:"industry"`
	Category   *string         `json:"category"`
	Image      *string         `json:"image"`
	SideImages *[]string       `json:"sideImages"`
	Content    json.RawMessage `json:"content"`
}

// Patch is the merge applied by Repository.Update. Backends call Apply
// inside their own write discipline (file lock, row lock) so the
// read-modify-write cannot interleave with another writer.
type Patch struct {
	Title      *string
	Client     *string
	Date       *string
	Duration   *string
	Industry   *string
	Category   *string
	Image      *string
	SideImages *[]string
	Content    json.RawMessage
}

func (p Patch) Apply(cs *CaseStudy) {
	if p.Title != nil {
		cs.Title = *p.Title
	}
	if p.Client != nil {
		cs.Client = *p.Client
	}
	if p.Date != nil {
		cs.Date = *p.Date
	}
	if p.Duration != nil {
		cs.Duration = *p.Duration
	}
	if p.Industry != nil {
		cs.Industry = *p.Industry
	}
	if p.Category != nil {
		cs.Category = *p.Category
	}
	if p.Image != nil {
		cs.Image = *p.Image
	}
	if p.SideImages != nil {
		cs.SideImages = *p.SideImages
	}
	if p.Content != nil {
		cs.Content = p.Content
	}
}
