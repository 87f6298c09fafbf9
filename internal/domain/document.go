package domain

// Sentinel values used when the search backend omits a metadata field.
const (
	UntitledSentinel = "(untitled)"
	NoType           = "No type"
	NoDate           = "No date"
	NoBates          = "No bates number"
)

// Document is one retrieved archive record. The body text starts unfilled
// and is written exactly once by the store's body-fill pass.
type Document struct {
	id         string
	title      string
	docType    string
	date       string
	bates      string
	strategy   string
	body       string
	bodyFilled bool
}

// NewDocument creates a Document from backend metadata.
// Empty type/date/bates fields fall back to their sentinel values;
// the title fallback is applied at admission, not here.
func NewDocument(id, title, docType, date, bates string) Document {
	if docType == "" {
		docType = NoType
	}
	if date == "" {
		date = NoDate
	}
	if bates == "" {
		bates = NoBates
	}
	return Document{id: id, title: title, docType: docType, date: date, bates: bates}
}

// ID returns the stable backend identifier.
func (d *Document) ID() string { return d.id }

// Title returns the display title.
func (d *Document) Title() string { return d.title }

// Type returns the backend document type.
func (d *Document) Type() string { return d.docType }

// Date returns the document date string (possibly the NoDate sentinel).
func (d *Document) Date() string { return d.date }

// Bates returns the bates number.
func (d *Document) Bates() string { return d.bates }

// Strategy returns the search terms of the strategy that first produced
// this document.
func (d *Document) Strategy() string { return d.strategy }

// Body returns the fetched body text. Empty until filled.
func (d *Document) Body() string { return d.body }

// BodyFilled reports whether the body text has been written.
func (d *Document) BodyFilled() bool { return d.bodyFilled }

// SetTitle overrides the display title (admission applies the untitled fallback).
func (d *Document) SetTitle(title string) { d.title = title }

// SetStrategy records the originating strategy.
func (d *Document) SetStrategy(terms string) { d.strategy = terms }

// SetBody writes the body text. The first write wins; later calls are no-ops
// so the fill pass stays idempotent.
func (d *Document) SetBody(text string) {
	if d.bodyFilled {
		return
	}
	d.body = text
	d.bodyFilled = true
}
