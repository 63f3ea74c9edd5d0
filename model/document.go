package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tsawler/oxa/scholarly"
)

// Metadata keys with a typed view.
const (
	MetaLicense = "license"
	MetaAuthor  = "author"
	MetaFunding = "funding"
)

// Document is the root of a document tree. A Document is treated as an
// immutable snapshot: the With* and edit functions return new documents
// that share every unchanged subtree with the original.
type Document struct {
	// Metadata is an open map. Values are raw JSON and are written back
	// unchanged.
	Metadata map[string]json.RawMessage
	Title    []Inline
	Children []Block
}

// NewDocument creates a document from blocks.
func NewDocument(children ...Block) *Document {
	return &Document{Children: children}
}

// ExtractText returns the plain text of the title and every block, one
// block per paragraph.
func (d *Document) ExtractText() string {
	var sb strings.Builder
	if t := InlinesText(d.Title); t != "" {
		sb.WriteString(t)
		sb.WriteString("\n\n")
	}
	for _, b := range d.Children {
		if t := BlockText(b); t != "" {
			sb.WriteString(t)
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// License decodes metadata.license. ok is false when the key is absent.
func (d *Document) License() (license *scholarly.License, ok bool, err error) {
	raw, ok := d.Metadata[MetaLicense]
	if !ok {
		return nil, false, nil
	}
	l, err := scholarly.DecodeLicense(raw, "metadata."+MetaLicense)
	return l, err == nil, err
}

// Authors decodes metadata.author. A document without authors yields nil.
func (d *Document) Authors() ([]*scholarly.Author, error) {
	raw, ok := d.Metadata[MetaAuthor]
	if !ok {
		return nil, nil
	}
	return scholarly.DecodeAuthors(raw, "metadata."+MetaAuthor)
}

// Funding decodes metadata.funding. A document without funding yields nil.
func (d *Document) Funding() ([]scholarly.Funding, error) {
	raw, ok := d.Metadata[MetaFunding]
	if !ok {
		return nil, nil
	}
	return scholarly.DecodeFundingList(raw, "metadata."+MetaFunding)
}

// WithLicense returns a copy of the document with metadata.license set.
func (d *Document) WithLicense(l *scholarly.License) (*Document, error) {
	raw, err := l.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode license: %w", err)
	}
	return d.WithMetadata(MetaLicense, raw), nil
}

// WithAuthors returns a copy of the document with metadata.author set. An
// author graph that is cyclic by reference is refused.
func (d *Document) WithAuthors(authors []*scholarly.Author) (*Document, error) {
	raw, err := scholarly.EncodeAuthors(authors)
	if err != nil {
		return nil, err
	}
	return d.WithMetadata(MetaAuthor, raw), nil
}

// WithFunding returns a copy of the document with metadata.funding set.
func (d *Document) WithFunding(funding []scholarly.Funding) (*Document, error) {
	raw, err := scholarly.EncodeFunding(funding)
	if err != nil {
		return nil, err
	}
	return d.WithMetadata(MetaFunding, raw), nil
}

// Outline returns the headings of the document in order.
func (d *Document) Outline() []OutlineEntry {
	var outline []OutlineEntry
	_ = WalkDocument(d, func(v Visit) error {
		h, ok := v.Node.(*Heading)
		if !ok {
			return nil
		}
		outline = append(outline, OutlineEntry{
			Level: h.Level,
			ID:    h.ID,
			Text:  InlinesText(h.Children),
			Path:  v.Path,
		})
		return nil
	})
	return outline
}

// OutlineEntry is one heading of a document outline.
type OutlineEntry struct {
	Level int    // heading level
	ID    string // heading id, if any
	Text  string // plain text of the heading
	Path  string // location in the document
}
