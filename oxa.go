// Package oxa provides a fluent API for loading, checking and querying
// structured scholarly documents.
//
// Basic usage:
//
//	vs, err := oxa.Open("paper.json").Validate(ctx)
//	if err != nil {
//	    // the file could not be read or decoded
//	}
//	for _, v := range vs {
//	    fmt.Println(v)
//	}
//
// With options:
//
//	vs, err := oxa.Open("paper.yaml").
//	    MaxDepth(64).
//	    Workers(4).
//	    SkipMetadata().
//	    Validate(ctx)
//
// The lower-level model, validate and codec packages are also available.
package oxa

import (
	"errors"

	"github.com/tsawler/oxa/model"
)

// Open returns a Checker for a document file. The format is taken from the
// extension, or from the content when the extension is not recognized.
// Nothing is read until a terminal operation runs.
//
// Example:
//
//	doc, err := oxa.Open("paper.json").Document()
func Open(filename string) *Checker {
	return &Checker{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes returns a Checker for an encoded document. The format is
// detected from the content; use Format to force one.
//
// Example:
//
//	outline, err := oxa.FromBytes(data).Outline()
func FromBytes(data []byte) *Checker {
	return &Checker{
		data:     append([]byte(nil), data...),
		inMemory: true,
		options:  defaultOptions(),
	}
}

// FromDocument returns a Checker for a document already in memory. The
// document is never modified.
//
// Example:
//
//	vs, err := oxa.FromDocument(doc).SkipTables().Validate(ctx)
func FromDocument(doc *model.Document) *Checker {
	c := &Checker{
		doc:     doc,
		options: defaultOptions(),
	}
	if doc == nil {
		c.err = errors.New("nil document")
	}
	return c
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := oxa.Must(oxa.Open("paper.json").Document())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
