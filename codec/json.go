package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tsawler/oxa/internal/wire"
	"github.com/tsawler/oxa/model"
)

// ErrNilDocument is returned when encoding a nil document.
var ErrNilDocument = errors.New("codec: nil document")

// DefaultMaxSize is the input size Decode accepts when no limit is given.
const DefaultMaxSize = 64 << 20

// Marshal returns the canonical JSON encoding of doc: fixed field order,
// sorted classes and map keys, no insignificant whitespace and no HTML
// escaping.
func Marshal(doc *model.Document) ([]byte, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	return wire.Marshal(doc)
}

// MarshalIndent is Marshal with indentation applied.
func MarshalIndent(doc *model.Document, prefix, indent string) ([]byte, error) {
	data, err := Marshal(doc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, fmt.Errorf("codec: indent: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a document strictly. A structural problem is returned
// as a *violation.Violation of kind SchemaViolation carrying its path.
func Unmarshal(data []byte) (*model.Document, error) {
	return model.DecodeDocument(data)
}

// Encode writes the canonical encoding of doc followed by a newline.
func Encode(w io.Writer, doc *model.Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("codec: write: %w", err)
	}
	return nil
}

// Decode reads a whole document from r. Input larger than maxSize bytes is
// refused; maxSize <= 0 means DefaultMaxSize.
func Decode(r io.Reader, maxSize int64) (*model.Document, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("codec: read: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("codec: input exceeds %d bytes", maxSize)
	}
	return Unmarshal(data)
}
