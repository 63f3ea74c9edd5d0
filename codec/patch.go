package codec

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/tsawler/oxa/model"
)

// Patch applies an RFC 6902 JSON Patch to the canonical encoding of doc
// and decodes the result. doc is not modified. A patch that produces an
// invalid document fails with the decoder's schema violation.
func Patch(doc *model.Document, patch []byte) (*model.Document, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("codec: decode patch: %w", err)
	}
	data, err := Marshal(doc)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(data)
	if err != nil {
		return nil, fmt.Errorf("codec: apply patch: %w", err)
	}
	return Unmarshal(out)
}

// MergePatch applies an RFC 7386 JSON Merge Patch to doc. doc is not
// modified.
func MergePatch(doc *model.Document, patch []byte) (*model.Document, error) {
	data, err := Marshal(doc)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(data, patch)
	if err != nil {
		return nil, fmt.Errorf("codec: apply merge patch: %w", err)
	}
	return Unmarshal(out)
}

// Diff returns the merge patch that turns a into b.
func Diff(a, b *model.Document) ([]byte, error) {
	from, err := Marshal(a)
	if err != nil {
		return nil, err
	}
	to, err := Marshal(b)
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.CreateMergePatch(from, to)
	if err != nil {
		return nil, fmt.Errorf("codec: diff: %w", err)
	}
	return patch, nil
}

// Equal reports whether two documents have the same encoding, ignoring
// key order in opaque maps.
func Equal(a, b *model.Document) (bool, error) {
	x, err := Marshal(a)
	if err != nil {
		return false, err
	}
	y, err := Marshal(b)
	if err != nil {
		return false, err
	}
	return jsonpatch.Equal(x, y), nil
}
