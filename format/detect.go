// Package format detects which serialization a document file uses.
package format

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported document serialization.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// JSON indicates the canonical JSON form.
	JSON
	// YAML indicates the YAML form.
	YAML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case JSON:
		return "JSON"
	case YAML:
		return "YAML"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case JSON:
		return ".json"
	case YAML:
		return ".yaml"
	default:
		return ""
	}
}

// Parse maps a format name such as "json" or "yml" to a Format.
func Parse(name string) Format {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return JSON
	case "yaml", "yml":
		return YAML
	default:
		return Unknown
	}
}

// Detect determines the format from the filename extension.
func Detect(filename string) Format {
	return Parse(filepath.Ext(filename))
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// DetectFromMagic inspects the start of a document. A JSON document is an
// object, so a leading '{' means JSON. A YAML directive, document marker,
// comment or "key:" line means YAML. Anything else is Unknown.
func DetectFromMagic(data []byte) Format {
	data = bytes.TrimPrefix(data, bom)
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return Unknown
	}

	switch {
	case data[0] == '{':
		return JSON
	case bytes.HasPrefix(data, []byte("---")), bytes.HasPrefix(data, []byte("%YAML")), data[0] == '#':
		return YAML
	}

	line, _, _ := bytes.Cut(data, []byte("\n"))
	key, _, found := bytes.Cut(line, []byte(":"))
	if found && len(key) > 0 && !bytes.ContainsAny(key, "{}[],\"") {
		return YAML
	}
	return Unknown
}

// DetectFromReader peeks at the start of r without consuming it.
func DetectFromReader(r *bufio.Reader) (Format, error) {
	peek, err := r.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return Unknown, err
	}
	return DetectFromMagic(peek), nil
}

// Resolve picks the format of a named input: the extension when it is
// known, else the content.
func Resolve(filename string, data []byte) Format {
	if f := Detect(filename); f != Unknown {
		return f
	}
	return DetectFromMagic(data)
}
