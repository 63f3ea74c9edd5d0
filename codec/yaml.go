package codec

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/tsawler/oxa/model"
)

// MarshalYAML returns doc as YAML. The YAML form carries exactly the JSON
// form; field order follows the canonical encoding.
func MarshalYAML(doc *model.Document) ([]byte, error) {
	data, err := Marshal(doc)
	if err != nil {
		return nil, err
	}
	out, err := yaml.JSONToYAML(data)
	if err != nil {
		return nil, fmt.Errorf("codec: to yaml: %w", err)
	}
	return out, nil
}

// UnmarshalYAML decodes a document written as YAML. The input is converted
// to JSON first and then decoded as strictly as Unmarshal.
func UnmarshalYAML(data []byte) (*model.Document, error) {
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("codec: from yaml: %w", err)
	}
	return Unmarshal(js)
}
