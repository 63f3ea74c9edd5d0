package format

import (
	"bufio"
	"io"
	"strings"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{JSON, "JSON"},
		{YAML, "YAML"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{JSON, ".json"},
		{YAML, ".yaml"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"document.json", JSON},
		{"document.JSON", JSON},
		{"document.oxa.json", JSON},
		{"document.yaml", YAML},
		{"document.YML", YAML},
		{"document.yml", YAML},
		{"document.txt", Unknown},
		{"document", Unknown},
		{"", Unknown},
		{"/path/to/file.json", JSON},
		{"/path/to/file.yaml", YAML},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Format
	}{
		{"JSON object", `{"metadata":{}}`, JSON},
		{"JSON with leading whitespace", "\n\t  {", JSON},
		{"JSON with BOM", "\xEF\xBB\xBF{}", JSON},
		{"JSON array", `[1, 2]`, Unknown},
		{"YAML document marker", "---\nmetadata: {}", YAML},
		{"YAML directive", "%YAML 1.2\n---", YAML},
		{"YAML comment", "# generated\nmetadata: {}", YAML},
		{"YAML key", "metadata: {}\ntitle: []", YAML},
		{"YAML key without value", "children:\n  - type: Plain", YAML},
		{"quoted key", `"metadata": {}`, Unknown},
		{"plain text", "hello world", Unknown},
		{"empty", "", Unknown},
		{"whitespace only", "   \n ", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic([]byte(tt.data)); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader_DoesNotConsume(t *testing.T) {
	input := "metadata: {}\ntitle: []\nchildren: []\n"
	r := bufio.NewReader(strings.NewReader(input))

	f, err := DetectFromReader(r)
	if err != nil {
		t.Fatalf("DetectFromReader() error: %v", err)
	}
	if f != YAML {
		t.Errorf("DetectFromReader() = %v, want YAML", f)
	}

	rest, _ := io.ReadAll(r)
	if string(rest) != input {
		t.Errorf("reader consumed input, left %q", rest)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		filename string
		data     string
		want     Format
	}{
		{"doc.yaml", `{"metadata":{}}`, YAML},
		{"doc.json", "metadata: {}", JSON},
		{"-", `{"metadata":{}}`, JSON},
		{"doc", "metadata: {}", YAML},
		{"doc.txt", "???", Unknown},
	}

	for _, tt := range tests {
		if got := Resolve(tt.filename, []byte(tt.data)); got != tt.want {
			t.Errorf("Resolve(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}
