package model

// Text is a run of plain text.
type Text struct {
	Attr
	Value string
}

func (*Text) Type() NodeType        { return NodeTypeText }
func (t *Text) ScalarValue() string { return t.Value }
func (*Text) inline()               {}

// NewText creates a Text node without attributes.
func NewText(value string) *Text { return &Text{Value: value} }

// DisplayMath is math set on its own line, written as TeX source.
type DisplayMath struct {
	Attr
	Value string
}

func (*DisplayMath) Type() NodeType        { return NodeTypeDisplayMath }
func (m *DisplayMath) ScalarValue() string { return m.Value }
func (*DisplayMath) inline()               {}

// InlineMath is math within a line, written as TeX source.
type InlineMath struct {
	Attr
	Value string
}

func (*InlineMath) Type() NodeType        { return NodeTypeInlineMath }
func (m *InlineMath) ScalarValue() string { return m.Value }
func (*InlineMath) inline()               {}

// Strong is strongly emphasized text.
type Strong struct {
	Attr
	Children []Inline
}

func (*Strong) Type() NodeType      { return NodeTypeStrong }
func (s *Strong) Inlines() []Inline { return s.Children }
func (*Strong) inline()             {}

// Emphasis is emphasized text.
type Emphasis struct {
	Attr
	Children []Inline
}

func (*Emphasis) Type() NodeType      { return NodeTypeEmphasis }
func (e *Emphasis) Inlines() []Inline { return e.Children }
func (*Emphasis) inline()             {}

// Strikeout is struck-through text.
type Strikeout struct {
	Attr
	Children []Inline
}

func (*Strikeout) Type() NodeType      { return NodeTypeStrikeout }
func (s *Strikeout) Inlines() []Inline { return s.Children }
func (*Strikeout) inline()             {}

// Superscript is raised text.
type Superscript struct {
	Attr
	Children []Inline
}

func (*Superscript) Type() NodeType      { return NodeTypeSuperscript }
func (s *Superscript) Inlines() []Inline { return s.Children }
func (*Superscript) inline()             {}

// Subscript is lowered text.
type Subscript struct {
	Attr
	Children []Inline
}

func (*Subscript) Type() NodeType      { return NodeTypeSubscript }
func (s *Subscript) Inlines() []Inline { return s.Children }
func (*Subscript) inline()             {}

// SmallCaps is text in small capitals.
type SmallCaps struct {
	Attr
	Children []Inline
}

func (*SmallCaps) Type() NodeType      { return NodeTypeSmallCaps }
func (s *SmallCaps) Inlines() []Inline { return s.Children }
func (*SmallCaps) inline()             {}

// Underline is underlined text.
type Underline struct {
	Attr
	Children []Inline
}

func (*Underline) Type() NodeType      { return NodeTypeUnderline }
func (u *Underline) Inlines() []Inline { return u.Children }
func (*Underline) inline()             {}

// Span is a generic inline container, usually identified by its classes.
type Span struct {
	Attr
	Children []Inline
}

func (*Span) Type() NodeType      { return NodeTypeSpan }
func (s *Span) Inlines() []Inline { return s.Children }
func (*Span) inline()             {}

// QuoteMark is the kind of quotation mark around an InlineQuote.
type QuoteMark string

const (
	SingleQuote QuoteMark = "Single"
	DoubleQuote QuoteMark = "Double"
)

// Valid reports whether m is a known quote mark.
func (m QuoteMark) Valid() bool {
	return m == SingleQuote || m == DoubleQuote
}

// InlineQuote is quoted text.
type InlineQuote struct {
	Attr
	Mark     QuoteMark
	Children []Inline
}

func (*InlineQuote) Type() NodeType      { return NodeTypeInlineQuote }
func (q *InlineQuote) Inlines() []Inline { return q.Children }
func (*InlineQuote) inline()             {}

// Image is an image reference. Children hold the alternative text.
type Image struct {
	Attr
	URI      string
	Title    string
	Children []Inline
}

func (*Image) Type() NodeType      { return NodeTypeImage }
func (i *Image) Inlines() []Inline { return i.Children }
func (*Image) inline()             {}

// Link is a hyperlink.
type Link struct {
	Attr
	URI      string
	Title    string
	Children []Inline
}

func (*Link) Type() NodeType      { return NodeTypeLink }
func (l *Link) Inlines() []Inline { return l.Children }
func (*Link) inline()             {}

// CitationMode controls how a citation is rendered.
type CitationMode string

const (
	// AuthorInText renders the author as part of the sentence.
	AuthorInText CitationMode = "AuthorInText"
	// SuppressAuthor omits the author, e.g. for "(2020)".
	SuppressAuthor CitationMode = "SuppressAuthor"
	// NormalCitation is the default parenthetical form.
	NormalCitation CitationMode = "NormalCitation"
)

// legacySuppressAuthor is an old misspelling of SuppressAuthor. It is
// rejected on input with a message naming the canonical form.
const legacySuppressAuthor = "SupressAuthor"

// Valid reports whether m is one of the three citation modes.
func (m CitationMode) Valid() bool {
	switch m {
	case AuthorInText, SuppressAuthor, NormalCitation:
		return true
	}
	return false
}

// Citation is one entry of a Cite. Its id names the cited target, so many
// citations may share one id, and it may equal the id of the node it cites.
type Citation struct {
	Attr
	Mode   CitationMode
	Prefix []Inline
	Suffix []Inline
}

func (*Citation) Type() NodeType { return NodeTypeCitation }

// Cite groups citations with the inline content that displays them.
type Cite struct {
	Attr
	Citations []*Citation
	Children  []Inline
}

func (*Cite) Type() NodeType      { return NodeTypeCite }
func (c *Cite) Inlines() []Inline { return c.Children }
func (*Cite) inline()             {}

// InlinePanel is an inline figure-like container of some Kind.
type InlinePanel struct {
	Attr
	Kind     string
	Caption  *Caption // optional
	Children []Inline
}

func (*InlinePanel) Type() NodeType        { return NodeTypeInlinePanel }
func (p *InlinePanel) Inlines() []Inline   { return p.Children }
func (p *InlinePanel) CaptionOf() *Caption { return p.Caption }
func (*InlinePanel) inline()               {}

// Caption describes a panel or table. Both parts are optional.
type Caption struct {
	Short []Inline // for lists of figures and tables
	Long  []Block
}

// IsZero reports whether the caption has neither part.
func (c *Caption) IsZero() bool {
	return c == nil || (c.Short == nil && c.Long == nil)
}
