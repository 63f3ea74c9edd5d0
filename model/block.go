package model

// Paragraph is a paragraph of inline content.
type Paragraph struct {
	Attr
	Children []Inline
}

func (*Paragraph) Type() NodeType      { return NodeTypeParagraph }
func (p *Paragraph) Inlines() []Inline { return p.Children }
func (*Paragraph) block()              {}

// NewParagraph creates a paragraph without attributes.
func NewParagraph(children ...Inline) *Paragraph {
	return &Paragraph{Children: children}
}

// Plain is inline content without paragraph semantics, e.g. in a tight
// table cell.
type Plain struct {
	Attr
	Children []Inline
}

func (*Plain) Type() NodeType      { return NodeTypePlain }
func (p *Plain) Inlines() []Inline { return p.Children }
func (*Plain) block()              {}

// Heading is a heading. Level is used for relative nesting and is not
// checked against the levels of enclosing headings.
type Heading struct {
	Attr
	Level    int
	Children []Inline
}

func (*Heading) Type() NodeType      { return NodeTypeHeading }
func (h *Heading) Inlines() []Inline { return h.Children }
func (*Heading) block()              {}

// CodeBlock is a block of literal code.
type CodeBlock struct {
	Attr
	Value string
}

func (*CodeBlock) Type() NodeType        { return NodeTypeCodeBlock }
func (c *CodeBlock) ScalarValue() string { return c.Value }
func (*CodeBlock) block()                {}

// Section is a document section.
type Section struct {
	Attr
	Children []Block
}

func (*Section) Type() NodeType    { return NodeTypeSection }
func (s *Section) Blocks() []Block { return s.Children }
func (*Section) block()            {}

func (s *Section) withBlocks(children []Block) Block {
	cp := *s
	cp.Children = children
	return &cp
}

// Div is a generic block container.
type Div struct {
	Attr
	Children []Block
}

func (*Div) Type() NodeType    { return NodeTypeDiv }
func (d *Div) Blocks() []Block { return d.Children }
func (*Div) block()            {}

func (d *Div) withBlocks(children []Block) Block {
	cp := *d
	cp.Children = children
	return &cp
}

// BlockQuote is a quotation set off from the text.
type BlockQuote struct {
	Attr
	Children []Block
}

func (*BlockQuote) Type() NodeType    { return NodeTypeBlockQuote }
func (q *BlockQuote) Blocks() []Block { return q.Children }
func (*BlockQuote) block()            {}

func (q *BlockQuote) withBlocks(children []Block) Block {
	cp := *q
	cp.Children = children
	return &cp
}

// BlockPanel is a figure-like block container of some Kind, e.g. "figure"
// or "listing".
type BlockPanel struct {
	Attr
	Kind     string
	Caption  *Caption // optional
	Children []Block
}

func (*BlockPanel) Type() NodeType        { return NodeTypeBlockPanel }
func (p *BlockPanel) Blocks() []Block     { return p.Children }
func (p *BlockPanel) CaptionOf() *Caption { return p.Caption }
func (*BlockPanel) block()                {}

func (p *BlockPanel) withBlocks(children []Block) Block {
	cp := *p
	cp.Children = children
	return &cp
}

// blockRebuilder is a block container that can be copied with new
// children.
type blockRebuilder interface {
	BlockContainer
	withBlocks(children []Block) Block
}
