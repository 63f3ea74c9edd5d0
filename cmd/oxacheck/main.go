// Command oxacheck validates, formats and inspects oxa documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/tsawler/oxa"
	"github.com/tsawler/oxa/codec"
	"github.com/tsawler/oxa/format"
	"github.com/tsawler/oxa/internal/logging"
	"github.com/tsawler/oxa/model"
)

const version = "0.1.0"

// errViolations is returned by validate when the document has problems.
// main turns it into exit status 1 without printing it again.
var errViolations = errors.New("document has violations")

// Globals are the flags shared by every command.
type Globals struct {
	LogLevel  string `name:"log-level" env:"OXA_LOG_LEVEL" default:"warn" enum:"debug,info,warn,error" help:"Log level (${enum})"`
	LogFormat string `name:"log-format" env:"OXA_LOG_FORMAT" default:"auto" enum:"auto,json,text" help:"Log format (${enum})"`
	MaxDepth  int    `name:"max-depth" env:"OXA_MAX_DEPTH" default:"100" help:"Maximum nesting depth, 0 disables the check"`
	Workers   int    `env:"OXA_WORKERS" default:"1" help:"Checks to run at once"`
	NoColor   bool   `name:"no-color" help:"Disable colored output"`
}

// CLI defines the command-line interface for oxacheck.
type CLI struct {
	Globals

	Validate ValidateCmd `cmd:"" help:"Check a document and report every violation"`
	Fmt      FmtCmd      `cmd:"" help:"Rewrite a document in canonical form"`
	Patch    PatchCmd    `cmd:"" help:"Apply a JSON Patch or merge patch to a document"`
	Diff     DiffCmd     `cmd:"" help:"Print the merge patch that turns one document into another"`
	Authors  AuthorsCmd  `cmd:"" help:"List authors in display order"`
	Outline  OutlineCmd  `cmd:"" help:"Print the heading outline"`
	Tables   TablesCmd   `cmd:"" help:"Print the grid of every table"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// AfterApply sets up logging once flags are parsed.
func (c *CLI) AfterApply() error {
	return c.Globals.setup()
}

func (g *Globals) setup() error {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return err
	}
	f, err := logging.ParseFormat(g.LogFormat)
	if err != nil {
		return err
	}
	logging.Init(os.Stderr, level, f)
	if g.NoColor {
		color.NoColor = true
	}
	return nil
}

// open returns a Checker for path configured from the global flags. "-"
// reads standard input.
func (g *Globals) open(path string) (*oxa.Checker, error) {
	var c *oxa.Checker
	if path == "-" {
		data, err := io.ReadAll(io.LimitReader(os.Stdin, codec.DefaultMaxSize+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		if len(data) > codec.DefaultMaxSize {
			return nil, fmt.Errorf("stdin: exceeds the %d byte limit", codec.DefaultMaxSize)
		}
		c = oxa.FromBytes(data)
	} else {
		c = oxa.Open(path)
	}
	return c.MaxDepth(g.MaxDepth).Workers(g.Workers), nil
}

func (g *Globals) document(path string) (*model.Document, error) {
	c, err := g.open(path)
	if err != nil {
		return nil, err
	}
	return c.Document()
}

// ValidateCmd checks documents.
type ValidateCmd struct {
	Paths        []string `arg:"" help:"Documents to check, - for stdin"`
	SkipIDs      bool     `name:"skip-ids" help:"Skip the identifier uniqueness check"`
	SkipTables   bool     `help:"Skip table geometry checks"`
	SkipMetadata bool     `help:"Skip author, funding and license checks"`
	Quiet        bool     `short:"q" help:"Only set the exit status"`
}

func (c *ValidateCmd) Run(g *Globals) error {
	ctx := context.Background()
	out := io.Writer(os.Stdout)
	if c.Quiet {
		out = io.Discard
	}

	failed := false
	for _, path := range c.Paths {
		ch, err := g.open(path)
		if err != nil {
			return err
		}
		if c.SkipIDs {
			ch = ch.SkipIdentifiers()
		}
		if c.SkipTables {
			ch = ch.SkipTables()
		}
		if c.SkipMetadata {
			ch = ch.SkipMetadata()
		}

		vs, err := ch.Validate(ctx)
		if err != nil {
			failed = true
			printError(out, path, err)
			continue
		}
		if len(vs) > 0 {
			failed = true
		}
		printReport(out, path, vs)
	}
	if failed {
		return errViolations
	}
	return nil
}

// FmtCmd rewrites documents canonically.
type FmtCmd struct {
	Path   string `arg:"" help:"Document to format, - for stdin"`
	Output string `short:"o" type:"path" help:"Write to this file instead of stdout"`
	To     string `enum:"auto,json,yaml" default:"auto" help:"Output format; auto uses the output file's extension, else JSON"`
	Indent bool   `short:"i" help:"Indent JSON output"`
}

func (c *FmtCmd) Run(g *Globals) error {
	doc, err := g.document(c.Path)
	if err != nil {
		return err
	}

	f := format.JSON
	switch {
	case c.To != "auto":
		f = format.Parse(c.To)
	case c.Output != "":
		if d := format.Detect(c.Output); d != format.Unknown {
			f = d
		}
	}

	var data []byte
	switch {
	case f == format.YAML:
		data, err = codec.MarshalYAML(doc)
	case c.Indent:
		data, err = codec.MarshalIndent(doc, "", "  ")
		data = append(data, '\n')
	default:
		data, err = codec.Marshal(doc)
		data = append(data, '\n')
	}
	if err != nil {
		return err
	}
	return writeOutput(c.Output, data)
}

// PatchCmd applies a patch document.
type PatchCmd struct {
	Path   string `arg:"" help:"Document to patch, - for stdin"`
	Patch  string `arg:"" type:"existingfile" help:"RFC 6902 patch, or RFC 7396 merge patch with --merge"`
	Merge  bool   `short:"m" help:"Treat the patch as a merge patch"`
	Output string `short:"o" type:"path" help:"Write to this file instead of stdout"`
}

func (c *PatchCmd) Run(g *Globals) error {
	doc, err := g.document(c.Path)
	if err != nil {
		return err
	}
	patch, err := os.ReadFile(c.Patch)
	if err != nil {
		return fmt.Errorf("failed to read patch: %w", err)
	}

	apply := codec.Patch
	if c.Merge {
		apply = codec.MergePatch
	}
	patched, err := apply(doc, patch)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(c.Patch), err)
	}
	slog.Debug("patched document", "patch", c.Patch, "merge", c.Merge)

	data, err := codec.Marshal(patched)
	if err != nil {
		return err
	}
	return writeOutput(c.Output, append(data, '\n'))
}

// DiffCmd prints a merge patch.
type DiffCmd struct {
	From string `arg:"" help:"Original document"`
	To   string `arg:"" help:"Changed document"`
}

func (c *DiffCmd) Run(g *Globals) error {
	a, err := g.document(c.From)
	if err != nil {
		return err
	}
	b, err := g.document(c.To)
	if err != nil {
		return err
	}

	patch, err := codec.Diff(a, b)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(os.Stdout, "%s\n", patch)
	return err
}

// AuthorsCmd lists authors.
type AuthorsCmd struct {
	Path string `arg:"" help:"Document, - for stdin"`
}

func (c *AuthorsCmd) Run(g *Globals) error {
	ch, err := g.open(c.Path)
	if err != nil {
		return err
	}
	authors, err := ch.Authors()
	if err != nil {
		return err
	}
	printAuthors(os.Stdout, authors)
	return nil
}

// OutlineCmd prints headings.
type OutlineCmd struct {
	Path string `arg:"" help:"Document, - for stdin"`
}

func (c *OutlineCmd) Run(g *Globals) error {
	ch, err := g.open(c.Path)
	if err != nil {
		return err
	}
	outline, err := ch.Outline()
	if err != nil {
		return err
	}
	printOutline(os.Stdout, outline)
	return nil
}

// TablesCmd prints table grids.
type TablesCmd struct {
	Path string `arg:"" help:"Document, - for stdin"`
}

func (c *TablesCmd) Run(g *Globals) error {
	ch, err := g.open(c.Path)
	if err != nil {
		return err
	}
	layouts, err := ch.Tables()
	if err != nil {
		return err
	}
	printTables(os.Stdout, layouts)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("oxacheck %s\n", version)
	return nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("oxacheck"),
		kong.Description("Validate and inspect oxa scholarly documents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&cli.Globals)
	if errors.Is(err, errViolations) {
		os.Exit(1)
	}
	ctx.FatalIfErrorf(err)
}
