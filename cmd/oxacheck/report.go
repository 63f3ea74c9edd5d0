package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/tsawler/oxa"
	"github.com/tsawler/oxa/model"
	"github.com/tsawler/oxa/scholarly"
	"github.com/tsawler/oxa/violation"
)

var (
	okColor    = color.New(color.FgGreen).SprintFunc()
	errColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	kindColor  = color.New(color.FgYellow).SprintFunc()
	pathColor  = color.New(color.FgCyan).SprintFunc()
	faintColor = color.New(color.Faint).SprintFunc()
)

// printReport writes the violations found in one document.
func printReport(w io.Writer, name string, vs violation.List) {
	if len(vs) == 0 {
		fmt.Fprintf(w, "%s: %s\n", name, okColor("ok"))
		return
	}
	noun := "violations"
	if len(vs) == 1 {
		noun = "violation"
	}
	fmt.Fprintf(w, "%s: %s\n", name, errColor(fmt.Sprintf("%d %s", len(vs), noun)))
	for _, v := range vs {
		kind := v.Kind.String()
		if v.Reason != violation.NoReason {
			kind += "(" + v.Reason.String() + ")"
		}
		path := v.Path
		if path == "" {
			path = "<root>"
		}
		fmt.Fprintf(w, "  %s %s", kindColor(kind), pathColor(path))
		if v.Message != "" {
			fmt.Fprintf(w, ": %s", v.Message)
		}
		if len(v.Cycle) > 0 {
			fmt.Fprintf(w, " %s", faintColor("["+strings.Join(v.Cycle, " -> ")+"]"))
		}
		fmt.Fprintln(w)
	}
}

// printError writes a load or decode failure.
func printError(w io.Writer, name string, err error) {
	fmt.Fprintf(w, "%s: %s %v\n", name, errColor("error"), err)
}

func printAuthors(w io.Writer, authors []*scholarly.Author) {
	for i, a := range authors {
		var name string
		switch {
		case a.Person() != nil:
			name = a.Person().DisplayName()
		case a.Organization() != nil:
			name = a.Organization().Name
		}
		if name == "" {
			name = faintColor("(unnamed)")
		}

		var roles []string
		for _, r := range a.ContributorRoles {
			if r.Property != nil {
				roles = append(roles, r.Property.PropertyID)
				continue
			}
			roles = append(roles, string(r.CRediT))
		}
		fmt.Fprintf(w, "%d. %s", i+1, name)
		if len(roles) > 0 {
			fmt.Fprintf(w, " %s", faintColor("("+strings.Join(roles, ", ")+")"))
		}
		fmt.Fprintln(w)
	}
}

func printOutline(w io.Writer, outline []model.OutlineEntry) {
	for _, e := range outline {
		indent := e.Level - 1
		if indent < 0 {
			indent = 0
		}
		fmt.Fprintf(w, "%s%s", strings.Repeat("  ", indent), e.Text)
		if e.ID != "" {
			fmt.Fprintf(w, " %s", faintColor("#"+e.ID))
		}
		fmt.Fprintln(w)
	}
}

func printTables(w io.Writer, layouts []oxa.TableLayout) {
	for _, l := range layouts {
		fmt.Fprintf(w, "%s: %d columns, %d rows\n", pathColor(l.Path), l.Table.ColCount(), l.Table.RowCount())
		for _, p := range l.Cells {
			fmt.Fprintf(w, "  %s row %d col %d", p.Group, p.Row, p.Column)
			if p.RowSpan > 1 || p.ColSpan > 1 {
				fmt.Fprintf(w, " span %dx%d", p.RowSpan, p.ColSpan)
			}
			if text := strings.TrimSpace(model.BlocksText(p.Cell.Children)); text != "" {
				fmt.Fprintf(w, " %q", text)
			}
			fmt.Fprintln(w)
		}
		for _, v := range l.Violations {
			fmt.Fprintf(w, "  %s %v\n", errColor("!"), v)
		}
	}
}
