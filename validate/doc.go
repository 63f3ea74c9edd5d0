// Package validate checks a whole document.
//
// Document runs every enabled check and returns all violations in one
// list, in a fixed order: repeated identifiers, nesting depth, each table
// in document order, then the metadata graph.
//
//	vs := validate.Document(doc, validate.WithMaxDepth(64))
//	if err := vs.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// Parallel runs the same checks on a bounded pool of goroutines and merges
// the results into the same order:
//
//	vs, err := validate.Parallel(ctx, doc, validate.WithWorkers(4))
//
// The individual checks (Identifiers, Depth, Tables, Metadata) are exported
// for callers that need only one of them.
package validate
