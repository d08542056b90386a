// Package errors provides structured, actionable error messages for rendr.
//
// Every error carries a code from a registry that maps it to a category, a
// short message and a longer explanation. Errors can point at a location
// in a source file (a fixture or a config file), in which case the
// surrounding lines are shown when formatted for a terminal.
//
// # Error Categories
//
//   - runtime: failures inside a running renderer (async loads, timeouts)
//   - protocol: malformed live-session messages
//   - config: rendr.yaml problems
//   - fixture: invalid vnode fixture files
//   - snapshot: failures writing rendered HTML
//   - cli: bad command-line input
//
// # Usage
//
//	err := errors.New("E151").
//	    WithLocation("fixtures/list.yaml", 12, 5).
//	    WithDetail("node has both tag and fragment")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E151: Invalid fixture node
//	//
//	//   fixtures/list.yaml:12:5
//	//
//	//     10 │   - tag: li
//	//     11 │     key: b
//	//   → 12 │   - tag: li
//	//        │     ^
//	//     13 │     fragment: []
//	//
//	//   node has both tag and fragment
package errors
