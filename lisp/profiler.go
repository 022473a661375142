// Copyright © 2024 The NeoLisp authors

package lisp

// Profiler observes form dispatch.  When a profiler is enabled the
// evaluator calls Start before dispatching a form and the returned function
// once the form has produced its result.
type Profiler interface {
	// IsEnabled returns true once Enable succeeded.
	IsEnabled() bool
	// Enable starts collecting.
	Enable() error
	// Complete ends the profiling session.
	Complete() error
	// Start marks the beginning of the dispatch of form name called at loc.
	Start(name string, loc Location) func()
}
