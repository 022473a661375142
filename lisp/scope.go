// Copyright © 2024 The NeoLisp authors

package lisp

import (
	"fmt"
	"sort"
)

// Mode controls how the result of a macro call is used.
type Mode uint8

// Possible Mode values.
const (
	// ModeInherited defers to the mode of the level below.
	ModeInherited Mode = iota
	// ModeEvaluate is regular evaluation.  Macro results are evaluated.
	ModeEvaluate
	// ModeCodeExpansion is active while a macro body builds its expansion.
	// Macro results are evaluated.
	ModeCodeExpansion
	// ModeDataExpansion returns macro results as data, unevaluated.
	ModeDataExpansion
)

var modeStrings = []string{
	ModeInherited:     "inherited",
	ModeEvaluate:      "evaluate",
	ModeCodeExpansion: "code-expansion",
	ModeDataExpansion: "data-expansion",
}

func (m Mode) String() string {
	if int(m) >= len(modeStrings) {
		return "invalid"
	}
	return modeStrings[m]
}

type loopInfo struct {
	breakCalled bool
	boundary    bool
}

type scopeLevel struct {
	bindings map[string]*Binding
	loop     *loopInfo
	call     bool
	mode     Mode
}

func newLevel(mode Mode) *scopeLevel {
	return &scopeLevel{bindings: make(map[string]*Binding), mode: mode}
}

// Scope is the stack of binding levels active during evaluation.  Names are
// resolved against the whole stack, innermost level first, at the time they
// are evaluated.  A Scope must not be shared between goroutines.
type Scope struct {
	Runtime *Runtime
	levels  []*scopeLevel
}

// NewScope returns a scope holding a single global level in evaluation mode.
// The scope has no forms registered; see InitializeScope.
func NewScope() *Scope {
	return &Scope{
		Runtime: StandardRuntime(),
		levels:  []*scopeLevel{newLevel(ModeEvaluate)},
	}
}

// Depth returns the number of levels on the stack.
func (s *Scope) Depth() int {
	return len(s.levels)
}

func (s *Scope) top() *scopeLevel {
	if len(s.levels) == 0 {
		panic("empty scope stack")
	}
	return s.levels[len(s.levels)-1]
}

// HasBinding returns true if name is bound in any level.
func (s *Scope) HasBinding(name string) bool {
	return s.GetBinding(name) != nil
}

// GetBinding returns the binding of name in the innermost level defining it,
// or nil.  The returned binding may be modified in place.
func (s *Scope) GetBinding(name string) *Binding {
	if len(s.levels) == 0 {
		panic("empty scope stack")
	}
	for i := len(s.levels) - 1; i >= 0; i-- {
		if b, ok := s.levels[i].bindings[name]; ok {
			return b
		}
	}
	return nil
}

// Insert binds name in the innermost level, shadowing any outer binding.
func (s *Scope) Insert(name string, b *Binding) *Scope {
	s.top().bindings[name] = b
	return s
}

// Set replaces the binding of name in the innermost level defining it.  When
// name is unbound it is inserted into the innermost level.
func (s *Scope) Set(name string, b *Binding) *Scope {
	if len(s.levels) == 0 {
		panic("empty scope stack")
	}
	for i := len(s.levels) - 1; i >= 0; i-- {
		if _, ok := s.levels[i].bindings[name]; ok {
			s.levels[i].bindings[name] = b
			return s
		}
	}
	return s.Insert(name, b)
}

// RegisterSpecialForm binds a special form in the innermost level.
func (s *Scope) RegisterSpecialForm(name string, fn SpecialFunc) *Scope {
	return s.Insert(name, SpecialForm(fn))
}

// RegisterEvalForm binds an eval form in the innermost level.
func (s *Scope) RegisterEvalForm(name string, fn EvalFunc) *Scope {
	return s.Insert(name, EvalForm(fn))
}

// Enter pushes a plain level.
func (s *Scope) Enter() *Scope {
	return s.push(newLevel(ModeInherited))
}

// EnterMode pushes a plain level with the given mode.
func (s *Scope) EnterMode(mode Mode) *Scope {
	return s.push(newLevel(mode))
}

// EnterLoop pushes a level marked as an active loop.
func (s *Scope) EnterLoop() *Scope {
	lvl := newLevel(ModeInherited)
	lvl.loop = &loopInfo{}
	return s.push(lvl)
}

// EnterLoopBoundary pushes a level marked as a loop boundary.  Loop queries
// stop at a boundary, so break cannot reach a loop below it.
func (s *Scope) EnterLoopBoundary() *Scope {
	lvl := newLevel(ModeInherited)
	lvl.loop = &loopInfo{boundary: true}
	return s.push(lvl)
}

// enterCall pushes the boundary level of a form call.
func (s *Scope) enterCall(mode Mode) *Scope {
	lvl := newLevel(mode)
	lvl.loop = &loopInfo{boundary: true}
	lvl.call = true
	return s.push(lvl)
}

func (s *Scope) push(lvl *scopeLevel) *Scope {
	s.levels = append(s.levels, lvl)
	return s
}

// Leave pops the innermost level and its bindings.
func (s *Scope) Leave() *Scope {
	if len(s.levels) == 0 {
		panic("empty scope stack")
	}
	s.levels[len(s.levels)-1] = nil
	s.levels = s.levels[:len(s.levels)-1]
	return s
}

// nearestLoop returns the loop marker closest to the top of the stack.
func (s *Scope) nearestLoop() *loopInfo {
	if len(s.levels) == 0 {
		panic("empty scope stack")
	}
	for i := len(s.levels) - 1; i >= 0; i-- {
		if s.levels[i].loop != nil {
			return s.levels[i].loop
		}
	}
	return nil
}

// IsInLoop returns true when the nearest loop marker is an active loop and
// not a boundary.
func (s *Scope) IsInLoop() bool {
	loop := s.nearestLoop()
	return loop != nil && !loop.boundary
}

// IsLoopBroken returns true when break was called on the nearest active
// loop.
func (s *Scope) IsLoopBroken() bool {
	loop := s.nearestLoop()
	return loop != nil && !loop.boundary && loop.breakCalled
}

// BreakLoop marks the nearest loop as broken.  Nothing happens when the
// nearest marker is a boundary.
func (s *Scope) BreakLoop() {
	loop := s.nearestLoop()
	if loop != nil && !loop.boundary {
		loop.breakCalled = true
	}
}

// IsInCall returns true while the body of a user defined form is evaluated.
func (s *Scope) IsInCall() bool {
	if len(s.levels) == 0 {
		panic("empty scope stack")
	}
	for i := len(s.levels) - 1; i >= 0; i-- {
		if s.levels[i].call {
			return true
		}
	}
	return false
}

// Mode returns the mode of the innermost level not inheriting its mode.
func (s *Scope) Mode() Mode {
	if len(s.levels) == 0 {
		panic("empty scope stack")
	}
	for i := len(s.levels) - 1; i >= 0; i-- {
		if s.levels[i].mode != ModeInherited {
			return s.levels[i].mode
		}
	}
	panic(fmt.Sprintf("no scope level defines a mode (depth %d)", len(s.levels)))
}

// Names returns the sorted names visible from the top of the stack.
func (s *Scope) Names() []string {
	seen := make(map[string]bool)
	for _, lvl := range s.levels {
		for name := range lvl.bindings {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
