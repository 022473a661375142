// Copyright © 2024 The NeoLisp authors

package profiler

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/neolisp/nl/lisp"
)

// errWriter captures the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

// callgrindProfiler writes Callgrind profiles, which can be opened in
// KCacheGrind or QCacheGrind.  Costs are wall time in nanoseconds and bytes
// allocated.
type callgrindProfiler struct {
	profiler
	sync.Mutex
	writer     io.WriteCloser
	writeErr   error
	startTime  time.Time
	refs       map[string]int
	refCounter int
	current    *callRef
}

var _ lisp.Profiler = &callgrindProfiler{}

// NewCallgrindProfiler returns a profiler of the forms dispatched in s.  An
// output must be set with SetFile or SetWriter before it is enabled.
func NewCallgrindProfiler(s *lisp.Scope, opts ...Option) *callgrindProfiler {
	p := &callgrindProfiler{profiler: profiler{scope: s}}
	p.applyConfigs(opts...)
	return p
}

// callRef is one dispatch of a form.  Its cost is inclusive of the calls it
// made, which are recorded as children.
type callRef struct {
	prev     *callRef
	children []*callRef
	name     string
	file     string
	line     int

	start    time.Time
	duration time.Duration
	allocAt  uint64
	alloc    uint64
}

func totalAlloc() uint64 {
	ms := &runtime.MemStats{}
	runtime.ReadMemStats(ms)
	return ms.TotalAlloc
}

// finish stops the clocks of ref.  Durations are at least 1ns so that every
// call shows up in viewers.
func (ref *callRef) finish() {
	ref.duration = time.Since(ref.start)
	if ref.duration <= 0 {
		ref.duration = 1
	}
	ref.alloc = totalAlloc() - ref.allocAt
}

func (p *callgrindProfiler) Enable() error {
	p.Lock()
	if p.writer == nil {
		p.Unlock()
		return errors.New("no output set in profiler")
	}
	w := &errWriter{w: p.writer}
	w.printf("version: 1\ncreator: neolisp %s (Go %s)\n", lisp.Version, runtime.Version())
	w.print("cmd: Eval\npart: 1\npositions: line\n\n")
	w.print("events: Time_(ns) Memory_(bytes)\n\n")
	if w.err != nil {
		p.Unlock()
		return w.err
	}
	p.current = nil
	p.startTime = time.Now()
	p.refs = make(map[string]int)
	p.refCounter = 0
	p.Unlock()
	p.pushCallRef("ENTRYPOINT", nil)
	p.scope.Runtime.Profiler = p
	return p.profiler.Enable()
}

// SetFile creates filename and writes the profile to it.
func (p *callgrindProfiler) SetFile(filename string) error {
	if p.IsEnabled() {
		return errors.New("profiler already enabled")
	}
	f, err := os.Create(filename) //#nosec G304
	if err != nil {
		return err
	}
	if err := p.SetWriter(f); err != nil {
		f.Close() //nolint:errcheck,gosec // already failing
		return err
	}
	return nil
}

// SetWriter writes the profile to w, which is closed by Complete.
func (p *callgrindProfiler) SetWriter(w io.WriteCloser) error {
	p.Lock()
	defer p.Unlock()
	if p.enabled {
		return errors.New("profiler already enabled")
	}
	p.writer = w
	return nil
}

func (p *callgrindProfiler) Complete() error {
	p.Lock()
	defer p.Unlock()
	ref := p.popCallRef()
	p.enabled = false
	if p.writeErr != nil {
		return p.writeErr
	}
	ref.finish()
	w := &errWriter{w: p.writer}
	p.writeRecord(w, ref)
	w.printf("summary %d %d\n\n", time.Since(p.startTime).Nanoseconds(), totalAlloc())
	if w.err != nil {
		return w.err
	}
	return p.writer.Close()
}

// writeRecord writes the cost block of ref followed by one call block per
// child.
func (p *callgrindProfiler) writeRecord(w *errWriter, ref *callRef) {
	w.printf("fl=%s\n", p.getRef(ref.file))
	w.printf("fn=%s\n", p.getRef(ref.name))
	w.printf("%d %d %d\n", ref.line, ref.duration, ref.alloc)
	for _, child := range ref.children {
		w.printf("cfl=%s\n", p.getRef(child.file))
		w.printf("cfn=%s\n", p.getRef(child.name))
		w.print("calls=1 0 0\n")
		w.printf("%d %d %d\n", child.line, child.duration, child.alloc)
	}
	w.print("\n")
}

// getRef compresses repeated names: the first use defines "(n) name", later
// uses refer to "(n)".
func (p *callgrindProfiler) getRef(name string) string {
	if ref, ok := p.refs[name]; ok {
		return fmt.Sprintf("(%d)", ref)
	}
	p.refCounter++
	p.refs[name] = p.refCounter
	return fmt.Sprintf("(%d) %s", p.refCounter, name)
}

func (p *callgrindProfiler) Start(name string, loc lisp.Location) func() {
	if p.skipTrace(name) {
		return func() {}
	}
	prettyLabel, _ := p.prettyFunName(name)
	pos := getSourceLoc(loc)
	p.Lock()
	p.pushCallRef(prettyLabel, pos)
	p.Unlock()
	return p.end
}

// pushCallRef records the entry into name.  The caller holds the lock, except
// during Enable.
func (p *callgrindProfiler) pushCallRef(name string, pos *sourcePosition) *callRef {
	ref := &callRef{name: name, file: "-", prev: p.current}
	if pos != nil {
		ref.file = pos.file
		ref.line = pos.line
	}
	if p.current != nil {
		p.current.children = append(p.current.children, ref)
	}
	ref.allocAt = totalAlloc()
	ref.start = time.Now()
	p.current = ref
	return ref
}

func (p *callgrindProfiler) popCallRef() *callRef {
	ref := p.current
	if ref == nil {
		panic("callgrind profiler: unbalanced call stack")
	}
	p.current = ref.prev
	return ref
}

// end closes the innermost call and writes its record.  Records are written
// when calls return so memory stays bounded by the depth of the stack.
func (p *callgrindProfiler) end() {
	if !p.IsEnabled() {
		return
	}
	p.Lock()
	defer p.Unlock()
	ref := p.popCallRef()
	if p.writeErr != nil {
		return
	}
	ref.finish()
	w := &errWriter{w: p.writer}
	p.writeRecord(w, ref)
	ref.children = nil
	p.writeErr = w.err
}
