package procore

import "fmt"

// Term is the in-memory representation of a BEAM-style value: an Atom, a
// PID, a Ref, a Tuple, a Go string (binary), or an ordinary Go number.
//
// This is a convenience representation for this package and its tests, not
// a wire format — term encoding for the interpreter/loader is an external
// collaborator and is out of scope here.
type Term = any

// Atom is an interned-by-value symbolic constant, e.g. 'normal', 'EXIT'.
type Atom string

// Tuple is an ordered, fixed-arity collection of terms.
type Tuple []Term

// Ref is a term-encoded reference, carrying the monotonic ref-ticks value
// handed out by [GlobalContext.GetRefTicks].
type Ref uint64

// Common atoms referenced throughout the signal-processing and teardown
// paths.
const (
	AtomNormal          Atom = "normal"
	AtomKilled          Atom = "killed"
	AtomExit            Atom = "EXIT"
	AtomDown            Atom = "DOWN"
	AtomTrue            Atom = "true"
	AtomFalse           Atom = "false"
	AtomBadArg          Atom = "badarg"
	AtomOutOfMemory     Atom = "out_of_memory"
	AtomPort            Atom = "port"
	AtomProcess         Atom = "process"
	AtomHeapSize        Atom = "heap_size"
	AtomStackSize       Atom = "stack_size"
	AtomMessageQueueLen Atom = "message_queue_len"
	AtomMemory          Atom = "memory"
)

// InvalidPID is the sentinel process id used for group_leader and similar
// fields before a real process is assigned.
const InvalidPID PID = 0

// isDownFor reports whether msg is a 5-tuple {'DOWN', Ref, _, _, _} whose
// reference matches refTicks.
func isDownFor(msg Term, refTicks uint64) bool {
	tup, ok := msg.(Tuple)
	if !ok || len(tup) != 5 {
		return false
	}
	if tag, ok := tup[0].(Atom); !ok || tag != AtomDown {
		return false
	}
	ref, ok := tup[1].(Ref)
	return ok && uint64(ref) == refTicks
}

// termWords estimates the storage footprint of a term in heap words, used
// only for the accounting performed by [Heap.Allocate] and
// [Mailbox.SizeBytes] — not an encoding scheme.
func termWords(t Term) int {
	switch v := t.(type) {
	case nil:
		return 1
	case Tuple:
		words := 1 // arity/tag header
		for _, e := range v {
			words += termWords(e)
		}
		return words
	case Atom, PID, Ref, bool:
		return 1
	case string:
		return 1 + (len(v)+7)/8
	default:
		return 1
	}
}

func kindAtomFor(p *Process) Atom {
	if p.nativeHandler != nil {
		return AtomPort
	}
	return AtomProcess
}

// String renders a term for logging/debugging purposes only.
func termString(t Term) string {
	return fmt.Sprintf("%v", t)
}
