// options.go — functional options for Process construction, modeled on the
// teacher's options.go (LoopOption/loopOptionImpl/resolveLoopOptions).
package procore

// ProcessOption configures a [Process] at construction time.
type ProcessOption interface {
	apply(*processConfig)
}

type processConfig struct {
	stackWords    int
	minHeapWords  int
	maxHeapWords  int
	nativeHandler NativeHandler
	groupLeader   PID
	wakeHook      func()
}

type processOptionFunc func(*processConfig)

func (f processOptionFunc) apply(cfg *processConfig) { f(cfg) }

// WithStackWords sets the minimum arena size, in words, needed for the stack
// co-located at the top of the process heap arena: the arena starts at the
// larger of this and the minimum heap size. The stack itself starts empty.
func WithStackWords(words int) ProcessOption {
	return processOptionFunc(func(cfg *processConfig) { cfg.stackWords = words })
}

// WithMinHeapWords sets the initial heap allocation size, in words.
func WithMinHeapWords(words int) ProcessOption {
	return processOptionFunc(func(cfg *processConfig) { cfg.minHeapWords = words })
}

// WithMaxHeapWords caps heap growth; [Heap.EnsureFree] returns
// [ErrOutOfMemory] once the arena would have to exceed this bound. Zero
// means unbounded.
func WithMaxHeapWords(words int) ProcessOption {
	return processOptionFunc(func(cfg *processConfig) { cfg.maxHeapWords = words })
}

// WithNativeHandler marks the process as a native handler ("port"): the
// 'DOWN' messages [Teardown] sends to its monitors tag its kind as
// [AtomPort] rather than [AtomProcess].
func WithNativeHandler(handler NativeHandler) ProcessOption {
	return processOptionFunc(func(cfg *processConfig) { cfg.nativeHandler = handler })
}

// WithGroupLeader sets the process's group leader pid, inherited by spawned
// children in a full VM; this package only stores and reports it.
func WithGroupLeader(pid PID) ProcessOption {
	return processOptionFunc(func(cfg *processConfig) { cfg.groupLeader = pid })
}

// WithWakeHook installs the callback invoked whenever a signal or message is
// queued, so an external scheduler can unpark the owning goroutine. The
// scheduler's run-queue itself is an external collaborator;
// this hook is the entire surface this package needs from it.
func WithWakeHook(hook func()) ProcessOption {
	return processOptionFunc(func(cfg *processConfig) { cfg.wakeHook = hook })
}

const (
	defaultStackWords   = 256
	defaultMinHeapWords = 1024
	defaultMaxHeapWords = 0 // unbounded
)

func resolveProcessOptions(opts []ProcessOption) processConfig {
	cfg := processConfig{
		stackWords:   defaultStackWords,
		minHeapWords: defaultMinHeapWords,
		maxHeapWords: defaultMaxHeapWords,
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}
	return cfg
}
