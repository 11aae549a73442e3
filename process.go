// process.go — the Process Object.
package procore

import "sync"

// PID identifies a process within a [GlobalContext]. Zero ([InvalidPID]) is
// never assigned to a live process.
type PID uint32

// NumXRegisters is the size of a process's general-purpose register bank.
const NumXRegisters = 16

// NativeHandler is implemented by a native ("port") handler bound to a
// process via [WithNativeHandler]. The bytecode interpreter proper is an
// external collaborator; this is the only hook this package exposes for a
// process whose body is native Go code rather than bytecode.
type NativeHandler interface {
	HandleMessage(p *Process, msg Term)
}

// Registers is a process's general-purpose register bank plus its
// continuation pointer and floating-point register bank. The floating-point
// bank is allocated lazily and freed independently during teardown, mirroring
// context_destroy's separate free of context->float_registers.
type Registers struct {
	X  [NumXRegisters]Term
	CP Term
	FR []float64
}

// TimerCanceller models scheduler_cancel_timeout: the scheduler's timer
// wheel is an external collaborator, so teardown only needs a way to cancel
// whatever timer a process may have armed.
type TimerCanceller interface {
	CancelTimer(pid PID)
}

type noopTimerCanceller struct{}

func (noopTimerCanceller) CancelTimer(PID) {}

// Process is a single isolated unit of execution: its own heap, mailbox,
// register bank, process dictionary, and table of processes watching it.
//
// A Process must only be touched by its owning goroutine without holding
// the registry's per-process lock; any other goroutine must first call
// [GlobalContext.GetProcessLock]. See the package doc for the exact rule.
type Process struct {
	mu sync.Mutex

	id          PID
	glb         *GlobalContext
	heap        Heap
	registers   Registers
	mailbox     *Mailbox
	dictionary  *Dictionary
	monitors    MonitorTable
	flags       FlagRegister
	trapExit    bool
	exitReason  Term
	groupLeader PID

	nativeHandler  NativeHandler
	platformData   any
	timerCanceller TimerCanceller
	timerArmed     bool

	minHeapWords int
	maxHeapWords int

	terminated bool
}

// NewProcess allocates a Process, registers it with glb (which assigns its
// pid), and returns it. The caller owns the returned Process until
// [Teardown] runs.
func NewProcess(glb *GlobalContext, opts ...ProcessOption) (*Process, error) {
	cfg := resolveProcessOptions(opts)

	p := &Process{
		glb:            glb,
		groupLeader:    cfg.groupLeader,
		nativeHandler:  cfg.nativeHandler,
		minHeapWords:   cfg.minHeapWords,
		maxHeapWords:   cfg.maxHeapWords,
		timerCanceller: noopTimerCanceller{},
	}
	if err := p.heap.init(cfg.minHeapWords, cfg.maxHeapWords, cfg.stackWords); err != nil {
		return nil, err
	}
	p.dictionary = newDictionary()
	p.mailbox = newMailbox(&p.flags, cfg.wakeHook)
	p.monitors = newMonitorTable()

	id := glb.registerProcess(p)
	p.id = id
	logDebug(p.id, "process", "process created")
	return p, nil
}

// ID returns the process's pid. Safe to call without holding the lock.
func (p *Process) ID() PID { return p.id }

// GroupLeader returns the process's group leader pid.
func (p *Process) GroupLeader() PID { return p.groupLeader }

// TrapExit reports whether the process currently traps exits from linked
// peers (the `process_flag(trap_exit, true)` setting).
func (p *Process) TrapExit() bool { return p.trapExit }

// SetTrapExit sets the trap_exit process flag. Caller must hold the lock.
func (p *Process) SetTrapExit(trap bool) { p.trapExit = trap }

// Heap returns the process's heap.
func (p *Process) Heap() *Heap { return &p.heap }

// Registers returns the process's register bank.
func (p *Process) Registers() *Registers { return &p.registers }

// Mailbox returns the process's mailbox.
func (p *Process) Mailbox() *Mailbox { return p.mailbox }

// Dictionary returns the process's dictionary.
func (p *Process) Dictionary() *Dictionary { return p.dictionary }

// Monitors returns the table of processes currently watching (monitoring or
// linked to) this process. Caller must hold the lock to read or mutate it.
func (p *Process) Monitors() *MonitorTable { return &p.monitors }

// Flags returns the process's atomic flag register. Safe to call without
// holding the lock; see [FlagRegister].
func (p *Process) Flags() *FlagRegister { return &p.flags }

// Terminated reports whether [Teardown] has already released this process.
func (p *Process) Terminated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.terminated
}

// ArmTimer records that the process has an outstanding timer with the given
// canceller, so [Teardown] can cancel it. Caller must hold the lock.
func (p *Process) ArmTimer(c TimerCanceller) {
	if c == nil {
		c = noopTimerCanceller{}
	}
	p.timerCanceller = c
	p.timerArmed = true
}

// DisarmTimer clears a previously armed timer without cancelling it (the
// timer already fired). Caller must hold the lock.
func (p *Process) DisarmTimer() {
	p.timerArmed = false
	p.timerCanceller = noopTimerCanceller{}
}
