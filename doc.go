// Package procore implements the process core of a small bytecode virtual
// machine modeled on the Erlang/BEAM execution model, targeted at
// resource-constrained environments.
//
// # Architecture
//
// A [Process] binds an isolated [Heap], a [Mailbox], a process
// [Dictionary], a [MonitorTable] of the watchers (monitors and links)
// registered against it, and an atomic [FlagRegister] that the interpreter
// consults at safe points. A process keeps no list of the processes it
// watches itself; each record lives on the watched process. A
// [GlobalContext] plays the role of the global registry: it assigns process
// ids, hands out monotonic ref-ticks, and gates access to each process
// behind a per-process lock ([GlobalContext.GetProcessLock]).
//
// The bytecode interpreter, the garbage collector's root-scanning/copying
// algorithm, the scheduler's run-queue and timer wheel, platform I/O
// drivers, and term wire-encoding are external collaborators, consumed only
// through the narrow interfaces this package exposes (constructor options,
// the [TimerCanceller] interface, and the wake hook).
//
// # Thread Safety
//
// [Process.ID], [Process.Flags], and reads of a process's own registers
// from its owning goroutine require no lock. Any other goroutine touching a
// process — appending to its mailbox, posting a signal, inspecting its
// monitor table, or reading/writing its platform data — must first acquire
// the process's lock via [GlobalContext.GetProcessLock].
//
// # Signal Processing
//
// When the interpreter observes [FlagTrap] or [FlagKilled] at a safe point,
// it calls [ProcessSignals], which drains the mailbox's signal channel in
// arrival order and dispatches each one: [SignalKill] terminates the
// process, [SignalProcessInfoRequest] replies with process introspection
// data, [SignalTrapAnswer] resumes a trapped call, and [SignalFlushMonitor]
// implements the selective flush/info semantics of `demonitor(Ref,
// [flush, info])`.
//
// # Teardown
//
// [Teardown] runs the strict shutdown order: remove from
// the registry, unregister any name, drain monitors/links (notifying peers
// from the dying process's own still-live heap), destroy the mailbox,
// free the floating-point register bank, destroy the heap, destroy the
// dictionary, cancel any armed timer, free platform data, and finally
// release the Process object itself.
package procore
