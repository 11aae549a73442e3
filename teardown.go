// teardown.go — Teardown: the strict ten-step shutdown
// order, grounded on context_destroy and context_monitors_handle_terminate
// in the original source. Removal from the registry happens first so no new
// signal or lookup can reach the process while it is being unwound; the
// Process object itself is only marked released last.
package procore

// Abort is invoked on a fatal, unrecoverable teardown invariant violation —
// by default it panics, mirroring a "log, then terminate" style of
// handling unrecoverable poll errors. A
// host embedding this package may replace it to fail more gracefully.
var Abort = func(reason string) {
	panic("procore: " + reason)
}

// Teardown runs the ten-step shutdown sequence for p, reporting reason to
// every linked or monitoring watcher.
//
//  1. remove p from the registry's process table
//  2. unregister any name bound to p
//  3. drain p's watcher table, notifying each peer
//  4. destroy the mailbox
//  5. free the floating-point register bank
//  6. destroy the heap
//  7. destroy the process dictionary
//  8. cancel any armed timer
//  9. free platform data
//  10. release the Process object
func Teardown(glb *GlobalContext, p *Process, reason Term) {
	p.mu.Lock()
	if p.terminated {
		p.mu.Unlock()
		Abort("teardown called on an already-terminated process")
		return
	}

	glb.RemoveProcess(p.id)     // 1
	glb.unregisterNameFor(p.id) // 2

	p.exitReason = reason
	watchers := p.monitors.Drain()
	kind := kindAtomFor(p)
	deadPID := p.id
	p.mu.Unlock()

	for _, w := range watchers { // 3
		notifyWatcher(glb, deadPID, kind, reason, w)
	}

	p.mu.Lock()
	p.mailbox.Destroy()    // 4
	p.registers.FR = nil   // 5
	p.heap.Destroy()       // 6
	p.dictionary.Destroy() // 7
	if p.timerArmed {      // 8
		p.timerCanceller.CancelTimer(p.id)
		p.timerArmed = false
	}
	p.platformData = nil // 9
	p.terminated = true  // 10
	p.mu.Unlock()

	logDebug(deadPID, "teardown", "process released, reason="+termString(reason))
}

// notifyWatcher delivers the appropriate exit notification to one watcher
// of a terminating process. A normal-reason exit never propagates to a
// linked peer, trapping or not; an abnormal exit delivers an 'EXIT' message
// to a trapping peer and a Kill signal to a non-trapping one. A plain
// monitor always gets a 'DOWN' message, regardless of reason.
func notifyWatcher(glb *GlobalContext, deadPID PID, kind Atom, reason Term, w monitorEntry) {
	if w.WatcherPID == deadPID {
		return
	}
	target, unlock, ok := glb.GetProcessLock(w.WatcherPID)
	if !ok {
		return
	}
	defer unlock()

	if w.Linked {
		target.monitors.RemoveLink(deadPID)
		if reason == AtomNormal {
			return
		}
		if target.TrapExit() {
			target.mailbox.Send(Tuple{AtomExit, deadPID, reason})
		} else {
			target.mailbox.SendSignal(Signal{Kind: SignalKill, Reason: reason})
		}
		return
	}

	target.mailbox.Send(Tuple{AtomDown, Ref(w.RefTicks), kind, deadPID, reason})
}
