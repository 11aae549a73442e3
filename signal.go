// signal.go — Signal Processing: the dispatch loop the
// interpreter runs when it observes [FlagTrap] or [FlagKilled] at a safe
// point. Grounds on context_process_kill_signal,
// context_process_process_info_request_signal,
// context_process_signal_trap_answer, and
// context_process_flush_monitor_signal in the original source, generalized
// to Go's explicit-error idiom in place of C's out-parameters.
package procore

// SignalKind identifies the kind of a queued [Signal].
type SignalKind int

const (
	// SignalKill terminates the receiving process unconditionally.
	SignalKill SignalKind = iota
	// SignalProcessInfoRequest asks the receiver to compute information
	// about itself and reply to the sender.
	SignalProcessInfoRequest
	// SignalTrapAnswer resumes a process that issued a trapping builtin
	// call, delivering the call's result (or error) into its registers.
	SignalTrapAnswer
	// SignalFlushMonitor implements demonitor(Ref, [flush, info]):
	// removing every pending 'DOWN' message for Ref from the mailbox and
	// setting x[0] to false if one was removed and FlushInfo is set, true
	// otherwise.
	SignalFlushMonitor
)

// Signal is a unit of cross-process control flow, distinct from an ordinary
// user message: signals are always drained before the mailbox's user
// messages become visible to receive.
type Signal struct {
	Kind SignalKind

	// Kill fields.
	Reason Term

	// ProcessInfoRequest fields.
	SenderPID PID
	InfoKey   Atom

	// TrapAnswer fields.
	AnswerValue Term
	AnswerErr   error

	// FlushMonitor fields.
	RefTicks   uint64
	FlushInfo  bool
	MonitorRef Ref
}

// ProcessSignals drains p's signal channel in arrival order and dispatches
// each one, returning true if the process was killed (and so must not be
// scheduled again; the caller should run [Teardown]).
//
// Caller must hold p's lock for the duration of this call.
func ProcessSignals(p *Process, glb *GlobalContext) bool {
	killed := false
	for {
		sig, ok := p.mailbox.nextSignal()
		if !ok {
			break
		}
		if dispatchSignal(p, glb, sig) {
			killed = true
			break
		}
	}
	if killed {
		p.flags.Set(FlagKilled)
	}
	p.flags.Clear(FlagTrap)
	return killed
}

// dispatchSignal handles a single signal. It returns true if the signal
// terminates the process.
func dispatchSignal(p *Process, glb *GlobalContext, sig Signal) bool {
	switch sig.Kind {
	case SignalKill:
		p.exitReason = sig.Reason
		logDebug(p.id, "signal", "kill signal processed, reason="+termString(sig.Reason))
		return true

	case SignalProcessInfoRequest:
		handleProcessInfoRequest(p, glb, sig)
		return false

	case SignalTrapAnswer:
		handleTrapAnswer(p, sig)
		return false

	case SignalFlushMonitor:
		handleFlushMonitor(p, sig)
		return false

	default:
		logError(p.id, "signal", "unknown signal kind", ErrBadArg)
		return false
	}
}

// handleProcessInfoRequest computes process_info(self(), Key) about the
// receiver and replies to the sender, mirroring
// context_process_process_info_request_signal's direction exactly: the
// *receiver* of the signal computes information about *itself*.
func handleProcessInfoRequest(p *Process, glb *GlobalContext, sig Signal) {
	value, err := GetProcessInfo(p, sig.InfoKey)
	var reply Term
	if err != nil {
		reply = Tuple{sig.InfoKey, AtomBadArg}
	} else {
		reply = Tuple{sig.InfoKey, value}
	}
	deliverMessage(glb, sig.SenderPID, reply)
}

// handleTrapAnswer resumes a trapped call by writing its result (or a
// badarg/error marker) into x[0].
func handleTrapAnswer(p *Process, sig Signal) {
	if sig.AnswerErr != nil {
		p.registers.X[0] = Tuple{AtomBadArg, sig.AnswerErr.Error()}
		return
	}
	p.registers.X[0] = sig.AnswerValue
	p.flags.Clear(FlagWaitingTimeout)
}

// handleFlushMonitor implements demonitor(Ref, [flush, info]): remove every
// pending {'DOWN', Ref, ...} message already in the mailbox, then set x[0]
// to false if any were removed and Info was requested, true otherwise.
func handleFlushMonitor(p *Process, sig Signal) {
	removed := p.mailbox.removeMatching(func(msg Term) bool {
		return isDownFor(msg, sig.RefTicks)
	})
	if removed && sig.FlushInfo {
		p.registers.X[0] = AtomFalse
	} else {
		p.registers.X[0] = AtomTrue
	}
}

// deliverMessage looks up pid in glb and pushes msg to its mailbox under
// its own lock, silently dropping the message if the target is gone —
// matching the original's "dead target" tolerance for info replies.
func deliverMessage(glb *GlobalContext, pid PID, msg Term) {
	target, unlock, ok := glb.GetProcessLock(pid)
	if !ok {
		return
	}
	defer unlock()
	target.mailbox.Send(msg)
}
