package procore

import "testing"

// TestNormalExitDoesNotPropagateToTrappingLinkedPeer covers a linked peer
// that traps exits: when the linked process exits with reason 'normal', the
// trapping peer receives nothing.
func TestNormalExitDoesNotPropagateToTrappingLinkedPeer(t *testing.T) {
	glb := NewGlobalContext()
	q, _ := NewProcess(glb)
	q.SetTrapExit(true)
	p, _ := NewProcess(glb)

	if err := Link(glb, q.ID(), p.ID()); err != nil {
		t.Fatalf("Link: %v", err)
	}
	Teardown(glb, p, AtomNormal)

	if q.mailbox.Len() != 0 {
		t.Fatalf("expected no message delivered on a normal exit, got %d", q.mailbox.Len())
	}
}

// TestAbnormalExitKillsNonTrappingLinkedPeer covers a linked peer that does
// not trap exits: an abnormal exit delivers a Kill signal, and processing
// that signal sets FlagKilled with the propagated reason.
func TestAbnormalExitKillsNonTrappingLinkedPeer(t *testing.T) {
	glb := NewGlobalContext()
	q, _ := NewProcess(glb)
	p, _ := NewProcess(glb)

	if err := Link(glb, q.ID(), p.ID()); err != nil {
		t.Fatalf("Link: %v", err)
	}
	Teardown(glb, p, Atom("crash"))

	killed := ProcessSignals(q, glb)
	if !killed {
		t.Fatal("expected the propagated kill signal to terminate q")
	}
	if !q.Flags().Has(FlagKilled) {
		t.Fatal("expected FlagKilled set on q")
	}
	if q.exitReason != Atom("crash") {
		t.Fatalf("expected exit reason 'crash', got %v", q.exitReason)
	}
}

// TestMonitorDownTaggingForPorts covers a monitor against a native-handler
// ("port") process: the resulting 'DOWN' message tags the target's kind as
// 'port' rather than 'process'.
func TestMonitorDownTaggingForPorts(t *testing.T) {
	glb := NewGlobalContext()
	q, _ := NewProcess(glb)
	p, _ := NewProcess(glb, WithNativeHandler(portHandlerStub{}))

	ref, err := Monitor(glb, q.ID(), p.ID(), false)
	if err != nil {
		t.Fatalf("Monitor: %v", err)
	}
	Teardown(glb, p, Atom("shutdown"))

	msg, ok := q.mailbox.Peek()
	if !ok {
		t.Fatal("expected a DOWN message in q's mailbox")
	}
	tup, ok := msg.(Tuple)
	if !ok || len(tup) != 5 {
		t.Fatalf("unexpected message shape: %#v", msg)
	}
	if tup[0] != AtomDown || tup[1] != Ref(ref) || tup[2] != AtomPort || tup[3] != p.ID() || tup[4] != Atom("shutdown") {
		t.Fatalf("unexpected DOWN tuple contents: %#v", tup)
	}
}

type portHandlerStub struct{}

func (portHandlerStub) HandleMessage(*Process, Term) {}

// TestFlushMonitorIdempotentOnSecondCall covers the selective-flush
// sequence: the first flush removes a pending DOWN message and sets x[0] to
// false (one was removed and info was requested); the second flush on the
// same ref finds nothing, leaves the mailbox untouched, and sets x[0] to
// true.
func TestFlushMonitorIdempotentOnSecondCall(t *testing.T) {
	glb := NewGlobalContext()
	p, _ := NewProcess(glb)

	p.mailbox.Send("m1")
	p.mailbox.Send(Tuple{AtomDown, Ref(42), AtomProcess, PID(7), AtomNormal})
	p.mailbox.Send("m2")

	p.mailbox.SendSignal(Signal{
		Kind:       SignalFlushMonitor,
		RefTicks:   42,
		MonitorRef: Ref(42),
		FlushInfo:  true,
	})
	ProcessSignals(p, glb)

	if p.mailbox.Len() != 2 {
		t.Fatalf("expected 2 messages remaining, got %d", p.mailbox.Len())
	}
	first, _ := p.mailbox.Peek()
	if first != "m1" {
		t.Fatalf("expected m1 first, got %v", first)
	}
	if _, ok := p.mailbox.Next(); !ok {
		t.Fatal("expected a second message (m2) present")
	}
	if p.registers.X[0] != AtomFalse {
		t.Fatalf("expected x[0] == false after removing a pending DOWN, got %v", p.registers.X[0])
	}

	// Second flush of the same ref: nothing pending, mailbox stays [m1, m2].
	p.mailbox.Reset()
	p.mailbox.SendSignal(Signal{
		Kind:       SignalFlushMonitor,
		RefTicks:   42,
		MonitorRef: Ref(42),
		FlushInfo:  true,
	})
	ProcessSignals(p, glb)
	if p.mailbox.Len() != 2 {
		t.Fatalf("expected mailbox unchanged at 2 messages, got %d", p.mailbox.Len())
	}
	if p.registers.X[0] != AtomTrue {
		t.Fatalf("expected x[0] == true when nothing was removed, got %v", p.registers.X[0])
	}
}

// TestProcessSizeMonotonicUnderAllocation duplicates the heap-level check
// at the process_info boundary: process_info(memory) must never regress
// across an allocation.
func TestProcessSizeMonotonicUnderAllocation(t *testing.T) {
	glb := NewGlobalContext()
	p, _ := NewProcess(glb, WithMinHeapWords(64), WithMaxHeapWords(0))

	m0, err := GetProcessInfo(p, AtomMemory)
	if err != nil {
		t.Fatalf("GetProcessInfo: %v", err)
	}
	if err := p.heap.EnsureFree(64); err != nil {
		t.Fatalf("EnsureFree: %v", err)
	}
	for i := 0; i < 64; i++ {
		p.heap.Allocate(int64(i))
	}
	m1, err := GetProcessInfo(p, AtomMemory)
	if err != nil {
		t.Fatalf("GetProcessInfo: %v", err)
	}
	if m1.(int) < m0.(int)+64*wordSize {
		t.Fatalf("process_info(memory) not monotonic: m0=%v m1=%v", m0, m1)
	}
}
