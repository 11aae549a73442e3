package procore

import "testing"

func TestTeardownRemovesFromRegistryFirst(t *testing.T) {
	glb := NewGlobalContext()
	p, _ := NewProcess(glb)
	pid := p.ID()

	Teardown(glb, p, AtomNormal)

	if _, ok := glb.Lookup(pid); ok {
		t.Fatal("expected the process to be gone from the registry after teardown")
	}
	if !p.Terminated() {
		t.Fatal("expected Terminated() to report true")
	}
}

func TestTeardownReleasesResources(t *testing.T) {
	glb := NewGlobalContext()
	p, _ := NewProcess(glb)
	p.registers.FR = []float64{1.0}
	p.platformData = "native handle"

	Teardown(glb, p, AtomNormal)

	if p.registers.FR != nil {
		t.Fatal("expected float register bank freed")
	}
	if p.platformData != nil {
		t.Fatal("expected platform data freed")
	}
	if p.heap.arena != nil {
		t.Fatal("expected heap arena released")
	}
	if p.dictionary.entries != nil {
		t.Fatal("expected dictionary released")
	}
}

func TestTeardownCancelsArmedTimer(t *testing.T) {
	glb := NewGlobalContext()
	p, _ := NewProcess(glb)

	cancelled := 0
	p.ArmTimer(timerCancellerFunc(func(PID) { cancelled++ }))

	Teardown(glb, p, AtomNormal)

	if cancelled != 1 {
		t.Fatalf("expected timer cancelled exactly once, got %d", cancelled)
	}
}

func TestTeardownDoubleCallAborts(t *testing.T) {
	glb := NewGlobalContext()
	p, _ := NewProcess(glb)
	Teardown(glb, p, AtomNormal)

	defer func() {
		if recover() == nil {
			t.Fatal("expected Abort to panic on a double teardown")
		}
	}()
	Teardown(glb, p, AtomNormal)
}

type timerCancellerFunc func(PID)

func (f timerCancellerFunc) CancelTimer(pid PID) { f(pid) }
