package procore

import "testing"

func TestGlobalContextRegisterAndLookup(t *testing.T) {
	glb := NewGlobalContext()
	p, err := NewProcess(glb)
	if err != nil {
		t.Fatalf("NewProcess: %v", err)
	}
	if p.ID() == InvalidPID {
		t.Fatal("expected a nonzero pid")
	}
	got, ok := glb.Lookup(p.ID())
	if !ok || got != p {
		t.Fatalf("expected lookup to find the registered process")
	}
}

func TestGlobalContextGetProcessLockRejectsUnknownPID(t *testing.T) {
	glb := NewGlobalContext()
	if _, _, ok := glb.GetProcessLock(PID(123)); ok {
		t.Fatal("expected lock acquisition on an unknown pid to fail")
	}
}

func TestGlobalContextRefTicksMonotonicAndNonZero(t *testing.T) {
	glb := NewGlobalContext()
	seen := make(map[uint64]bool)
	prev := uint64(0)
	for i := 0; i < 100; i++ {
		r := glb.GetRefTicks()
		if r == 0 {
			t.Fatal("ref ticks must never be zero")
		}
		if r <= prev {
			t.Fatalf("ref ticks must be strictly increasing: prev=%d got=%d", prev, r)
		}
		if seen[r] {
			t.Fatalf("duplicate ref ticks value: %d", r)
		}
		seen[r] = true
		prev = r
	}
}

func TestGlobalContextNameRegistration(t *testing.T) {
	glb := NewGlobalContext()
	p, _ := NewProcess(glb)

	if !glb.RegisterName("logger", p.ID()) {
		t.Fatal("expected registration to succeed")
	}
	if glb.RegisterName("logger", p.ID()) {
		t.Fatal("expected duplicate registration to fail")
	}
	pid, ok := glb.WhereIs("logger")
	if !ok || pid != p.ID() {
		t.Fatalf("expected WhereIs to resolve to %d, got %d ok=%v", p.ID(), pid, ok)
	}
	glb.UnregisterName("logger")
	if _, ok := glb.WhereIs("logger"); ok {
		t.Fatal("expected name to be gone after UnregisterName")
	}
}

func TestSweepRemovesStaleWatcherEntries(t *testing.T) {
	glb := NewGlobalContext()
	target, _ := NewProcess(glb)
	watcher, _ := NewProcess(glb)

	if _, err := Monitor(glb, watcher.ID(), target.ID(), false); err != nil {
		t.Fatalf("Monitor: %v", err)
	}
	// The watcher disappears without demonitoring.
	Teardown(glb, watcher, AtomNormal)

	if target.monitors.Len() != 1 {
		t.Fatalf("expected the stale entry still present before sweep, got %d", target.monitors.Len())
	}
	glb.sweepStaleMonitors()
	if target.monitors.Len() != 0 {
		t.Fatalf("expected sweep to remove the stale watcher entry, got %d", target.monitors.Len())
	}
}
