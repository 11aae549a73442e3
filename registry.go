// registry.go — the Global Registry: process table, name
// registration, per-process lock acquisition, and the monotonic ref-ticks
// counter handed out to monitors and refs. Grounds on a monotonic-counter
// registry idiom,
// adapted to keep strong references to live processes rather than weak
// ones, since a registered process must never be collected out from under
// a pending signal.
package procore

import (
	"sync"
	"sync/atomic"
)

// GlobalContext is the external registry interface a host VM uses to create
// processes, look them up, and serialize access to their internals.
type GlobalContext struct {
	mu       sync.RWMutex
	table    map[PID]*Process
	names    map[Atom]PID
	nextPID  uint32
	refTicks atomic.Uint64
}

// NewGlobalContext creates an empty registry.
func NewGlobalContext() *GlobalContext {
	return &GlobalContext{
		table: make(map[PID]*Process),
		names: make(map[Atom]PID),
	}
}

// registerProcess assigns the next pid and inserts p into the table.
func (g *GlobalContext) registerProcess(p *Process) PID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextPID++
	pid := PID(g.nextPID)
	g.table[pid] = p
	return pid
}

// GetRefTicks returns the next value in the monotonically increasing
// counter used to identify monitors and refs. Zero is never returned, so it
// remains a safe sentinel for "no ref" (e.g. a link entry).
func (g *GlobalContext) GetRefTicks() uint64 {
	return g.refTicks.Add(1)
}

// Lookup returns the process registered under pid, without acquiring its
// lock.
func (g *GlobalContext) Lookup(pid PID) (*Process, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, ok := g.table[pid]
	return p, ok
}

// GetProcessLock looks up pid and locks the returned process, returning an
// unlock function the caller must invoke exactly once. It returns ok=false
// if pid is not currently registered or has already been torn down.
func (g *GlobalContext) GetProcessLock(pid PID) (p *Process, unlock func(), ok bool) {
	g.mu.RLock()
	target, found := g.table[pid]
	g.mu.RUnlock()
	if !found {
		return nil, nil, false
	}
	target.mu.Lock()
	if target.terminated {
		target.mu.Unlock()
		return nil, nil, false
	}
	return target, target.mu.Unlock, true
}

// ReleaseProcessLock unlocks a process previously returned by
// GetProcessLock, for callers that prefer the explicit release-by-process
// form over the returned closure.
func (g *GlobalContext) ReleaseProcessLock(p *Process) {
	p.mu.Unlock()
}

// RemoveProcess deletes pid from the process table. This is always the
// first step of [Teardown].
func (g *GlobalContext) RemoveProcess(pid PID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.table, pid)
}

// RegisterName binds name to pid, failing if the name is already taken.
func (g *GlobalContext) RegisterName(name Atom, pid PID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.names[name]; exists {
		return false
	}
	g.names[name] = pid
	return true
}

// UnregisterName removes a name binding, if any.
func (g *GlobalContext) UnregisterName(name Atom) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.names, name)
}

// WhereIs resolves a registered name to a pid.
func (g *GlobalContext) WhereIs(name Atom) (PID, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	pid, ok := g.names[name]
	return pid, ok
}

// unregisterNameFor removes every name currently bound to pid; used by
// [Teardown] so a dead process's registered name no longer resolves to its
// pid.
func (g *GlobalContext) unregisterNameFor(pid PID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for name, bound := range g.names {
		if bound == pid {
			delete(g.names, name)
		}
	}
}

// sweepStaleMonitors scans every live process's monitor table and removes
// watcher entries whose watcher no longer exists in the registry. A watcher
// that dies without demonitoring would otherwise leave a permanent entry on
// a long-lived target's table; this addresses the open question of
// unbounded monitor-table growth. Called only via
// [Sweeper.MaybeSweep].
func (g *GlobalContext) sweepStaleMonitors() {
	g.mu.RLock()
	snapshot := make([]*Process, 0, len(g.table))
	for _, p := range g.table {
		snapshot = append(snapshot, p)
	}
	g.mu.RUnlock()

	for _, p := range snapshot {
		p.mu.Lock()
		entries := p.monitors.Entries()
		for _, e := range entries {
			g.mu.RLock()
			_, alive := g.table[e.WatcherPID]
			g.mu.RUnlock()
			if !alive {
				if e.Linked {
					p.monitors.RemoveLink(e.WatcherPID)
				} else {
					p.monitors.RemoveMonitor(e.RefTicks)
				}
				logDebug(p.id, "sweep", "removed stale watcher entry")
			}
		}
		p.mu.Unlock()
	}
}
