// monitor.go — the Monitor/Link Table.
//
// Grounds on context_monitor/context_demonitor/context_monitors_handle_terminate
// in the original source: each process's table holds the set of *other*
// processes watching *it* (monitor_pid in the original), not the targets it
// watches itself — so that when a process terminates, it can walk its own
// table once and notify every interested watcher without consulting the
// rest of the registry. A flat, linearly-scanned list is used rather than
// an indexed structure, since tables are expected to stay small and linear
// scan avoids extra bookkeeping for the teardown-time full-table drain.
package procore

// monitorEntry records that WatcherPID is watching the process holding this
// table. A link has RefTicks == 0 and Linked == true, matching
// context_monitor's convention of returning ref == 0 for link establishment.
type monitorEntry struct {
	WatcherPID PID
	RefTicks   uint64
	Linked     bool
}

// MonitorTable is the set of watchers (monitors and links) registered
// against the process that owns this table. All methods assume the owning
// process's lock is already held by the caller.
type MonitorTable struct {
	entries []monitorEntry
}

func newMonitorTable() MonitorTable {
	return MonitorTable{}
}

// AddWatcher records that watcher is now monitoring (or linked to) the
// owning process.
func (t *MonitorTable) AddWatcher(watcher PID, refTicks uint64, linked bool) {
	t.entries = append(t.entries, monitorEntry{WatcherPID: watcher, RefTicks: refTicks, Linked: linked})
}

// RemoveMonitor removes the watcher entry identified by refTicks (a
// one-way monitor), returning whether one was found.
func (t *MonitorTable) RemoveMonitor(refTicks uint64) bool {
	for i, e := range t.entries {
		if !e.Linked && e.RefTicks == refTicks {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveLink removes the link entry held against watcher, returning whether
// one was found.
func (t *MonitorTable) RemoveLink(watcher PID) bool {
	for i, e := range t.entries {
		if e.Linked && e.WatcherPID == watcher {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of entries currently held.
func (t *MonitorTable) Len() int { return len(t.entries) }

// Entries returns a snapshot of the current entries.
func (t *MonitorTable) Entries() []monitorEntry {
	out := make([]monitorEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Drain removes and returns every entry, leaving the table empty. Used by
// [Teardown] to notify every watcher exactly once.
func (t *MonitorTable) Drain() []monitorEntry {
	out := t.entries
	t.entries = nil
	return out
}

// Monitor establishes a watch of watcher over target: a one-way monitor if
// linked is false, a bidirectional link if true. It returns the new
// monitor's ref-ticks (0 for a link, matching context_monitor), or
// [ErrDeadTarget] if target is not currently registered.
func Monitor(glb *GlobalContext, watcher, target PID, linked bool) (uint64, error) {
	t, unlock, ok := glb.GetProcessLock(target)
	if !ok {
		return 0, wrapErr(target, "monitor", ErrDeadTarget)
	}
	defer unlock()

	var refTicks uint64
	if !linked {
		refTicks = glb.GetRefTicks()
	}
	t.monitors.AddWatcher(watcher, refTicks, linked)
	logDebug(target, "monitor", "watcher registered")
	return refTicks, nil
}

// Demonitor removes a one-way monitor identified by refTicks from target's
// table, returning whether one was found. A dead target is treated as
// "nothing to remove" rather than an error, matching demonitor's usual
// best-effort semantics.
func Demonitor(glb *GlobalContext, target PID, refTicks uint64) bool {
	t, unlock, ok := glb.GetProcessLock(target)
	if !ok {
		return false
	}
	defer unlock()
	return t.monitors.RemoveMonitor(refTicks)
}

// Unlink removes the link between watcher and target from target's table.
func Unlink(glb *GlobalContext, target, watcher PID) bool {
	t, unlock, ok := glb.GetProcessLock(target)
	if !ok {
		return false
	}
	defer unlock()
	return t.monitors.RemoveLink(watcher)
}

// Link establishes a bidirectional link between a and b: each process's
// table gets an entry recording that the other is watching it. If adding
// the second entry fails (a not registered), the first is rolled back so a
// link is never left half-established.
func Link(glb *GlobalContext, a, b PID) error {
	if _, err := Monitor(glb, a, b, true); err != nil {
		return err
	}
	if _, err := Monitor(glb, b, a, true); err != nil {
		Unlink(glb, b, a)
		return err
	}
	return nil
}

// UnlinkBoth removes both halves of the link between a and b.
func UnlinkBoth(glb *GlobalContext, a, b PID) {
	Unlink(glb, a, b)
	Unlink(glb, b, a)
}
