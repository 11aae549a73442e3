// mailbox.go — the Mailbox: a FIFO user-message queue plus a
// disjoint signal channel, and a selective-receive cursor. Signals are
// always drained ahead of any message becoming visible to receive.
//
// Grounds on a chunked-ingress/microtask-ring design: the "caller must
// hold a lock" contract and the
// overflow/removal idiom built on slices.Delete, simplified from a
// chunk-pool to a plain slice since selective receive and FlushMonitor both
// need arbitrary mid-queue removal, which a chunk-pool resists.
package procore

import (
	"slices"
	"sync"
)

// Mailbox holds a process's pending messages and signals.
//
// Every exported method acquires the mailbox's own mutex; this is
// independent of, and narrower than, the whole-process lock held via
// [GlobalContext.GetProcessLock], which the Mailbox's methods never take
// themselves. This package's own senders (deliverMessage, notifyWatcher)
// acquire that lock before posting.
type Mailbox struct {
	mu sync.Mutex

	messages []Term
	cursor   int

	signals []Signal

	flags *FlagRegister
	wake  func()
}

func newMailbox(flags *FlagRegister, wake func()) *Mailbox {
	return &Mailbox{flags: flags, wake: wake}
}

// Send enqueues msg as a user message, waking the owning scheduler if a
// wake hook was installed.
func (m *Mailbox) Send(msg Term) {
	m.mu.Lock()
	m.push(msg)
	m.mu.Unlock()
	m.notify()
}

// push appends a message. Caller must hold m.mu.
func (m *Mailbox) push(msg Term) {
	m.messages = append(m.messages, msg)
}

func (m *Mailbox) notify() {
	if m.wake != nil {
		m.wake()
	}
}

// SendSignal enqueues a signal and sets [FlagTrap] so the interpreter calls
// [ProcessSignals] at its next safe point.
func (m *Mailbox) SendSignal(sig Signal) {
	m.mu.Lock()
	m.signals = append(m.signals, sig)
	m.mu.Unlock()
	if m.flags != nil {
		m.flags.Set(FlagTrap)
	}
	m.notify()
}

// nextSignal pops the oldest pending signal in arrival order.
func (m *Mailbox) nextSignal() (Signal, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.signals) == 0 {
		return Signal{}, false
	}
	sig := m.signals[0]
	m.signals = slices.Delete(m.signals, 0, 1)
	return sig, true
}

// PendingSignals reports the number of signals awaiting dispatch.
func (m *Mailbox) PendingSignals() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.signals)
}

// Peek returns the message the selective-receive cursor currently points
// at, without advancing it.
func (m *Mailbox) Peek() (Term, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cursor >= len(m.messages) {
		return nil, false
	}
	return m.messages[m.cursor], true
}

// Next advances the cursor to the following message, returning it.
func (m *Mailbox) Next() (Term, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cursor+1 >= len(m.messages) {
		m.cursor = len(m.messages)
		return nil, false
	}
	m.cursor++
	return m.messages[m.cursor], true
}

// RemoveMessage deletes the message the cursor currently points at (after a
// matching `receive` clause consumed it) and resets the cursor to the head
// of the queue, matching the original's remove_message/reset pairing.
func (m *Mailbox) RemoveMessage() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cursor < 0 || m.cursor >= len(m.messages) {
		return
	}
	m.messages = slices.Delete(m.messages, m.cursor, m.cursor+1)
	m.cursor = 0
}

// Reset rewinds the selective-receive cursor to the head of the queue,
// without removing anything — used when a `receive` block exhausts the
// queue without a match and must wait for new messages.
func (m *Mailbox) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor = 0
}

// Len returns the number of user messages currently queued.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

// SizeBytes estimates the mailbox's footprint for process_info's memory
// accounting.
func (m *Mailbox) SizeBytes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, msg := range m.messages {
		total += termWords(msg) * wordSize
	}
	return total
}

// removeMatching deletes every message satisfying pred, returning whether
// at least one was found. Used by FlushMonitor to clear every pending
// 'DOWN' message for a given ref without otherwise disturbing queue order.
func (m *Mailbox) removeMatching(pred func(Term) bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := false
	for i := 0; i < len(m.messages); {
		if pred(m.messages[i]) {
			m.messages = slices.Delete(m.messages, i, i+1)
			if m.cursor > i {
				m.cursor--
			}
			found = true
			continue
		}
		i++
	}
	return found
}

// Destroy releases the mailbox's backing storage. After Destroy, the
// Mailbox must not be reused.
func (m *Mailbox) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
	m.signals = nil
	m.cursor = 0
}
