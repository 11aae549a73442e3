// info.go — process_info's key dispatch table, grounded on
// context_get_process_info's switch over process_info_key_t in the original
// source.
package procore

// GetProcessInfo computes the value for a single process_info key. It
// returns [ErrBadArg] for an unrecognized key, matching
// context_get_process_info's default branch.
func GetProcessInfo(p *Process, key Atom) (Term, error) {
	switch key {
	case AtomHeapSize:
		return p.heap.SizeInWords() - p.heap.StackWords(), nil
	case AtomStackSize:
		return p.heap.StackWords(), nil
	case AtomMessageQueueLen:
		return p.mailbox.Len(), nil
	case AtomMemory:
		return ProcessSize(p), nil
	default:
		return nil, ErrBadArg
	}
}

// ProcessSize estimates the total byte footprint of p: the heap words in use
// (allocated terms plus stack, not the arena's capacity), its mailbox, and
// its register bank, mirroring context_size's accounting.
func ProcessSize(p *Process) int {
	size := p.heap.UsedWords() * wordSize
	size += p.mailbox.SizeBytes()
	size += len(p.registers.FR) * 8
	size += NumXRegisters * wordSize
	return size
}
