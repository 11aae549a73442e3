// heap.go — Process Heap: a word-accounting bump arena with
// a co-located stack, growing the backing arena on demand up to an optional
// cap. Root-scanning and copying collection are the garbage collector's
// responsibility, an external collaborator — this type only
// tracks how many words are in use, never compacts or moves anything.
package procore

// Heap is a per-process bump allocator. Terms allocated from the low end
// grow upward (allocPos); the stack, co-located in the same arena, grows
// downward from the top (stackPos). The heap is exhausted when the two
// pointers meet.
type Heap struct {
	arena    []Term
	allocPos int
	stackPos int

	minWords int
	maxWords int
}

func (h *Heap) init(minWords, maxWords, stackWords int) error {
	if minWords <= 0 {
		minWords = defaultMinHeapWords
	}
	if stackWords <= 0 {
		stackWords = defaultStackWords
	}
	total := minWords
	if total < stackWords {
		total = stackWords
	}
	h.arena = make([]Term, total)
	h.allocPos = 0
	h.stackPos = total
	h.minWords = minWords
	h.maxWords = maxWords
	return nil
}

// SizeInWords returns the total capacity of the arena.
func (h *Heap) SizeInWords() int { return len(h.arena) }

// UsedWords returns the number of words currently occupied by allocated
// terms plus the stack.
func (h *Heap) UsedWords() int {
	return h.allocPos + (len(h.arena) - h.stackPos)
}

// FreeWords returns the number of unused words between the allocation and
// stack pointers.
func (h *Heap) FreeWords() int {
	return h.stackPos - h.allocPos
}

// EnsureFree grows the arena, if necessary, so that at least words words are
// free between the allocation and stack pointers. It returns
// [ErrOutOfMemory] if doing so would exceed maxWords (when maxWords > 0).
func (h *Heap) EnsureFree(words int) error {
	if h.FreeWords() >= words {
		return nil
	}
	needed := len(h.arena) + (words - h.FreeWords())
	// Grow geometrically, to
	// amortize repeated small allocations.
	newSize := len(h.arena) * 2
	if newSize < needed {
		newSize = needed
	}
	if h.maxWords > 0 && newSize > h.maxWords {
		if needed > h.maxWords {
			return ErrOutOfMemory
		}
		newSize = h.maxWords
	}
	h.growTo(newSize)
	return nil
}

func (h *Heap) growTo(newSize int) {
	grown := make([]Term, newSize)
	copy(grown, h.arena[:h.allocPos])
	stackLen := len(h.arena) - h.stackPos
	copy(grown[newSize-stackLen:], h.arena[h.stackPos:])
	h.stackPos = newSize - stackLen
	h.arena = grown
}

// Allocate bumps the allocation pointer by the word footprint of v and
// stores it, returning the slot index. The caller must have already called
// [Heap.EnsureFree] for the term's word count (see [termWords]).
func (h *Heap) Allocate(v Term) int {
	idx := h.allocPos
	h.arena[idx] = v
	h.allocPos += termWords(v)
	return idx
}

// At returns the term previously stored at idx by [Heap.Allocate].
func (h *Heap) At(idx int) Term { return h.arena[idx] }

// PushStack pushes v onto the co-located stack, growing the arena first if
// necessary.
func (h *Heap) PushStack(v Term) error {
	if err := h.EnsureFree(1); err != nil {
		return err
	}
	h.stackPos--
	h.arena[h.stackPos] = v
	return nil
}

// PopStack pops and returns the top of the stack. It panics if the stack is
// empty, mirroring an interpreter bug rather than a recoverable condition.
func (h *Heap) PopStack() Term {
	v := h.arena[h.stackPos]
	h.arena[h.stackPos] = nil
	h.stackPos++
	return v
}

// StackWords returns the number of words currently on the stack.
func (h *Heap) StackWords() int { return len(h.arena) - h.stackPos }

// Destroy releases the arena. After Destroy, the Heap must not be reused.
func (h *Heap) Destroy() {
	h.arena = nil
	h.allocPos = 0
	h.stackPos = 0
}
