// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonpull

type blockKind byte

const (
	toplevel blockKind = iota
	object
	array
)

// A block records the traversal state of one open container, or of the
// document itself at the bottom of the stack.
type block struct {
	kind   blockKind
	value  int // offset of the current value, or -1 if there is none
	member int // offset of the current member name (object only)
	index  int // ordinal of the current value within the container
}

// inlineBlocks is the depth of nesting handled without allocation.
const inlineBlocks = 16

// A blockStack is a stack of blocks. The bottom of the stack is always the
// toplevel block. Storage begins in a fixed array and moves to the heap when
// nesting exceeds inlineBlocks.
type blockStack struct {
	inline [inlineBlocks]block
	blocks []block
}

func (s *blockStack) init(b block) {
	s.blocks = append(s.inline[:0], b)
}

// push adds b to the stack and returns a pointer to it. The pointer is valid
// until the next push.
func (s *blockStack) push(b block) *block {
	s.blocks = append(s.blocks, b)
	return s.top()
}

func (s *blockStack) pop() { s.blocks = s.blocks[:len(s.blocks)-1] }

func (s *blockStack) top() *block { return &s.blocks[len(s.blocks)-1] }

// depth reports the number of open containers.
func (s *blockStack) depth() int { return len(s.blocks) - 1 }

// exhaust marks every block as having no current value.
func (s *blockStack) exhaust() {
	for i := range s.blocks {
		s.blocks[i].value = -1
	}
}
