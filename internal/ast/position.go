// Package ast defines the checked-AST node kinds the TAC builder consumes.
//
// The lexer, parser, and type checker that produce these values are
// explicitly out of scope for this repository: they are named
// external collaborators. This package is the data contract between them
// and the middle-end — every node here is assumed already type-checked,
// so expressions carry a resolved types.Type and there is no notion of an
// unresolved name left in the tree.
package ast

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// SourceLocation is a file-relative position, the unit every TACNode
// carries a reference to.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (s SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

func (s SourceLocation) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	_, _ = h.Write([]byte(s.File))
	binary.LittleEndian.PutUint64(buf[:], uint64(s.Line))
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(s.Column))
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// Positioner allows finding a node's location in the original source file.
// The easiest way to be a Positioner is to embed a SourceLocation.
type Positioner interface {
	Pos() SourceLocation
}

func (s SourceLocation) Pos() SourceLocation { return s }

// Node is the base interface for all checked-AST nodes.
type Node interface {
	Positioner
	Hash() uint64
}
