package tac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLabelAndLabelRoundTrip(t *testing.T) {
	b := NewBlock(nil)
	label := &Node{Op: OpLabel}
	b.SetLabel(RoleBreak, label)

	found, ok := b.Label(RoleBreak)
	assert.True(t, ok)
	assert.Same(t, label, found)
}

func TestSetLabelPanicsOnReassignment(t *testing.T) {
	b := NewBlock(nil)
	b.SetLabel(RoleBreak, &Node{})
	assert.Panics(t, func() { b.SetLabel(RoleBreak, &Node{}) })
}

func TestLabelWalksUpParentChain(t *testing.T) {
	parent := NewBlock(nil)
	label := &Node{Op: OpLabel}
	parent.SetLabel(RoleContinue, label)
	child := NewBlock(parent)

	found, ok := child.Label(RoleContinue)
	assert.True(t, ok)
	assert.Same(t, label, found)
}

func TestLabelNotFoundReturnsFalse(t *testing.T) {
	b := NewBlock(nil)
	_, ok := b.Label(RoleCatch)
	assert.False(t, ok)
}

func TestLabelOwnerReturnsTheBlockThatSetTheLabel(t *testing.T) {
	parent := NewBlock(nil)
	label := &Node{Op: OpLabel}
	parent.SetLabel(RoleBreak, label)
	child := NewBlock(parent)

	owner, found, ok := child.LabelOwner(RoleBreak)
	assert.True(t, ok)
	assert.Same(t, parent, owner)
	assert.Same(t, label, found)
}

func TestOwnLabelIgnoresParentLabels(t *testing.T) {
	parent := NewBlock(nil)
	parent.SetLabel(RoleContinue, &Node{})
	child := NewBlock(parent)

	_, ok := child.OwnLabel(RoleContinue)
	assert.False(t, ok)
}

func TestIsInsideCleanupChecksSelfAndAncestors(t *testing.T) {
	root := NewBlock(nil)
	assert.False(t, root.IsInsideCleanup())

	root.CleanupTarget = true
	child := NewBlock(root)
	assert.True(t, child.IsInsideCleanup())
	assert.True(t, root.IsInsideCleanup())
}

func TestAddUnwindSourceMarksEnclosingCleanupUnwindBlocks(t *testing.T) {
	root := NewBlock(nil)
	root.SetLabel(RoleCleanupUnwind, &Node{})
	middle := NewBlock(root)
	leaf := NewBlock(middle)

	AddUnwindSource(leaf)

	assert.True(t, root.UnwindTarget)
	assert.False(t, middle.UnwindTarget)
}
