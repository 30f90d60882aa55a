package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadow-lang/shadowc/internal/tac"
)

func TestBuildLinearMethodIsSingleBlock(t *testing.T) {
	m := tac.NewMethod(nil)
	noop := m.Append(m.Entry, &tac.Node{Op: tac.OpNoOp})
	m.Append(noop, &tac.Node{Op: tac.OpReturn})

	g := Build(m)
	require.Len(t, g.Blocks, 1)
	assert.Same(t, g.Entry, g.Blocks[0])
	assert.Len(t, g.Entry.Nodes, 3)
	assert.Empty(t, g.Entry.Succ)
}

func TestBuildBranchSplitsIntoThreeBlocksWithBothEdges(t *testing.T) {
	m := tac.NewMethod(nil)
	thenLabel := &tac.Node{Op: tac.OpLabel}
	elseLabel := &tac.Node{Op: tac.OpLabel}
	branch := &tac.Node{Op: tac.OpBranch, Payload: tac.BranchPayload{Then: thenLabel, Else: elseLabel}}

	m.Append(m.Entry, branch)
	m.Append(branch, thenLabel)
	retThen := m.Append(thenLabel, &tac.Node{Op: tac.OpReturn})
	m.Append(retThen, elseLabel)
	m.Append(elseLabel, &tac.Node{Op: tac.OpReturn})

	g := Build(m)
	require.Len(t, g.Blocks, 3)

	entryBlock := g.Blocks[0]
	thenBlock := g.Blocks[1]
	elseBlock := g.Blocks[2]

	assert.ElementsMatch(t, []*Block{thenBlock, elseBlock}, entryBlock.Succ)
	assert.Contains(t, thenBlock.Pred, entryBlock)
	assert.Contains(t, elseBlock.Pred, entryBlock)
	assert.Empty(t, thenBlock.Succ)
	assert.Empty(t, elseBlock.Succ)
}

func TestBuildUnconditionalBranchLinksOnlyThenTarget(t *testing.T) {
	m := tac.NewMethod(nil)
	target := &tac.Node{Op: tac.OpLabel}
	branch := &tac.Node{Op: tac.OpBranch, Payload: tac.BranchPayload{Then: target}}

	m.Append(m.Entry, branch)
	m.Append(branch, target)
	m.Append(target, &tac.Node{Op: tac.OpReturn})

	g := Build(m)
	require.Len(t, g.Blocks, 2)
	assert.Equal(t, []*Block{g.Blocks[1]}, g.Blocks[0].Succ)
}

func TestBuildEmptyMethodProducesEntryOnlyBlock(t *testing.T) {
	m := tac.NewMethod(nil)
	g := Build(m)
	require.Len(t, g.Blocks, 1)
	assert.Same(t, g.Entry, g.Blocks[0])
}
