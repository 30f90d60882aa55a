package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadow-lang/shadowc/internal/tac"
)

func TestReachabilityFlagsBlockUnreachableFromEntry(t *testing.T) {
	reachableBlock := &Block{Nodes: []*tac.Node{{Op: tac.OpReturn}}}
	deadBlock := &Block{Nodes: []*tac.Node{{Op: tac.OpNoOp}}}
	g := &Graph{Blocks: []*Block{reachableBlock, deadBlock}, Entry: reachableBlock}

	errs := Reachability(g)
	require.NotNil(t, errs)
	// unreachable code is reported as a warning, which HasError ignores
	assert.False(t, errs.HasError())
	assert.Len(t, errs.All(), 1)
}

func TestReachabilityExemptsCleanupRegionBlocks(t *testing.T) {
	cleanup := tac.NewBlock(nil)
	cleanup.CleanupTarget = true

	reachableBlock := &Block{Nodes: []*tac.Node{{Op: tac.OpReturn}}}
	deadCleanupBlock := &Block{Nodes: []*tac.Node{{Op: tac.OpNoOp, Owner: cleanup}}}
	g := &Graph{Blocks: []*Block{reachableBlock, deadCleanupBlock}, Entry: reachableBlock}

	errs := Reachability(g)
	assert.Empty(t, errs.All())
}

func TestReachabilityFollowsSuccessorsTransitively(t *testing.T) {
	third := &Block{Nodes: []*tac.Node{{Op: tac.OpReturn}}}
	second := &Block{Nodes: []*tac.Node{{Op: tac.OpNoOp}}, Succ: []*Block{third}}
	first := &Block{Nodes: []*tac.Node{{Op: tac.OpNoOp}}, Succ: []*Block{second}}

	g := &Graph{Blocks: []*Block{first, second, third}, Entry: first}
	errs := Reachability(g)
	assert.Empty(t, errs.All())
}

func TestReachabilityNilEntryReportsEveryNonEmptyBlock(t *testing.T) {
	b := &Block{Nodes: []*tac.Node{{Op: tac.OpNoOp}}}
	g := &Graph{Blocks: []*Block{b}}
	errs := Reachability(g)
	assert.Len(t, errs.All(), 1)
}
