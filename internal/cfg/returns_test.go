package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

func intSeq() *types.SequenceType {
	return &types.SequenceType{Elements: []types.ModifiedType{{Type: types.Primitive(types.Int)}}}
}

func TestReturnCoverageNilWhenVoidReturn(t *testing.T) {
	b := &Block{Nodes: []*tac.Node{{Op: tac.OpNoOp}}}
	g := &Graph{Blocks: []*Block{b}, Entry: b}
	assert.Nil(t, ReturnCoverage(g, &types.SequenceType{}))
}

func TestReturnCoverageNilWhenGraphHasNoEntry(t *testing.T) {
	g := &Graph{}
	assert.Nil(t, ReturnCoverage(g, intSeq()))
}

func TestReturnCoverageFlagsValuelessReturn(t *testing.T) {
	b := &Block{Nodes: []*tac.Node{{Op: tac.OpReturn}}}
	g := &Graph{Blocks: []*Block{b}, Entry: b}

	errs := ReturnCoverage(g, intSeq())
	assert.True(t, errs.HasError())
}

func TestReturnCoverageAcceptsValueCarryingReturn(t *testing.T) {
	value := &tac.Node{Op: tac.OpLiteral}
	ret := &tac.Node{Op: tac.OpReturn, Operands: []tac.Operand{{Value: value}}}
	b := &Block{Nodes: []*tac.Node{ret}}
	g := &Graph{Blocks: []*Block{b}, Entry: b}

	errs := ReturnCoverage(g, intSeq())
	assert.False(t, errs.HasError())
}

func TestReturnCoverageAcceptsThrowAndResumeAsTerminal(t *testing.T) {
	throwBlock := &Block{Nodes: []*tac.Node{{Op: tac.OpThrow}}}
	resumeBlock := &Block{Nodes: []*tac.Node{{Op: tac.OpResume}}}
	g := &Graph{Blocks: []*Block{throwBlock, resumeBlock}, Entry: throwBlock}

	errs := ReturnCoverage(g, intSeq())
	assert.False(t, errs.HasError())
}

func TestReturnCoverageFlagsFallOffWithoutReturn(t *testing.T) {
	b := &Block{Nodes: []*tac.Node{{Op: tac.OpNoOp}}}
	g := &Graph{Blocks: []*Block{b}, Entry: b}

	errs := ReturnCoverage(g, intSeq())
	assert.True(t, errs.HasError())
}

func TestReturnCoverageSkipsBlocksWithSuccessors(t *testing.T) {
	successor := &Block{Nodes: []*tac.Node{{Op: tac.OpReturn, Operands: []tac.Operand{{Value: &tac.Node{Op: tac.OpLiteral}}}}}}
	branchOnly := &Block{Nodes: []*tac.Node{{Op: tac.OpBranch}}, Succ: []*Block{successor}}
	g := &Graph{Blocks: []*Block{branchOnly, successor}, Entry: branchOnly}

	errs := ReturnCoverage(g, intSeq())
	assert.False(t, errs.HasError())
}
