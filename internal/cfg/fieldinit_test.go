package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadow-lang/shadowc/internal/tac"
)

func thisRef() *tac.Node {
	return &tac.Node{Op: tac.OpVariableRef, Payload: 0}
}

func escapingCall() *tac.Node {
	return &tac.Node{Op: tac.OpCall, Operands: []tac.Operand{{Value: thisRef()}}}
}

func TestFieldInitializationNilWhenNoRequiredFields(t *testing.T) {
	b := &Block{Nodes: []*tac.Node{escapingCall()}}
	g := &Graph{Blocks: []*Block{b}, Entry: b}
	assert.Nil(t, FieldInitialization(g, nil))
}

func TestFieldInitializationNilWhenGraphHasNoEntry(t *testing.T) {
	g := &Graph{}
	assert.Nil(t, FieldInitialization(g, []string{"target"}))
}

func TestFieldInitializationFlagsEscapeBeforeAnyAssignment(t *testing.T) {
	b := &Block{Nodes: []*tac.Node{escapingCall()}}
	g := &Graph{Blocks: []*Block{b}, Entry: b}

	errs := FieldInitialization(g, []string{"target"})
	require.True(t, errs.HasError())
	require.Len(t, errs.All(), 1)
}

func TestFieldInitializationDoesNotDuplicateReportForSameField(t *testing.T) {
	b := &Block{Nodes: []*tac.Node{escapingCall(), escapingCall()}}
	g := &Graph{Blocks: []*Block{b}, Entry: b}

	errs := FieldInitialization(g, []string{"target"})
	assert.Len(t, errs.All(), 1)
}
