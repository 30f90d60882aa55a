package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/ilerr"
	"github.com/shadow-lang/shadowc/internal/types"
)

type fakeFrontend struct {
	parseErr    error
	parseErrs   *ilerr.Errors
	checkDecl   *ast.ModuleDecl
	checkErrs   *ilerr.Errors
	parseCalled bool
}

func (f *fakeFrontend) Parse(path string, source []byte) (any, *ilerr.Errors, error) {
	f.parseCalled = true
	return struct{}{}, f.parseErrs, f.parseErr
}

func (f *fakeFrontend) TypeCheck(ctx *types.TypeCtx, tree any) (*ast.ModuleDecl, *ilerr.Errors) {
	return f.checkDecl, f.checkErrs
}

func writeShadowSource(t *testing.T, dir, name string) Unit {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("class Empty {}"), 0o644))
	return unitFor(path)
}

func TestCheckUnitMissingSourceIsFileNotFound(t *testing.T) {
	dir := t.TempDir()
	u := unitFor(filepath.Join(dir, "Missing.shadow"))

	_, errs := CheckUnit(&fakeFrontend{}, types.NewTypeCtx(), u)
	require.True(t, errs.HasError())
	assert.Equal(t, ilerr.FileNotFound, errs.All()[0].Code())
}

func TestCheckUnitStopsAfterParseError(t *testing.T) {
	dir := t.TempDir()
	u := writeShadowSource(t, dir, "A.shadow")

	frontend := &fakeFrontend{
		parseErrs: (*ilerr.Errors)(nil).With(ilerr.New(ilerr.Syntax{Message: "unexpected token"})),
	}
	decl, errs := CheckUnit(frontend, types.NewTypeCtx(), u)
	assert.Nil(t, decl)
	assert.True(t, errs.HasError())
}

func TestCheckUnitPropagatesIOErrorFromParse(t *testing.T) {
	dir := t.TempDir()
	u := writeShadowSource(t, dir, "A.shadow")

	frontend := &fakeFrontend{parseErr: errors.New("boom")}
	_, errs := CheckUnit(frontend, types.NewTypeCtx(), u)
	assert.True(t, errs.HasError())
}

func TestCheckUnitRunsTypeCheckAfterCleanParse(t *testing.T) {
	dir := t.TempDir()
	u := writeShadowSource(t, dir, "A.shadow")

	class := types.NewClass("Empty", "app", types.Public)
	expectedDecl := &ast.ModuleDecl{Type: class}
	frontend := &fakeFrontend{checkDecl: expectedDecl}

	decl, errs := CheckUnit(frontend, types.NewTypeCtx(), u)
	assert.True(t, frontend.parseCalled)
	assert.Same(t, expectedDecl, decl)
	assert.False(t, errs.HasError())
}

func TestRequiredFieldsSkipsNullable(t *testing.T) {
	class := types.NewClass("Widget", "app", types.Public)
	class.Fields.Add("name", types.ModifiedType{Type: types.Primitive(types.Int)})
	class.Fields.Add("nickname", types.ModifiedType{Type: types.Primitive(types.Int), Modifiers: types.Nullable})

	required := requiredFields(class)
	assert.Equal(t, []string{"name"}, required)
}
