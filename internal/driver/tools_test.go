package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadow-lang/shadowc/internal/config"
	"github.com/shadow-lang/shadowc/internal/ilerr"
)

func TestWriteLLWritesTextToLLPath(t *testing.T) {
	dir := t.TempDir()
	u := Unit{LLPath: filepath.Join(dir, "out.ll")}

	require.NoError(t, WriteLL(u, "define void @f() { ret void }"))

	got, err := os.ReadFile(u.LLPath)
	require.NoError(t, err)
	assert.Equal(t, "define void @f() { ret void }", string(got))
}

func TestAssembleObjectSucceedsWhenToolExitsZero(t *testing.T) {
	dir := t.TempDir()
	u := Unit{ObjectPath: filepath.Join(dir, "out.o")}
	cfg := &config.Configuration{LLC: "true"}

	err := AssembleObject(cfg, u, "; unused by /bin/true")
	assert.NoError(t, err)
}

func TestAssembleObjectWrapsNonZeroExitAsExternalToolErr(t *testing.T) {
	dir := t.TempDir()
	u := Unit{ObjectPath: filepath.Join(dir, "out.o")}
	cfg := &config.Configuration{LLC: "false"}

	err := AssembleObject(cfg, u, "; unused by /bin/false")
	require.Error(t, err)

	toolErr, ok := err.(ilerr.ExternalToolErr)
	require.True(t, ok)
	assert.Equal(t, "false", toolErr.Tool)
}

func TestLinkSucceedsWhenToolExitsZero(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Configuration{Clang: "true"}

	err := Link(cfg, []string{filepath.Join(dir, "a.o")}, filepath.Join(dir, "out"))
	assert.NoError(t, err)
}

func TestLinkAppendsNativeRuntimeObjectWhenSet(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Configuration{Clang: "true", NativeRuntimeObject: "/opt/shadow/runtime.o"}

	err := Link(cfg, []string{filepath.Join(dir, "a.o")}, filepath.Join(dir, "out"))
	assert.NoError(t, err)
}

func TestLinkWrapsNonZeroExitAsExternalToolErr(t *testing.T) {
	cfg := &config.Configuration{Clang: "false"}

	err := Link(cfg, nil, "out")
	require.Error(t, err)

	toolErr, ok := err.(ilerr.ExternalToolErr)
	require.True(t, ok)
	assert.Equal(t, "false", toolErr.Tool)
}
