package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

// minimalSpecYAML returns a spec that passes validateSpec and renders.
func minimalSpecYAML() []byte {
	return []byte(`package: greeting
imports:
  - path: example.com/project/store
providers:
  - type: store.Store
    constructor: store.NewMemory
  - type: string
    name: hello-prefix
    constructor: defaultPrefix
  - type: "*Service"
    constructor: NewService
    returnsError: true
    deps:
      - type: store.Store
      - type: string
        name: hello-prefix
`)
}

// minimalSpecJSON is minimalSpecYAML in JSON form.
func minimalSpecJSON() []byte {
	return []byte(`{
  "package": "greeting",
  "func": "RegisterGreeting",
  "providers": [
    { "type": "string", "name": "hello-prefix", "constructor": "defaultPrefix" },
    { "type": "*Service", "constructor": "NewService", "deps": [
      { "type": "string", "name": "hello-prefix" }
    ] }
  ]
}`)
}

// writeTempFile writes a file under dir/name and returns its full path.
func writeTempFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, content, 0o644))
	return p
}

//
// -----------------------------------------------------------------------------
// writeFileAtomic() seam helpers
// -----------------------------------------------------------------------------

// fakeTempFile is a controllable file-like object for writeFileAtomic tests.
// It lets tests force errors on Write and Close without touching real files.
type fakeTempFile struct {
	fileName string
	writeErr error
	closeErr error
}

func (f *fakeTempFile) Name() string { return f.fileName }

func (f *fakeTempFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(p), nil
}

func (f *fakeTempFile) Close() error { return f.closeErr }

// restoreWriteSeams puts the real file hooks back when the test ends.
func restoreWriteSeams(t *testing.T) {
	t.Helper()

	origCreate, origRemove, origChmod, origRename := createTempFile, removeFile, chmodFile, renameFile
	t.Cleanup(func() {
		createTempFile = origCreate
		removeFile = origRemove
		chmodFile = origChmod
		renameFile = origRename
	})
}
