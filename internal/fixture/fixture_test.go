package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adimarco/cria"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_BuildsScopeTree(t *testing.T) {
	path := writeFixture(t, `
budget: 100
provider: anthropic
model: claude-3-5-sonnet-20241022
root:
  scope:
    id: root
    children:
      - message:
          id: sys
          role: system
          text: be terse
      - scope:
          id: history
          priority: 5
          strategy: omit
          children:
            - message:
                id: u1
                role: user
                text: hello
`)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, f.Budget)
	assert.Equal(t, "anthropic", f.Provider)

	root, err := f.ToNode()
	require.NoError(t, err)

	scope, ok := root.(*cria.Scope)
	require.True(t, ok)
	assert.Equal(t, "root", scope.ID)
	require.Len(t, scope.Children, 2)

	sys := scope.Children[0].(*cria.Message)
	assert.Equal(t, cria.RoleSystem, sys.Role)
	assert.Equal(t, "be terse", sys.Children[0].(cria.TextPart).Text)

	history := scope.Children[1].(*cria.Scope)
	assert.Equal(t, 5, history.Priority)
	assert.NotNil(t, history.Strategy)
}

func TestLoad_StrategySpecs(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr bool
	}{
		{spec: "omit"},
		{spec: "lastn:3"},
		{spec: "truncate:50:start"},
		{spec: "truncate:50"},
		{spec: "summary"},
		{spec: "lastn:x", wantErr: true},
		{spec: "unknown", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			strat, err := resolveStrategy(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, strat)
		})
	}
}

func TestToNode_NodeWithNeitherVariantFails(t *testing.T) {
	f := &File{Root: NodeSpec{}}
	_, err := f.ToNode()
	assert.Error(t, err)
}
