package cria

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertUniqueIDs(t *testing.T) {
	tests := []struct {
		name    string
		root    Node
		wantErr bool
	}{
		{
			name: "distinct ids pass",
			root: scope("root", 0, nil,
				msg("a", RoleUser, text("hi")),
				scope("inner", 0, nil, msg("b", RoleUser, text("there"))),
			),
		},
		{
			name: "empty ids are not tracked",
			root: scope("", 0, nil,
				msg("", RoleUser, text("hi")),
				msg("", RoleUser, text("there")),
			),
		},
		{
			name: "duplicate scope ids fail",
			root: scope("root", 0, nil,
				scope("dup", 0, nil),
				scope("dup", 0, nil),
			),
			wantErr: true,
		},
		{
			name:    "scope and message sharing an id fail",
			root:    scope("dup", 0, nil, msg("dup", RoleUser, text("hi"))),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := assertUniqueIDs(tt.root)
			if tt.wantErr {
				var shapeErr *ShapeError
				require.ErrorAs(t, err, &shapeErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRender_DuplicateIDsFailBeforeLayout(t *testing.T) {
	root := scope("root", 0, nil,
		msg("dup", RoleUser, text("one")),
		msg("dup", RoleUser, text("two")),
	)
	_, err := Render(context.Background(), root, RenderOptions{Provider: newFakeProvider()})
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
}
