package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdlive/pkg/block"
	"github.com/yaklabco/mdlive/pkg/editor"
)

func TestTransition(t *testing.T) {
	t.Parallel()

	a := &block.Block{ID: "a"}
	b := &block.Block{ID: "b"}
	prev := editor.ActiveBlock{ID: "a", Block: a}

	tests := []struct {
		name     string
		resolved *block.Block
		want     editor.ActiveBlock
		changed  bool
	}{
		{"same block", a, prev, false},
		{"same id, new value", &block.Block{ID: "a"}, prev, false},
		{"other block", b, editor.ActiveBlock{ID: "b", Block: b}, true},
		{"unresolved", nil, prev, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, changed := editor.Transition(prev, tt.resolved)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("from nothing", func(t *testing.T) {
		t.Parallel()

		var zero editor.ActiveBlock
		assert.True(t, zero.IsZero())
		got, changed := editor.Transition(zero, a)
		assert.True(t, changed)
		assert.Same(t, a, got.Block)
	})
}
