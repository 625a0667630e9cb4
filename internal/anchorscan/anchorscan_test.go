package anchorscan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, html string) []string {
	t.Helper()
	var ids []string
	err := WalkIDs(strings.NewReader(html), func(id string) bool {
		ids = append(ids, id)
		return true
	})
	require.NoError(t, err)
	return ids
}

func TestWalkIDs(t *testing.T) {
	t.Parallel()

	t.Run("Should visit ids in document order", func(t *testing.T) {
		t.Parallel()
		html := `<html><body>
			<h1 id="first">a</h1>
			<div><p id="second">b</p></div>
			<span id="third">c</span>
		</body></html>`

		assert.Equal(t, []string{"first", "second", "third"}, collect(t, html))
	})

	t.Run("Should include ids outside the body", func(t *testing.T) {
		t.Parallel()
		html := `<html id="root"><head><meta id="m"></head><body id="b"></body></html>`

		assert.Equal(t, []string{"root", "m", "b"}, collect(t, html))
	})

	t.Run("Should skip empty id attributes", func(t *testing.T) {
		t.Parallel()
		html := `<div id="">x</div><div id="real">y</div>`

		assert.Equal(t, []string{"real"}, collect(t, html))
	})

	t.Run("Should stop when the visitor returns false", func(t *testing.T) {
		t.Parallel()
		html := `<div id="a"></div><div id="b"></div><div id="c"></div>`

		var visited []string
		err := WalkIDs(strings.NewReader(html), func(id string) bool {
			visited = append(visited, id)
			return id != "b"
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, visited)
	})

	t.Run("Should tolerate malformed markup", func(t *testing.T) {
		t.Parallel()
		html := `<div id="open"><p id="inner">never closed`

		assert.Equal(t, []string{"open", "inner"}, collect(t, html))
	})

	t.Run("Should find nothing in an id-free document", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, collect(t, `<html><body><p>plain</p></body></html>`))
	})

	t.Run("Should report duplicate ids as they appear", func(t *testing.T) {
		t.Parallel()
		html := `<div id="dup"></div><span id="dup"></span>`

		assert.Equal(t, []string{"dup", "dup"}, collect(t, html))
	})
}
