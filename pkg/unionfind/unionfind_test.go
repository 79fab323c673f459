package unionfind

import (
	"testing"

	"github.com/parascale/graphkit/pkg/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSingletons(t *testing.T) {
	a := New(5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, i, a.Find(i))
	}
}

func TestMergeUnifiesComponent(t *testing.T) {
	a := New(4)
	assert.True(t, a.Merge(0, 1))
	assert.True(t, a.Merge(1, 2))
	assert.Equal(t, a.Find(0), a.Find(2))
	assert.NotEqual(t, a.Find(0), a.Find(3))
}

func TestMergeSameComponentIsEmpty(t *testing.T) {
	a := New(3)
	require.True(t, a.Merge(0, 1))
	assert.False(t, a.Merge(0, 1))
	assert.False(t, a.Merge(1, 0))
}

func TestFindAndCompressShortensPath(t *testing.T) {
	a := New(4)
	a.Merge(0, 1)
	a.Merge(1, 2)
	a.Merge(2, 3)
	root := a.FindAndCompress(0)
	assert.Equal(t, a.Find(3), root)
}

func TestConcurrentMergeFormsSingleComponent(t *testing.T) {
	n := 2000
	a := New(n)
	pairs := make([][2]int, n-1)
	for i := 0; i < n-1; i++ {
		pairs[i] = [2]int{i, i + 1}
	}
	parallel.DoAll(pairs, func(p [2]int) {
		a.Merge(p[0], p[1])
	})
	root := a.Find(0)
	for i := 1; i < n; i++ {
		assert.Equal(t, root, a.Find(i), "node %d not merged", i)
	}
}

func TestLinkMergesComponents(t *testing.T) {
	a := New(4)
	a.Link(0, 1)
	a.Link(2, 3)
	assert.Equal(t, a.Find(0), a.Find(1))
	assert.Equal(t, a.Find(2), a.Find(3))
	assert.NotEqual(t, a.Find(0), a.Find(2))
	a.Link(1, 2)
	assert.Equal(t, a.Find(0), a.Find(3))
}

func TestHookMinReturnsVictimOnSkipMatch(t *testing.T) {
	a := New(3)
	skip := a.Find(1)
	victim, ok := a.HookMin(0, 1, skip)
	require.True(t, ok)
	// 1 is the larger root, so it is the one hooked under 0.
	assert.Equal(t, 1, victim)
	assert.Equal(t, a.Find(0), a.Find(1))
}

func TestHookMinNoOpOnSameComponent(t *testing.T) {
	a := New(2)
	a.Merge(0, 1)
	_, ok := a.HookMin(0, 1, 99)
	assert.False(t, ok)
}

func TestLabelsAssignsConsistentComponentIDs(t *testing.T) {
	a := New(6)
	a.Merge(0, 1)
	a.Merge(1, 2)
	a.Merge(3, 4)
	labels := a.Labels()
	assert.Equal(t, labels[0], labels[1])
	assert.Equal(t, labels[1], labels[2])
	assert.Equal(t, labels[3], labels[4])
	assert.NotEqual(t, labels[0], labels[3])
	assert.NotEqual(t, labels[0], labels[5])
}
