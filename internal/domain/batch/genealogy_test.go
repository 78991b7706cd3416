package batch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verdeflow/trazo-api/internal/domain/batch"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
)

// Escenario: raiz se divide en h1 y h2; h2 vuelve a dividirse en n1;
// sec se fusiona dentro de h1.
func buildTestLineage() *batch.Lineage {
	return batch.BuildLineage([]*entity.Batch{
		{ID: "raiz"},
		{ID: "h1", ParentBatchID: "raiz", SourceBatchID: "raiz"},
		{ID: "h2", ParentBatchID: "raiz", SourceBatchID: "raiz"},
		{ID: "n1", ParentBatchID: "h2", SourceBatchID: "raiz"},
		{ID: "sec", MergedIntoBatchID: "h1"},
	})
}

func TestLineage_Children(t *testing.T) {
	l := buildTestLineage()
	assert.ElementsMatch(t, []string{"h1", "h2"}, l.Children("raiz"))
	assert.ElementsMatch(t, []string{"n1"}, l.Children("h2"))
	assert.Empty(t, l.Children("n1"))
}

func TestLineage_ParentYMergedInto(t *testing.T) {
	l := buildTestLineage()

	p, ok := l.Parent("n1")
	require.True(t, ok)
	assert.Equal(t, "h2", p)

	_, ok = l.Parent("raiz")
	assert.False(t, ok)

	m, ok := l.MergedInto("sec")
	require.True(t, ok)
	assert.Equal(t, "h1", m)
}

func TestLineage_RootSigueLaCadena(t *testing.T) {
	l := buildTestLineage()
	assert.Equal(t, "raiz", l.Root("n1"))
	assert.Equal(t, "raiz", l.Root("h1"))
	assert.Equal(t, "raiz", l.Root("raiz"))
	assert.Equal(t, "sec", l.Root("sec")) // la fusión no cambia la raíz de split
}

func TestLineage_Links(t *testing.T) {
	l := buildTestLineage()
	assert.Contains(t, l.Links(), batch.Link{Kind: batch.LinkParentOf, From: "raiz", To: "h1"})
	assert.Contains(t, l.Links(), batch.Link{Kind: batch.LinkSplitFrom, From: "n1", To: "h2"})
	assert.Contains(t, l.Links(), batch.Link{Kind: batch.LinkMergedInto, From: "sec", To: "h1"})
}

func TestLineage_WouldCycle(t *testing.T) {
	l := buildTestLineage()
	// Fusionar la raíz dentro de su nieto crearía un ciclo.
	assert.True(t, l.WouldCycle("raiz", "n1"))
	// Entre ramas independientes no hay ciclo.
	assert.False(t, l.WouldCycle("h1", "n1"))
}

func TestLineage_RootToleraDatosCorruptos(t *testing.T) {
	// Punteros de padre circulares (nunca deberían persistirse): Root termina.
	l := batch.BuildLineage([]*entity.Batch{
		{ID: "a", ParentBatchID: "b"},
		{ID: "b", ParentBatchID: "a"},
	})
	assert.NotPanics(t, func() { l.Root("a") })
}
