package batch

import "github.com/verdeflow/trazo-api/internal/domain/entity"

// Tipos de vínculo genealógico entre lotes.
const (
	LinkParentOf   = "parent_of"   // padre -> hijo creado por split
	LinkSplitFrom  = "split_from"  // hijo -> padre del que se dividió
	LinkMergedInto = "merged_into" // secundario -> primario de la fusión
)

// Link es un vínculo etiquetado y dirigido del grafo genealógico.
type Link struct {
	Kind string
	From string // batch ID origen
	To   string // batch ID destino
}

// Lineage es el grafo genealógico explícito de un conjunto de lotes,
// derivado de los punteros almacenados (parent_batch_id, merged_into_batch_id,
// source_batch_id). Los punteros siguen siendo la representación persistida;
// este tipo existe para que el recorrido y la prevención de ciclos sean
// explícitos y verificables.
type Lineage struct {
	children   map[string][]string // padre -> hijos (por split)
	parent     map[string]string   // hijo -> padre
	mergedInto map[string]string   // secundario -> primario
	source     map[string]string   // lote -> raíz transitiva
	links      []Link
}

// BuildLineage deriva el grafo a partir de las filas de lotes.
func BuildLineage(batches []*entity.Batch) *Lineage {
	l := &Lineage{
		children:   make(map[string][]string),
		parent:     make(map[string]string),
		mergedInto: make(map[string]string),
		source:     make(map[string]string),
	}
	for _, b := range batches {
		if b.ParentBatchID != "" {
			l.children[b.ParentBatchID] = append(l.children[b.ParentBatchID], b.ID)
			l.parent[b.ID] = b.ParentBatchID
			l.links = append(l.links,
				Link{Kind: LinkParentOf, From: b.ParentBatchID, To: b.ID},
				Link{Kind: LinkSplitFrom, From: b.ID, To: b.ParentBatchID},
			)
		}
		if b.MergedIntoBatchID != "" {
			l.mergedInto[b.ID] = b.MergedIntoBatchID
			l.links = append(l.links, Link{Kind: LinkMergedInto, From: b.ID, To: b.MergedIntoBatchID})
		}
		if b.SourceBatchID != "" {
			l.source[b.ID] = b.SourceBatchID
		}
	}
	return l
}

// Links devuelve todos los vínculos etiquetados del grafo.
func (l *Lineage) Links() []Link { return l.links }

// Children devuelve los lotes creados al dividir id.
func (l *Lineage) Children(id string) []string { return l.children[id] }

// Parent devuelve el lote del que id se dividió, si existe.
func (l *Lineage) Parent(id string) (string, bool) {
	p, ok := l.parent[id]
	return p, ok
}

// MergedInto devuelve el lote primario al que id se fusionó, si existe.
func (l *Lineage) MergedInto(id string) (string, bool) {
	p, ok := l.mergedInto[id]
	return p, ok
}

// Root sigue la cadena de padres hasta la raíz genealógica de id.
// El cortacircuito sobre visitados evita colgarse ante datos corruptos.
func (l *Lineage) Root(id string) string {
	seen := map[string]bool{id: true}
	cur := id
	for {
		p, ok := l.parent[cur]
		if !ok || seen[p] {
			return cur
		}
		seen[p] = true
		cur = p
	}
}

// WouldCycle indica si añadir un vínculo from -> to crearía un ciclo
// siguiendo padres y fusiones desde to.
func (l *Lineage) WouldCycle(from, to string) bool {
	seen := map[string]bool{}
	cur := to
	for cur != "" && !seen[cur] {
		if cur == from {
			return true
		}
		seen[cur] = true
		if p, ok := l.parent[cur]; ok {
			cur = p
			continue
		}
		if m, ok := l.mergedInto[cur]; ok {
			cur = m
			continue
		}
		cur = ""
	}
	return false
}
