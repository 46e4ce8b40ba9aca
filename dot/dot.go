// Package dot renders property graph snapshots as Graphviz digraphs.
// Nodes are named c<id> after the property's arena index; edges point from
// the property read to the property whose binding read it.
package dot

import (
	"fmt"
	"io"

	"github.com/delaneyj/propertybindings/property"
)

//go:generate qtc -file=graph.qtpl

func Render(name string, snap property.Snapshot) string {
	return Graph(name, snap)
}

func Write(w io.Writer, name string, snap property.Snapshot) {
	WriteGraph(w, name, snap)
}

func label(n property.Node) string {
	if n.Description != "" {
		return n.Description
	}
	return fmt.Sprintf("property#%d", n.ID)
}
