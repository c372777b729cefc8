package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

// Document is the JSON and BSON wire form of a graph snapshot.
type Document struct {
	Vertices []int        `json:"vertices" bson:"vertices"`
	Edges    []EdgeRecord `json:"edges" bson:"edges"`
}

// EdgeRecord is one edge of a [Document]. Undirected edges are listed once
// with From < To.
type EdgeRecord struct {
	From     int  `json:"from" bson:"from"`
	To       int  `json:"to" bson:"to"`
	Weight   int  `json:"weight" bson:"weight"`
	Directed bool `json:"directed" bson:"directed"`
}

// FromStore converts g to a Document. Vertices keep insertion order; an
// adjacency pair stored in both directions with the same weight becomes one
// undirected record, any other entry a directed one.
func FromStore(g *graph.Store) Document {
	doc := Document{Vertices: g.InsertionOrder(), Edges: []EdgeRecord{}}
	if doc.Vertices == nil {
		doc.Vertices = []int{}
	}
	for u, ns := range rows(g) {
		for _, n := range ns {
			back, ok := g.Weight(n.ID, u)
			switch {
			case ok && back == n.Weight && u < n.ID:
				doc.Edges = append(doc.Edges, EdgeRecord{From: u, To: n.ID, Weight: n.Weight})
			case ok && back == n.Weight:
				// listed under the smaller endpoint
			default:
				doc.Edges = append(doc.Edges, EdgeRecord{From: u, To: n.ID, Weight: n.Weight, Directed: true})
			}
		}
	}
	return doc
}

// ToStore builds a graph from d. Edges the store rejects abort the
// conversion.
func (d Document) ToStore() (*graph.Store, error) {
	g := graph.New()
	for _, v := range d.Vertices {
		g.AddVertex(v)
	}
	for _, e := range d.Edges {
		if err := g.AddEdge(e.From, e.To, e.Weight, e.Directed); err != nil {
			return nil, fmt.Errorf("edge %d->%d: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// MarshalJSON encodes g as an indented JSON document.
func MarshalJSON(g *graph.Store) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON encodes g as an indented JSON document.
func WriteJSON(w io.Writer, g *graph.Store) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromStore(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a JSON document from r.
func ReadJSON(r io.Reader) (*graph.Store, LoadReport, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, LoadReport{}, fmt.Errorf("decode: %w", err)
	}
	g, err := doc.ToStore()
	if err != nil {
		return nil, LoadReport{}, err
	}
	return g, report(g, 0), nil
}
