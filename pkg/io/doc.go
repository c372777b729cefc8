// Package io reads and writes graphs in the file formats graphdesk supports.
//
// # Formats
//
// The format of a file is chosen from its extension (see [FormatFromPath]):
//
//	.txt   one line per vertex: "0:1:5,2:3"
//	.csv   header "Vertex,Edges (Neighbor:Weight)", then "0","1:5,2:3"
//	.xlsx  the same two columns on a sheet named "Graph"
//	.json  {"vertices":[0,1],"edges":[{"from":0,"to":1,"weight":5,"directed":false}]}
//
// The text, CSV and spreadsheet formats list every adjacency entry of every
// vertex, so an undirected edge appears once under each endpoint. Loading
// replays each entry as an undirected edge; entries already present are
// skipped by the store.
//
// # Error Handling
//
// The text reader is lenient: blank lines, lines without a vertex id and
// malformed neighbor tokens are skipped, and edges the store rejects are
// counted in [LoadReport.Skipped]. The CSV and spreadsheet readers are strict
// and return a [*ParseError] naming the offending row.
//
// # Usage
//
//	g, report, err := io.ImportFile("graph.csv")
//	if err != nil {
//	    return err
//	}
//	err = io.ExportFile(g, "graph.json")
package io
