// Package layout computes a 2D layout for directed graphs suitable for
// rendering hierarchical diagrams: dataflow graphs, dependency trees,
// pipeline diagrams.
//
// The core is a Sugiyama-style pipeline run over a mutable Graph:
// cycle removal, network-simplex rank assignment, dummy-vertex
// insertion, barycenter/median crossing reduction, and Brandes-Köpf
// coordinate assignment. See Builder for the entry point.
package layout
