// Package io reads and writes preference instances.
//
// # Overview
//
// An instance is a [bipartite.Graph]: two vertex partitions, a critical
// flag per vertex, and a weak preference list per vertex. Two encodings
// are supported, the sectioned text format used by the matching tools
// this project grew out of, and a JSON format for integration with other
// programs.
//
// # Text Format
//
//	# residents
//	@PartitionA
//	a1 (1), a2, a3 ;
//	@End
//
//	@PartitionB
//	b1, b2 (1) ;
//	@End
//
//	@PreferenceListsA
//	a1 : b1, {b2, b3} ;
//	a2 : b2 ;
//	@End
//
//	@PreferenceListsB
//	b1 : {a1, a2} ;
//	@End
//
// A vertex declaration may carry a lower quota in parentheses. A lower
// quota of 1 marks the vertex critical; "(l, u)" is accepted when the
// upper quota is 1. Braces group tied neighbours. "#" starts a comment
// that runs to the end of the line. Partition sections must come before
// the preference-list sections that use their vertices.
//
// # JSON Format
//
//	{
//	  "vertices": [
//	    {"id": "a1", "side": "a", "critical": true},
//	    {"id": "b1", "side": "b"}
//	  ],
//	  "preferences": {
//	    "a1": [["b1"]],
//	    "b1": [["a1"]]
//	  }
//	}
//
// Each preference list is an array of rank groups, best first.
//
// # Import
//
// [ImportInstance] picks the format from the file extension (".json" is
// JSON, anything else is text). [ReadInstance] and [ReadJSON] read from
// any io.Reader. Every reader validates the finished graph, so a returned
// graph is ready for the engine. Format errors carry INVALID_FORMAT and
// the line number; inconsistent lists carry INCONSISTENT_PREFERENCES.
//
// # Export
//
// [WriteInstance], [WriteJSON] and [ExportInstance] write a graph back out.
// Output is canonical: vertices in handle order, groups in rank order, so
// [Fingerprint] of a re-imported instance is unchanged.
package io
