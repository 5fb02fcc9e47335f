// Package ast holds the paragraph tree built by the parser and rewritten by
// the rules.
//
// Every value that a rule may change is an OffsetValue: the original text
// anchored at its byte span plus an optional replacement. Nodes are never
// removed or reordered once a paragraph is built; rules only set or revert
// values, and the reporter splices the differences back by offset.
package ast
