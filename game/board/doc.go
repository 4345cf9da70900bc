// Package board implements the rectangular grid the play engine runs on:
// cell storage, orthogonal neighbor enumeration, a stable content hash,
// connected-group / liberty finding, and the optional per-cell fog
// overlay.
//
// Core Types:
//
// Board is a width x height grid of Color values. FindGroups partitions
// a Board's occupied cells into maximal same-color connected components
// and reports each one's liberties. Visibility is an optional overlay of
// the same shape used by the fog modifier to hide individual stones from
// a subset of teams.
//
// Everything here is pure: no component mutates a Board or Visibility it
// was not explicitly asked to mutate, and none of it knows about turns,
// captures, or rule modifiers — that belongs to package play.
package board
