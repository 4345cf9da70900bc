// Package play implements the play-phase state machine: the authoritative
// rules engine that validates and applies Place/Pass/Cancel actions
// against a SharedState, producing a new state or a well-defined
// rejection (game/state.MakeActionError).
package play
