// Package request correlates asynchronous dialog responses with the caller
// that asked for them.
//
// Every invocation gets a Token. The Table maps live tokens to Invocation
// entries; a response is accepted only when its token is in the table, and
// each Invocation moves from Pending to Resolved or Cancelled exactly once.
// Responses for unknown or already-settled tokens are dropped without side
// effects.
package request
