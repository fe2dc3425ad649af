// Package csync provides thread-safe concurrent data structures.
//
// Map is a generic map guarded by a read-write mutex. Besides the usual
// Get/Delete/Len it offers the compare-style operations the request
// correlation table relies on:
//
//	pending := csync.NewMap[request.Token, *request.Invocation[string]]()
//	if !pending.SetIfAbsent(token, p) {
//		// token already live, pick another
//	}
//	if p, ok := pending.LoadAndDelete(token); ok {
//		// exactly one caller observes ok == true per stored entry
//	}
package csync
