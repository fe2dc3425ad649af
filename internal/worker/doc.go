// Package worker is the local backend behind the TUI: the account, its
// settings, notes and two-factor enrolment, persisted in a sqlite file.
//
// Every exported operation takes a context and returns plain errors. Failures
// are wrapped in *OpError so callers can show the operation that failed and
// still match the cause with errors.Is.
package worker
