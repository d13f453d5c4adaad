// Package sanitizer normalizes client-supplied text before validation and
// persistence. Reservation requests arrive from a public wizard, so names,
// documents and notes are whitespace-normalized and phones are canonicalized
// to E.164.
package sanitizer
