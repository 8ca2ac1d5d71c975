// Package osc owns the Open Sound Control 1.0 wire contract.
//
// Ownership boundary:
// - message and bundle framing
// - typed argument encode/decode
// - depth-first flattening of nested bundles
//
// Decoding is all-or-nothing: a malformed element anywhere in a packet fails
// the whole packet and no partial result is returned.
package osc
