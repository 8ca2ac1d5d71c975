// Package tuio maintains the live set of cursors, objects and blobs reported
// by a TUIO 1.x tracker and notifies listeners about their lifecycle.
//
// Ownership boundary:
//   - Client owns the bound socket, the receive worker and the listener list.
//   - Each profile (2Dcur, 2Dobj, 2Dblb) owns its committed registry, its
//     staging area, its alive list and its frame clock.
//   - Listeners only ever see value copies; the registry never hands out
//     pointers to committed entities.
//
// Frame contract: set and alive messages are staged until the profile's fseq
// message arrives. Accepted frames commit removals, then additions, then
// updates, then exactly one Refresh. Stale frames discard the staged data
// without touching the committed registry.
package tuio
