// Package patch turns rendered fragments into out-of-band display updates.
//
// A patch carries an operation (append-child or replace-contents), the id of
// the container it targets, and the serialized payload the remote consumer
// swaps in. Target ids are pure functions of span identity so the producer
// and the display agree without shared state, regardless of delivery order.
package patch
