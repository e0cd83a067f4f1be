// Package protocol defines the binary wire format tessera uses to stream
// node-tree patches to a thin client.
//
// The format is length-delimited frames, each carrying one message:
//
//   - Hello: sent once per session; carries the session ID and the
//     serialized root markup the client should adopt.
//   - Patches: a sequenced batch of Patch records, each addressing an
//     element by its node ID (the data-nid attribute in served markup).
//   - Error: a code and human-readable message.
//
// Encoding uses protobuf-style varints for lengths and counts, and
// length-prefixed UTF-8 for strings. Encoder appends to a reusable
// buffer; Decoder reads with strict bounds checks and allocation limits
// so a malformed or hostile peer cannot force large allocations.
package protocol
