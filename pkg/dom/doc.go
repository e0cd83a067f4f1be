// Package dom implements the live node tree that tessera renders into.
//
// A Document owns element and text nodes, hands out document-unique node
// IDs, and counts every mutation applied to its tree. The block and vdom
// packages treat this package as their node-tree primitive: they create
// nodes, assign properties, insert and remove children, and deep-clone
// compiled skeletons through it.
//
// # Mutation recording
//
// Attach a Recorder with Document.SetRecorder to observe every mutation as
// it happens. The server package uses this to translate mutations into
// binary patches for the thin client; tests use Document.Mutations to
// assert that dirty-checked updates touch nothing.
//
// # Serialization
//
// Node.HTML serializes a subtree to HTML. Element nodes carry their node ID
// as a data-nid attribute so a client can address later patches.
package dom
