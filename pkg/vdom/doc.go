// Package vdom provides tessera's virtual node model and the naive
// recursive diff strategy.
//
// VNode is a plain description of a node: an element with a tag,
// properties, and ordered children; a text leaf; or a raw dynamic value.
// Templates build VNodes with the H helper:
//
//	vdom.H("div", vdom.Props{"class": "card"},
//	    vdom.H("h1", nil, "Title"),
//	    vdom.H("p", nil, "Content"),
//	)
//
// Render materializes a VNode tree as live dom nodes. Patch walks two
// VNode trees position by position and applies the differences to the
// live tree in place. This is the straightforward strategy; the block
// package implements the compiled strategy that avoids tree comparison
// entirely.
//
// Children are matched by position only. Keyed reconciliation and
// move detection are deliberately out of scope.
package vdom
