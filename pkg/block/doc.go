// Package block implements tessera's compiled rendering strategy.
//
// A template function is compiled exactly once: it is invoked with a
// surrogate prop accessor whose every read yields a tagged placeholder,
// and the resulting virtual tree is traversed once to produce a static
// node skeleton plus a flat edit list recording where each placeholder
// landed. Instances of the definition then mount by cloning the skeleton
// and patch by dirty-checking only the recorded dynamic slots, so an
// update costs O(dynamic slots) instead of O(tree size).
//
//	counter := block.MustDefine(func(p block.Getter) *vdom.VNode {
//	    return vdom.H("div", vdom.Props{"class": "counter"},
//	        vdom.H("span", nil, p.Get("label")),
//	        vdom.H("span", nil, p.Get("value")),
//	    )
//	})
//
//	a := counter.Instance(block.Props{"label": "clicks", "value": 0})
//	if err := a.Mount(parent); err != nil { ... }
//
//	b := counter.Instance(block.Props{"label": "clicks", "value": 1})
//	if err := a.Patch(b); err != nil { ... }
//
// A child slot whose value is itself a block *Instance is mounted into
// the slot's element and patched recursively, which is how blocks
// compose. Instances may only be patched against instances of the same
// definition.
package block
