package block

import "github.com/tessera-ui/tessera/pkg/vdom"

// Getter is the prop accessor a template function is written against.
// During compilation it is backed by a surrogate whose every read yields a
// placeholder; at runtime it is backed by the instance's concrete Props.
type Getter interface {
	Get(key string) any
}

// Template builds one reusable UI fragment from a prop accessor. A
// template must be pure: it is invoked exactly once, during compilation.
type Template func(props Getter) *vdom.VNode

// Props maps prop keys to concrete values for one instance.
type Props map[string]any

// Get implements Getter.
func (p Props) Get(key string) any {
	return p[key]
}

// placeholder stands in for the value props[key] will hold at
// instantiation time. Placeholders exist only between template capture and
// compilation; they are never written to the node tree.
type placeholder struct {
	key string
}

// holes is the compile-time surrogate. Every read returns a fresh
// placeholder tagged with the key, regardless of which keys exist.
type holes struct{}

// Get implements Getter.
func (holes) Get(key string) any {
	return placeholder{key: key}
}
