package block

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tessera-ui/tessera/pkg/dom"
	"github.com/tessera-ui/tessera/pkg/vdom"
)

func counterTemplate(p Getter) *vdom.VNode {
	return vdom.H("div", vdom.Props{"class": "counter"},
		vdom.H("span", vdom.Props{"class": "label"}, p.Get("label")),
		vdom.H("span", vdom.Props{"class": "value"}, p.Get("value")),
	)
}

func mountPoint(t *testing.T) (*dom.Document, *dom.Node) {
	t.Helper()
	doc := dom.NewDocument()
	return doc, doc.CreateElement("body")
}

func TestDefineCompilesOnce(t *testing.T) {
	calls := 0
	def := MustDefine(func(p Getter) *vdom.VNode {
		calls++
		return counterTemplate(p)
	})

	doc, body := mountPoint(t)
	for i := 0; i < 3; i++ {
		inst := def.Instance(Props{"label": "n", "value": i})
		if err := inst.Mount(body); err != nil {
			t.Fatalf("Mount: %v", err)
		}
	}
	_ = doc

	if calls != 1 {
		t.Errorf("template invoked %d times, want 1", calls)
	}
}

func TestCompilationDeterminism(t *testing.T) {
	tmpl := func(p Getter) *vdom.VNode {
		return vdom.H("article", vdom.Props{"id": p.Get("id"), "class": "post", "lang": p.Get("lang")},
			vdom.H("h2", nil, p.Get("title")),
			vdom.H("p", nil, "static intro ", p.Get("body"), " static outro"),
		)
	}

	a := MustDefine(tmpl)
	b := MustDefine(tmpl)

	type tuple struct {
		Kind  string
		Path  []int
		Name  string
		Index int
		Key   string
	}
	tuples := func(d *Definition) []tuple {
		out := make([]tuple, 0, len(d.edits))
		for _, e := range d.edits {
			out = append(out, tuple{e.kind.String(), e.path, e.name, e.index, e.key})
		}
		return out
	}

	if diff := cmp.Diff(tuples(a), tuples(b)); diff != "" {
		t.Errorf("edit lists differ between compilations (-first +second):\n%s", diff)
	}
}

func TestEditListShape(t *testing.T) {
	def := MustDefine(counterTemplate)

	if def.EditCount() != 2 {
		t.Fatalf("EditCount() = %d, want 2", def.EditCount())
	}
	for _, e := range def.edits {
		if e.kind != editChild {
			t.Errorf("edit kind = %v, want Child", e.kind)
		}
	}
	if def.edits[0].key != "label" || def.edits[1].key != "value" {
		t.Errorf("edit keys = %q, %q; want label, value", def.edits[0].key, def.edits[1].key)
	}
	if diff := cmp.Diff([]int{0}, def.edits[0].path); diff != "" {
		t.Errorf("first edit path (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1}, def.edits[1].path); diff != "" {
		t.Errorf("second edit path (-want +got):\n%s", diff)
	}
}

func TestSkeletonPurity(t *testing.T) {
	def := MustDefine(func(p Getter) *vdom.VNode {
		return vdom.H("div", vdom.Props{"title": p.Get("title")},
			"static",
			p.Get("middle"),
			vdom.H("span", nil, p.Get("inner")),
		)
	})

	var walk func(n *dom.Node)
	walk = func(n *dom.Node) {
		for _, name := range n.PropNames() {
			v, _ := n.Prop(name)
			if _, ok := v.(placeholder); ok {
				t.Errorf("placeholder survived in skeleton prop %q", name)
			}
		}
		for i := 0; i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(def.skeleton)

	// The dynamic prop and the dynamic child must simply be absent.
	if _, ok := def.skeleton.Prop("title"); ok {
		t.Error("dynamic prop should not be assigned in the skeleton")
	}
	if got := def.skeleton.ChildCount(); got != 2 {
		t.Errorf("skeleton ChildCount() = %d, want 2 (hole leaves no node)", got)
	}
}

func TestSkeletonPathSkipsHoles(t *testing.T) {
	// A hole before a static sibling must not shift the sibling's
	// recorded path: paths address the skeleton, where holes are absent.
	def := MustDefine(func(p Getter) *vdom.VNode {
		return vdom.H("div", nil,
			p.Get("first"),
			vdom.H("span", nil, p.Get("second")),
		)
	})

	if def.EditCount() != 2 {
		t.Fatalf("EditCount() = %d, want 2", def.EditCount())
	}
	second := def.edits[1]
	if diff := cmp.Diff([]int{0}, second.path); diff != "" {
		t.Errorf("span edit path (-want +got):\n%s", diff)
	}
	if second.index != 0 {
		t.Errorf("span edit index = %d, want 0", second.index)
	}

	_, body := mountPoint(t)
	inst := def.Instance(Props{"first": "a", "second": "b"})
	if err := inst.Mount(body); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	root := inst.Root()
	if root.Child(0).Text() != "a" {
		t.Errorf("hole text = %q, want a", root.Child(0).Text())
	}
	if root.Child(1).Tag() != "span" || root.Child(1).Child(0).Text() != "b" {
		t.Error("static sibling mounted at wrong position")
	}
}

func TestMountAttributeEdit(t *testing.T) {
	def := MustDefine(func(p Getter) *vdom.VNode {
		return vdom.H("button", vdom.Props{"count": p.Get("n")})
	})

	_, body := mountPoint(t)
	inst := def.Instance(Props{"n": 5})
	if err := inst.Mount(body); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	if v, _ := inst.Root().Prop("count"); v != 5 {
		t.Errorf("count = %v, want 5", v)
	}
}

func TestMountOwnsParent(t *testing.T) {
	doc, body := mountPoint(t)
	body.AppendChild(doc.CreateText("stale"))

	def := MustDefine(counterTemplate)
	inst := def.Instance(Props{"label": "l", "value": 1})
	if err := inst.Mount(body); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	if body.ChildCount() != 1 || body.Child(0) != inst.Root() {
		t.Error("mount should replace the parent's prior content")
	}
}

func TestPatchDirtyCheck(t *testing.T) {
	def := MustDefine(counterTemplate)
	doc, body := mountPoint(t)

	inst := def.Instance(Props{"label": "l", "value": 1})
	if err := inst.Mount(body); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	before := doc.Mutations()
	same := def.Instance(Props{"label": "l", "value": 1})
	if err := inst.Patch(same); err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if got := doc.Mutations(); got != before {
		t.Errorf("identical patch recorded %d mutations, want 0", got-before)
	}
}

func TestPatchPropagation(t *testing.T) {
	def := MustDefine(func(p Getter) *vdom.VNode {
		return vdom.H("span", nil, p.Get("label"))
	})
	_, body := mountPoint(t)

	inst := def.Instance(Props{"label": "a"})
	if err := inst.Mount(body); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if err := inst.Patch(def.Instance(Props{"label": "b"})); err != nil {
		t.Fatalf("Patch: %v", err)
	}

	if got := inst.Root().Child(0).Text(); got != "b" {
		t.Errorf("slot text = %q, want b", got)
	}
	if got := inst.Props()["label"]; got != "b" {
		t.Errorf("instance props not advanced, label = %v", got)
	}
}

func TestPatchAttributeEdit(t *testing.T) {
	def := MustDefine(func(p Getter) *vdom.VNode {
		return vdom.H("input", vdom.Props{"value": p.Get("v"), "type": "text"})
	})
	doc, body := mountPoint(t)

	inst := def.Instance(Props{"v": "x"})
	if err := inst.Mount(body); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	before := doc.Mutations()
	if err := inst.Patch(def.Instance(Props{"v": "y"})); err != nil {
		t.Fatalf("Patch: %v", err)
	}

	if v, _ := inst.Root().Prop("value"); v != "y" {
		t.Errorf("value = %v, want y", v)
	}
	if got := doc.Mutations() - before; got != 1 {
		t.Errorf("attribute patch recorded %d mutations, want 1", got)
	}
}

func TestPatchSharedPropKey(t *testing.T) {
	// One prop key read by several slots: every slot dirty-checks against
	// the same pre-patch value, so all of them update.
	def := MustDefine(func(p Getter) *vdom.VNode {
		return vdom.H("div", vdom.Props{"data-n": p.Get("n")},
			vdom.H("span", nil, p.Get("n")),
			vdom.H("span", nil, p.Get("n")),
		)
	})
	_, body := mountPoint(t)

	inst := def.Instance(Props{"n": "1"})
	if err := inst.Mount(body); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if err := inst.Patch(def.Instance(Props{"n": "2"})); err != nil {
		t.Fatalf("Patch: %v", err)
	}

	root := inst.Root()
	if v, _ := root.Prop("data-n"); v != "2" {
		t.Errorf("data-n = %v, want 2", v)
	}
	for i := 0; i < 2; i++ {
		if got := root.Child(i).Child(0).Text(); got != "2" {
			t.Errorf("slot %d text = %q, want 2", i, got)
		}
	}
	if got := inst.Props()["n"]; got != "2" {
		t.Errorf("instance props not advanced, n = %v", got)
	}
}

func TestPatchMissingKeyLeavesTreeUntouched(t *testing.T) {
	doc, body := mountPoint(t)
	def := MustDefine(counterTemplate)

	inst := def.Instance(Props{"label": "l", "value": 1})
	if err := inst.Mount(body); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	// "label" would dirty before "value" is found missing; neither slot
	// may change.
	before := doc.Mutations()
	err := inst.Patch(def.Instance(Props{"label": "changed"}))
	if !errors.Is(err, ErrMissingProp) {
		t.Fatalf("Patch = %v, want ErrMissingProp", err)
	}
	if got := doc.Mutations(); got != before {
		t.Errorf("failed patch recorded %d mutations, want 0", got-before)
	}
	if got := inst.Root().Child(0).Child(0).Text(); got != "l" {
		t.Errorf("slot text = %q, want l", got)
	}
	if got := inst.Props()["label"]; got != "l" {
		t.Errorf("failed patch advanced props, label = %v", got)
	}
}

func TestNestedComposition(t *testing.T) {
	inner := MustDefine(func(p Getter) *vdom.VNode {
		return vdom.H("em", nil, p.Get("text"))
	})
	outer := MustDefine(func(p Getter) *vdom.VNode {
		return vdom.H("div", nil,
			vdom.H("section", nil, p.Get("child")),
		)
	})

	_, body := mountPoint(t)
	mountedInner := inner.Instance(Props{"text": "one"})
	outerInst := outer.Instance(Props{"child": mountedInner})
	if err := outerInst.Mount(body); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	section := outerInst.Root().Child(0)
	if section.Tag() != "section" {
		t.Fatalf("addressed node tag = %q, want section", section.Tag())
	}
	if section.Child(0) != mountedInner.Root() {
		t.Error("nested instance should mount inside the addressed node")
	}
	if got := mountedInner.Root().Child(0).Text(); got != "one" {
		t.Errorf("nested text = %q, want one", got)
	}

	// Patching the outer with a fresh nested instance patches the mounted
	// inner in place instead of replacing it.
	innerRootBefore := mountedInner.Root()
	next := outer.Instance(Props{"child": inner.Instance(Props{"text": "two"})})
	if err := outerInst.Patch(next); err != nil {
		t.Fatalf("Patch: %v", err)
	}

	if section.Child(0) != innerRootBefore {
		t.Error("nested root should survive an outer patch")
	}
	if got := innerRootBefore.Child(0).Text(); got != "two" {
		t.Errorf("nested text after patch = %q, want two", got)
	}
}

func TestCloneIndependence(t *testing.T) {
	def := MustDefine(counterTemplate)

	docA, bodyA := mountPoint(t)
	docB, bodyB := mountPoint(t)

	a := def.Instance(Props{"label": "l", "value": 1})
	b := def.Instance(Props{"label": "l", "value": 1})
	if err := a.Mount(bodyA); err != nil {
		t.Fatalf("Mount a: %v", err)
	}
	if err := b.Mount(bodyB); err != nil {
		t.Fatalf("Mount b: %v", err)
	}

	if a.Root() == b.Root() {
		t.Fatal("instances must not share nodes")
	}

	htmlB := bodyB.Child(0).HTML()
	before := docB.Mutations()
	if err := a.Patch(def.Instance(Props{"label": "l", "value": 2})); err != nil {
		t.Fatalf("Patch: %v", err)
	}

	if docB.Mutations() != before {
		t.Error("patching one instance mutated the other's document")
	}
	if bodyB.Child(0).HTML() != htmlB {
		t.Error("patching one instance changed the other's tree")
	}
	_ = docA
}

func TestPatchBeforeMount(t *testing.T) {
	def := MustDefine(counterTemplate)
	a := def.Instance(Props{"label": "l", "value": 1})
	b := def.Instance(Props{"label": "l", "value": 2})

	if err := a.Patch(b); !errors.Is(err, ErrNotMounted) {
		t.Errorf("Patch before Mount = %v, want ErrNotMounted", err)
	}
}

func TestPatchAcrossDefinitions(t *testing.T) {
	defA := MustDefine(counterTemplate)
	defB := MustDefine(counterTemplate)
	_, body := mountPoint(t)

	a := defA.Instance(Props{"label": "l", "value": 1})
	if err := a.Mount(body); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	b := defB.Instance(Props{"label": "l", "value": 2})
	if err := a.Patch(b); !errors.Is(err, ErrDefinitionMismatch) {
		t.Errorf("cross-definition Patch = %v, want ErrDefinitionMismatch", err)
	}
}

func TestMissingPropKey(t *testing.T) {
	def := MustDefine(counterTemplate)
	_, body := mountPoint(t)

	inst := def.Instance(Props{"label": "l"})
	err := inst.Mount(body)
	if !errors.Is(err, ErrMissingProp) {
		t.Fatalf("Mount with missing key = %v, want ErrMissingProp", err)
	}
	if body.ChildCount() != 0 {
		t.Error("failed mount should leave the parent untouched")
	}

	ok := def.Instance(Props{"label": "l", "value": 1})
	if err := ok.Mount(body); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if err := ok.Patch(def.Instance(Props{"label": "l"})); !errors.Is(err, ErrMissingProp) {
		t.Errorf("Patch with missing key = %v, want ErrMissingProp", err)
	}
}

func TestSlotKindSwitch(t *testing.T) {
	inner := MustDefine(func(p Getter) *vdom.VNode {
		return vdom.H("em", nil, p.Get("text"))
	})
	outer := MustDefine(func(p Getter) *vdom.VNode {
		return vdom.H("div", nil, vdom.H("section", nil, p.Get("child")))
	})
	_, body := mountPoint(t)

	inst := outer.Instance(Props{"child": "plain"})
	if err := inst.Mount(body); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	next := outer.Instance(Props{"child": inner.Instance(Props{"text": "x"})})
	if err := inst.Patch(next); !errors.Is(err, ErrSlotKind) {
		t.Errorf("text→block patch = %v, want ErrSlotKind", err)
	}
}

func TestDefineRejectsBadTemplates(t *testing.T) {
	tests := []struct {
		name string
		fn   Template
	}{
		{"nil root", func(p Getter) *vdom.VNode { return nil }},
		{"bare hole root", func(p Getter) *vdom.VNode { return vdom.Value(p.Get("x")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Define(tt.fn); !errors.Is(err, ErrBadTemplate) {
				t.Errorf("Define = %v, want ErrBadTemplate", err)
			}
		})
	}
}

func TestHoleInterceptionIsKeyAgnostic(t *testing.T) {
	// The surrogate must yield a placeholder for any key, without
	// knowing which keys are valid.
	var got any
	MustDefine(func(p Getter) *vdom.VNode {
		got = p.Get("completely-unanticipated-key")
		return vdom.H("div", nil, got)
	})

	ph, ok := got.(placeholder)
	if !ok {
		t.Fatalf("surrogate read yielded %T, want placeholder", got)
	}
	if ph.key != "completely-unanticipated-key" {
		t.Errorf("placeholder key = %q", ph.key)
	}
}
