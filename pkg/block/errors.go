package block

import "errors"

// ErrDefinitionMismatch is returned when an instance is patched against an
// instance created from a different definition. Edit lists and cached node
// targets are only interchangeable within one definition, so this is a
// caller configuration error rather than something patch can recover from.
var ErrDefinitionMismatch = errors.New("tessera: cannot patch across block definitions")

// ErrNotMounted is returned when Patch is called before Mount. An unmounted
// instance has no cached node targets, so there is nothing to update.
var ErrNotMounted = errors.New("tessera: block instance is not mounted")

// ErrMissingProp is returned when the props supplied to an instance lack a
// key that the definition's edit list references. The missing key is
// included in the wrapped message.
var ErrMissingProp = errors.New("tessera: prop not supplied for template hole")

// ErrSlotKind is returned when a patch asks a dynamic child slot to switch
// between a text value and a nested block instance. Slots keep the shape
// they mounted with.
var ErrSlotKind = errors.New("tessera: dynamic child cannot switch between text and nested block")

// ErrBadTemplate is returned by Define when the template function returns
// nil or places a placeholder where no owning element exists to record an
// edit against.
var ErrBadTemplate = errors.New("tessera: template is not compilable")
