package main

import (
	"github.com/tessera-ui/tessera/pkg/block"
	"github.com/tessera-ui/tessera/pkg/vdom"
)

// The demo application: a dashboard block with a nested gauge block per
// dynamic reading, exercising attribute slots, text slots, and nested
// composition.

var gaugeDef = block.MustDefine(func(props block.Getter) *vdom.VNode {
	return vdom.H("div", vdom.Props{"class": "gauge"},
		vdom.H("span", vdom.Props{"class": "gauge-label"}, props.Get("label")),
		vdom.H("span", vdom.Props{"class": "gauge-value"}, props.Get("value")),
	)
})

var dashboardDef = block.MustDefine(func(props block.Getter) *vdom.VNode {
	return vdom.H("div", vdom.Props{"class": "dashboard", "data-tick": props.Get("tick")},
		vdom.H("h1", nil, props.Get("title")),
		vdom.H("section", vdom.Props{"class": "widgets"},
			props.Get("uptime"),
			props.Get("sessions"),
		),
	)
})

// demoInstance builds the dashboard state for one tick.
func demoInstance(tick, session int) *block.Instance {
	return dashboardDef.Instance(block.Props{
		"title": "tessera demo",
		"tick":  tick,
		"uptime": gaugeDef.Instance(block.Props{
			"label": "uptime (s)",
			"value": tick,
		}),
		"sessions": gaugeDef.Instance(block.Props{
			"label": "session",
			"value": session,
		}),
	})
}
