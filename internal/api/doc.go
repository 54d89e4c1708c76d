// Package api exposes the thermal pipeline's occupancy state and control
// signals over net/http: a JSON status/events surface, a live go-echarts
// occupancy dashboard, and an optional tailscale.com/tsweb debug mux with a
// tailsql SQL browser over the event store.
package api
