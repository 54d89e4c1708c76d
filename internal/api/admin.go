package api

import (
	"fmt"
	"net/http"

	"github.com/tailscale/tailsql/server/tailsql"
	"tailscale.com/tsweb"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/persistence"
)

// AttachAdminRoutes mounts a tsweb debug mux with a tailsql SQL browser over
// the event store at /debug/.... Flag-gated by the caller: this is a field
// debugging surface, not meant to be exposed on every deployment.
func AttachAdminRoutes(mux *http.ServeMux, store *persistence.Store) error {
	debug := tsweb.Debugger(mux)

	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		return fmt.Errorf("api: create tailsql server: %w", err)
	}
	tsql.SetDB("sqlite://doorway.db", store.DB(), &tailsql.DBOptions{
		Label: "Doorway events",
	})

	debug.Handle("tailsql/", "SQL live debugging over the event store", tsql.NewMux())
	return nil
}
