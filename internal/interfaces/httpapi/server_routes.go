package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler, sessionSecret string) {
	mux.Handle("GET /v1/players", RequireSession(sessionSecret, http.HandlerFunc(handler.ListPlayers)))
	mux.Handle("POST /v1/players", RequireSession(sessionSecret, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("PATCH /v1/players/{playerID}", RequireSession(sessionSecret, http.HandlerFunc(handler.UpdatePlayer)))
	mux.Handle("DELETE /v1/players/{playerID}", RequireSession(sessionSecret, http.HandlerFunc(handler.RemovePlayer)))
	mux.Handle("POST /v1/players/{playerID}/restore", RequireSession(sessionSecret, http.HandlerFunc(handler.RestorePlayer)))
}

func registerFixtureRoutes(mux *http.ServeMux, handler *Handler, sessionSecret string) {
	mux.Handle("POST /v1/fixtures", RequireSession(sessionSecret, http.HandlerFunc(handler.CreateFixture)))
	mux.Handle("GET /v1/fixtures", RequireSession(sessionSecret, http.HandlerFunc(handler.ListFixtures)))
	mux.Handle("GET /v1/fixtures/{fixtureID}", RequireSession(sessionSecret, http.HandlerFunc(handler.GetFixtureDetail)))
	mux.Handle("PATCH /v1/fixtures/{fixtureID}", RequireSession(sessionSecret, http.HandlerFunc(handler.PatchFixture)))
	mux.Handle("PUT /v1/fixtures/{fixtureID}/lineup", RequireSession(sessionSecret, http.HandlerFunc(handler.SaveFixtureLineup)))
	mux.Handle("POST /v1/fixtures/{fixtureID}/lock", RequireSession(sessionSecret, http.HandlerFunc(handler.LockFixture)))
	mux.Handle("PUT /v1/fixtures/{fixtureID}/result", RequireSession(sessionSecret, http.HandlerFunc(handler.SaveFixtureResult)))
}
