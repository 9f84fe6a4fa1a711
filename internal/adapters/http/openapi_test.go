package http_test

import (
	"context"
	"net/http/httptest"
	"regexp"
	"sort"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/samirrijal/campusroute/api"
)

func loadSpec(t *testing.T) *openapi3.T {
	t.Helper()
	loader := &openapi3.Loader{IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		t.Fatalf("failed to parse OpenAPI spec: %v", err)
	}
	if err := spec.Validate(context.Background()); err != nil {
		t.Fatalf("OpenAPI spec validation failed: %v", err)
	}
	return spec
}

func TestOpenAPI_Metadata(t *testing.T) {
	spec := loadSpec(t)

	if spec.Info.Title != "CampusRoute API" {
		t.Errorf("expected title 'CampusRoute API', got %q", spec.Info.Title)
	}
	if spec.Info.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", spec.Info.Version)
	}
	if len(spec.Servers) == 0 {
		t.Error("expected at least one server")
	}
	for _, name := range []string{"Building", "Offering", "Itinerary", "Route", "APIError", "Pagination"} {
		if spec.Components.Schemas[name] == nil {
			t.Errorf("expected schema %s", name)
		}
	}
}

var fiberParam = regexp.MustCompile(`:([A-Za-z]+)`)

// Every public route the router registers must be documented, and every
// documented path must be served.
func TestOpenAPI_MatchesRouter(t *testing.T) {
	spec := loadSpec(t)
	app := setupApp(makeDeps(t))

	undocumented := map[string]bool{"/metrics": true, "/docs": true, "/docs/openapi.yaml": true}
	served := map[string]bool{}
	for _, r := range app.GetRoutes(true) {
		if r.Method != "GET" && r.Method != "POST" {
			continue
		}
		if undocumented[r.Path] {
			continue
		}
		p := fiberParam.ReplaceAllString(r.Path, "{$1}")
		served[p] = true
		item := spec.Paths.Find(p)
		if item == nil {
			t.Errorf("route %s %s is not documented", r.Method, p)
			continue
		}
		if item.GetOperation(r.Method) == nil {
			t.Errorf("route %s %s has no documented operation", r.Method, p)
		}
	}

	var documented []string
	for p := range spec.Paths.Map() {
		documented = append(documented, p)
	}
	sort.Strings(documented)
	for _, p := range documented {
		if !served[p] {
			t.Errorf("documented path %s is not served", p)
		}
	}
}

func TestDocs_ServesEmbeddedSpec(t *testing.T) {
	app := setupApp(makeDeps(t))

	resp, err := app.Test(httptest.NewRequest("GET", "/docs/openapi.yaml", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := readBody(t, resp.Body); len(got) != len(api.OpenAPI) {
		t.Errorf("expected %d bytes, got %d", len(api.OpenAPI), len(got))
	}
}
