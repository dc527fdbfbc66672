package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/train-dispatch/api"
)

// TestOpenAPI_DescribesEveryRoute keeps the embedded document in step with
// the routes registered by handler.Server.
func TestOpenAPI_DescribesEveryRoute(t *testing.T) {
	var doc struct {
		OpenAPI string                    `yaml:"openapi"`
		Paths   map[string]map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(api.OpenAPI, &doc))

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	want := map[string][]string{
		"/healthz":                        {"get"},
		"/board":                          {"get"},
		"/export":                         {"get"},
		"/departures":                     {"get", "post"},
		"/departures/{trainNumber}":       {"get", "delete"},
		"/departures/{trainNumber}/track": {"put"},
		"/departures/{trainNumber}/delay": {"put"},
		"/clock":                          {"get", "put"},
		"/clock/advance":                  {"post"},
	}
	for path, methods := range want {
		require.Contains(t, doc.Paths, path)
		for _, m := range methods {
			assert.Contains(t, doc.Paths[path], m, "%s %s", m, path)
		}
	}
}
