package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJson(t *testing.T) {

	writeTemp := func(t *testing.T, body string) string {
		t.Helper()
		p := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		return p
	}

	t.Run("overlays endpoint", func(t *testing.T) {
		p := writeTemp(t, `{"server_endpoint_addr": "https://auth.internal:9443"}`)
		os.Args = []string{"cmd", "-c", p}
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)
		assert.Equal(t, "https://auth.internal:9443", cfg.ServerEndpointAddr)
	})

	t.Run("absent fields keep defaults", func(t *testing.T) {
		p := writeTemp(t, `{}`)
		os.Args = []string{"cmd", "-c", p}
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)
		assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerEndpointAddr)
	})

	t.Run("invalid json panics", func(t *testing.T) {
		p := writeTemp(t, `{not json`)
		os.Args = []string{"cmd", "-c", p}
		cfg := &Config{}
		cfg.LoadDefaults()
		assert.Panics(t, func() { parseJson(cfg) })
	})
}
