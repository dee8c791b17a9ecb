package catalogsource_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/dottech/storefront/internal/adapter/catalogsource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordsJSON = `[
	{"id": "1", "name": "Laptop", "price": 999.99, "stock": 5},
	{"ID": "2", "Name": "Phone", "Price": 650, "Stock": 0}
]`

func TestSourceFetch(t *testing.T) {
	t.Run("FromFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.json")
		require.NoError(t, os.WriteFile(path, []byte(recordsJSON), 0o644))

		rs, err := catalogsource.New(path).Fetch(t.Context())
		require.NoError(t, err)
		require.Len(t, rs, 2)
		assert.Equal(t, "Laptop", rs[0]["name"])
		assert.Equal(t, "Phone", rs[1]["Name"])
	})

	t.Run("FromHTTP", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(recordsJSON))
			},
		))
		defer srv.Close()

		rs, err := catalogsource.New(srv.URL).Fetch(t.Context())
		require.NoError(t, err)
		assert.Len(t, rs, 2)
	})

	t.Run("NonSuccessStatus", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusInternalServerError)
			},
		))
		defer srv.Close()

		_, err := catalogsource.New(srv.URL).Fetch(t.Context())
		assert.Error(t, err)
	})

	t.Run("MalformedPayload", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := catalogsource.New(path).Fetch(t.Context())
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := catalogsource.New(
			filepath.Join(t.TempDir(), "absent.json"),
		).Fetch(t.Context())
		assert.Error(t, err)
	})
}
