package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shop struct {
	srv   *httptest.Server
	added []string
}

func newShop(t *testing.T) *shop {
	t.Helper()

	s := new(shop)
	authorized := func(r *http.Request) bool {
		return r.Header.Get("Authorization") == "Bearer access-1"
	}
	unauthorized := func(w http.ResponseWriter) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Authentication credentials were not provided."}`)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[
			{"id":2,"name":"Go Mug","slug":"go-mug","description":"Ceramic","price":"250.00","stock":3,
			 "category":{"id":1,"name":"Kitchen","slug":"kitchen"},"is_active":true,"images":[]},
			{"id":1,"name":"Gopher Plush","slug":"gopher","description":"Soft toy","price":"999.00","stock":0,
			 "category":{"id":2,"name":"Toys","slug":"toys"},"is_active":true,"images":[]}
		]`)
	})
	mux.HandleFunc("GET /api/categories/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,"name":"Kitchen","slug":"kitchen"},{"id":2,"name":"Toys","slug":"toys"}]`)
	})
	mux.HandleFunc("POST /api/cart/items/add/", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			unauthorized(w)
			return
		}
		b, _ := io.ReadAll(r.Body)
		s.added = append(s.added, string(b))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{}`)
	})
	mux.HandleFunc("POST /api/auth/login/", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"access": "access-1", "refresh": "refresh-1"})
	})
	mux.HandleFunc("GET /api/cart/", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			unauthorized(w)
			return
		}
		_, _ = io.WriteString(w, `{"id":9,"updated_at":"2025-10-01T12:00:00Z","items":[
			{"id":5,"product":{"id":2,"name":"Go Mug","slug":"go-mug","price":"250.00","stock":3},
			 "price_snapshot":"250.00","quantity":2}
		]}`)
	})

	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.srv.Close)
	return s
}

func (s *shop) run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	args = append([]string{"--api-url", s.srv.URL, "--log-level", "error"}, args...)
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCLI(t *testing.T) {
	t.Setenv("STOREFRONT_SESSION_PATH", filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("STOREFRONT_CONFIG_FILE", "")
	s := newShop(t)

	t.Run("Products", func(t *testing.T) {
		code, out, _ := s.run(t, "products")
		require.Equal(t, 0, code)
		assert.Contains(t, out, "Go Mug")
		assert.Contains(t, out, "Gopher Plush")
		assert.Contains(t, out, "Out of stock")
		assert.Contains(t, out, "₹250.00")
	})

	t.Run("ProductsByCategory", func(t *testing.T) {
		code, out, _ := s.run(t, "products", "--category", "toys")
		require.Equal(t, 0, code)
		assert.Contains(t, out, "Gopher Plush")
		assert.NotContains(t, out, "Go Mug")
	})

	t.Run("AddLoggedOut", func(t *testing.T) {
		code, _, errOut := s.run(t, "add", "2")
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "Please login to add items 🙂")
		assert.Empty(t, s.added)
	})

	t.Run("CartLoggedOut", func(t *testing.T) {
		code, _, errOut := s.run(t, "cart")
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "You're not logged in. Please login to view your cart.")
	})

	t.Run("SessionLoggedOut", func(t *testing.T) {
		code, out, _ := s.run(t, "session")
		require.Equal(t, 0, code)
		assert.Contains(t, out, "Not logged in.")
	})

	t.Run("LoginThenAdd", func(t *testing.T) {
		code, out, _ := s.run(t, "login", "-u", "neo", "-p", "matrix")
		require.Equal(t, 0, code)
		assert.Contains(t, out, "Logged in as neo")

		code, out, _ = s.run(t, "add", "2")
		require.Equal(t, 0, code)
		assert.Contains(t, out, "Added to cart ✅")
		require.Len(t, s.added, 1)
		assert.JSONEq(t, `{"product_id":2,"quantity":1}`, s.added[0])
	})

	t.Run("AddOutOfStock", func(t *testing.T) {
		before := len(s.added)
		code, _, _ := s.run(t, "add", "1")
		assert.Equal(t, 1, code)
		assert.Len(t, s.added, before)
	})

	t.Run("Cart", func(t *testing.T) {
		code, out, _ := s.run(t, "cart")
		require.Equal(t, 0, code)
		assert.Contains(t, out, "Go Mug")
		assert.Contains(t, out, "₹500.00")
		assert.Contains(t, out, "Free")
	})

	t.Run("InvalidID", func(t *testing.T) {
		code, _, errOut := s.run(t, "add", "mug")
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, `invalid id "mug"`)
	})
}
