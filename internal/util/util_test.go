package util

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNameAndID(t *testing.T) {
	name := GenerateName()
	assert.GreaterOrEqual(t, len(name), 5)

	a, b := GenerateID(), GenerateID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestAvailablePort(t *testing.T) {
	port, err := AvailablePort()
	require.NoError(t, err)
	assert.Greater(t, port, 0)
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/grade" {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", r.Header.Get("Content-Type"))
		w.Write(body)
	}))
	defer server.Close()

	headers := map[string]string{"Content-Type": "application/json"}

	res, err := Fetch("POST", server.URL+"/grade", headers, strings.NewReader(`{"name":"S"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"S"}`, string(res))

	_, err = Fetch("GET", server.URL+"/missing", headers, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
