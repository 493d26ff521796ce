package recognition

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPEncoder_Encode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/encode", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req encodeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []byte("pixels"), req.Image)

		json.NewEncoder(w).Encode(encodeResponse{Encoding: []byte("embedding"), Faces: 1})
	}))
	defer server.Close()

	encoder := NewHTTPEncoder(server.URL)
	got, err := encoder.Encode(context.Background(), []byte("pixels"))
	require.NoError(t, err)
	assert.Equal(t, []byte("embedding"), got)
}

func TestHTTPEncoder_Encode_NoFace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	encoder := NewHTTPEncoder(server.URL)
	_, err := encoder.Encode(context.Background(), []byte("pixels"))
	assert.ErrorIs(t, err, ErrNoFace)
}

func TestHTTPEncoder_Encode_ZeroFacesInBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(encodeResponse{Faces: 0})
	}))
	defer server.Close()

	encoder := NewHTTPEncoder(server.URL)
	_, err := encoder.Encode(context.Background(), []byte("pixels"))
	assert.ErrorIs(t, err, ErrNoFace)
}

func TestHTTPEncoder_Encode_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	encoder := NewHTTPEncoder(server.URL)
	_, err := encoder.Encode(context.Background(), []byte("pixels"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoFace)
}
