package inference

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	cases := map[string]string{
		`{"choices":[{"message":{"role":"assistant","content":"chat answer"}}]}`: "chat answer",
		`{"choices":[{"text":"completion"}]}`:                                     "completion",
		`{"outputs":[{"text":"output text"}]}`:                                    "output text",
		`{"generated_text":"generated"}`:                                          "generated",
		`[{"generated_text":"a slide with a chart"}]`:                             "a slide with a chart",
		`{"unexpected":true}`:                                                     "",
		`not json at all`:                                                         "not json at all",
	}
	for raw, want := range cases {
		assert.Equal(t, want, ExtractText([]byte(raw)), raw)
	}
}

func TestChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer hf_token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var request ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "IlyaGusev/saiga_llama3_8b", request.Model)
		assert.Equal(t, 800, request.MaxTokens)
		require.Len(t, request.Messages, 1)
		assert.Equal(t, "user", request.Messages[0].Role)

		w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	}))
	defer server.Close()

	client := NewClient(Options{Token: "hf_token", ChatURL: server.URL})
	text, err := client.ChatCompletion(context.Background(), ChatRequest{
		Model:     "IlyaGusev/saiga_llama3_8b",
		Messages:  []Message{{Role: "user", Content: "hello"}},
		MaxTokens: 800,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)
}

func TestImageToText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/Salesforce/blip2-flan-t5-xl", r.URL.Path)
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, []byte("png-bytes"), body)
		w.Write([]byte(`[{"generated_text":" a bar chart "}]`))
	}))
	defer server.Close()

	client := NewClient(Options{Token: "hf_token", ModelsURL: server.URL + "/models/"})
	caption, err := client.ImageToText(context.Background(), "Salesforce/blip2-flan-t5-xl", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "a bar chart", caption)
}

func TestStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Model is loading"}`))
	}))
	defer server.Close()

	client := NewClient(Options{Token: "hf_token", ChatURL: server.URL})
	_, err := client.ChatCompletion(context.Background(), ChatRequest{Model: "m"})

	var status_err *StatusError
	require.True(t, errors.As(err, &status_err))
	assert.Equal(t, http.StatusServiceUnavailable, status_err.StatusCode)
	assert.Contains(t, status_err.Body, "Model is loading")
}

func TestClientWithoutToken(t *testing.T) {
	client := NewClient(Options{})
	assert.False(t, client.Ready())

	_, err := client.ChatCompletion(context.Background(), ChatRequest{Model: "m"})
	assert.True(t, errors.Is(err, ErrNoToken))

	var nilClient *Client
	assert.False(t, nilClient.Ready())
}
