package rewrite

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, reply string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		w.WriteHeader(status)
		if status == http.StatusOK {
			_ = json.NewEncoder(w).Encode(chatResponse{
				Choices: []struct {
					Message chatMessage `json:"message"`
				}{{Message: chatMessage{Role: "assistant", Content: reply}}},
			})
		}
	}))
}

func TestClientComplete(t *testing.T) {
	srv := completionServer(t, "  Herschreven tekst.  ", http.StatusOK)
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "test-key"})
	out, err := c.Complete(context.Background(), "systeem", "gebruiker", 100, 1.0)
	require.NoError(t, err)
	assert.Equal(t, "Herschreven tekst.", out)
}

func TestClientCompleteServerError(t *testing.T) {
	srv := completionServer(t, "", http.StatusInternalServerError)
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "test-key"})
	_, err := c.Complete(context.Background(), "s", "u", 10, 1.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClientCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(chatResponse{})
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "test-key"})
	_, err := c.Complete(context.Background(), "s", "u", 10, 1.0)
	require.Error(t, err)
}

func TestRewriteWithClient(t *testing.T) {
	srv := completionServer(t, "Herschreven inhoud van het artikel met voldoende lengte om door te gaan.", http.StatusOK)
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "test-key"})
	r := NewRewriter(client, testSite(), WithClock(fixedClock))

	p, err := r.Rewrite(context.Background(), testRecord())
	require.NoError(t, err)
	assert.Contains(t, p.BodyHTML, "Herschreven inhoud")
}

// promptRoutingServer answers the description prompt with descReply and every
// other prompt with a generic rewrite.
func promptRoutingServer(t *testing.T, descReply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		reply := "Herschreven inhoud van het artikel met voldoende lengte om door te gaan."
		if req.Messages[0].Content == descriptionSystemPrompt {
			reply = descReply
		}
		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Role: "assistant", Content: reply}}},
		})
	}))
}

func TestRewriteDescriptionFromService(t *testing.T) {
	const desc = "Politie onderzoekt een inbraak in het centrum van Utrecht."
	srv := promptRoutingServer(t, desc)
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "test-key"})
	r := NewRewriter(client, testSite(), WithClock(fixedClock))

	p, err := r.Rewrite(context.Background(), testRecord())
	require.NoError(t, err)
	assert.Equal(t, desc, p.Description)
}

func TestRewriteDescriptionRejectsInvalid(t *testing.T) {
	for name, reply := range map[string]string{
		"too long":          strings.Repeat("Lange beschrijving. ", 20),
		"truncated forever": "Een beschrijving die midden in een zin ophoudt..",
	} {
		t.Run(name, func(t *testing.T) {
			srv := promptRoutingServer(t, reply)
			defer srv.Close()

			client := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "test-key"})
			r := NewRewriter(client, testSite(), WithClock(fixedClock))

			p, err := r.Rewrite(context.Background(), testRecord())
			require.NoError(t, err)
			assert.NotEqual(t, strings.TrimSpace(reply), p.Description)
			assert.LessOrEqual(t, len(p.Description), 160)
			assert.False(t, strings.HasSuffix(p.Description, ".."))
		})
	}
}
