package aicopy

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

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key", "gemini-2.5-flash")
	c.baseURL = srv.URL
	return c
}

func textResponse(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := geminiResponse{}
		resp.Candidates = []struct {
			Content geminiContent `json:"content"`
		}{{Content: geminiContent{Parts: []geminiPart{{Text: text}}}}}
		json.NewEncoder(w).Encode(resp)
	}
}

func TestGenerateDescriptionAppendsDefaultFooter(t *testing.T) {
	c := newTestClient(t, textResponse("  La mística de La Bombonera.  "))

	got, err := c.Generate(context.Background(), Request{
		ProductName: "Boca Juniors 1997",
		Category:    "Retro",
		Field:       FieldDescription,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "La mística de La Bombonera."), "response text is trimmed")
	assert.True(t, strings.HasSuffix(got, defaultFooter))
}

func TestGenerateDescriptionPrefersCategoryFooter(t *testing.T) {
	c := newTestClient(t, textResponse("Una joya del fútbol europeo."))

	got, err := c.Generate(context.Background(), Request{
		ProductName: "Milan 1990",
		Field:       FieldDescription,
		Footer:      "Tela Climalite original de época.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Una joya del fútbol europeo.\n\nTela Climalite original de época.", got)
}

func TestGenerateOtherFieldsGetNoFooter(t *testing.T) {
	for _, field := range []Field{FieldTags, FieldSEOTitle, FieldSEODescription} {
		c := newTestClient(t, textResponse("resultado"))
		got, err := c.Generate(context.Background(), Request{ProductName: "X", Field: field})
		require.NoError(t, err, "field %s", field)
		assert.Equal(t, "resultado", got, "field %s", field)
	}
}

func TestGenerateSendsPromptForField(t *testing.T) {
	var prompt string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		prompt = req.Contents[0].Parts[0].Text
		textResponse("ok")(w, r)
	})

	_, err := c.Generate(context.Background(), Request{ProductName: "Boca 1997", Field: FieldTags})
	require.NoError(t, err)
	assert.Contains(t, prompt, "10 etiquetas")
	assert.Contains(t, prompt, "Boca 1997")
}

func TestGenerateUsesStyleContext(t *testing.T) {
	var prompt string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt = req.Contents[0].Parts[0].Text
		textResponse("ok")(w, r)
	})

	_, err := c.Generate(context.Background(), Request{
		ProductName:  "River 1986",
		Category:     "Retro",
		Subcategory:  "Argentina",
		StyleContext: "Hablá como un relator de los 80.",
		Field:        FieldDescription,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(prompt, "Hablá como un relator de los 80."))
	assert.Contains(t, prompt, "Retro / Argentina")
}

func TestGenerateProviderError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	})

	_, err := c.Generate(context.Background(), Request{ProductName: "X", Field: FieldDescription})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerateEmptyCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})

	_, err := c.Generate(context.Background(), Request{ProductName: "X", Field: FieldDescription})
	assert.Error(t, err)
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	c := NewClient("", "gemini-2.5-flash")
	_, err := c.Generate(context.Background(), Request{ProductName: "X", Field: FieldDescription})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
