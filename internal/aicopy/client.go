package aicopy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client drafts marketing copy through the Gemini generateContent
// endpoint. No retry, no cache: provider errors surface to the admin
// who can just click again.

type Field string

const (
	FieldDescription    Field = "description"
	FieldTags           Field = "tags"
	FieldSEOTitle       Field = "seo_title"
	FieldSEODescription Field = "seo_description"
)

// defaultFooter is appended to generated descriptions when the
// category doesn't configure its own technical text.
const defaultFooter = "Camiseta confeccionada en tela premium W15, diseñada para ofrecerte comodidad, resistencia y estilo en cada uso. Esta prenda exclusiva combina calidad y detalles que marcan la diferencia."

const defaultBaseURL = "https://generativelanguage.googleapis.com"

type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type Request struct {
	ProductName  string
	Category     string
	Subcategory  string
	StyleContext string // category-specific prompt preamble
	Footer       string // category-specific technical text
	Field        Field
}

var ErrMissingAPIKey = errors.New("aicopy: missing API key")

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: buildPrompt(req)}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("aicopy: request failed: %w", err)
	}
	defer resp.Body.Close()

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("aicopy: decode response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("aicopy: provider error: %s", out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("aicopy: provider returned no text")
	}

	text := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if req.Field == FieldDescription {
		footer := req.Footer
		if footer == "" {
			footer = defaultFooter
		}
		text = text + "\n\n" + footer
	}
	return text, nil
}

func buildPrompt(req Request) string {
	name := req.ProductName
	cat := req.Category
	if req.Subcategory != "" {
		cat = cat + " / " + req.Subcategory
	}

	switch req.Field {
	case FieldTags:
		return fmt.Sprintf(`Generá 10 etiquetas separadas por comas para: "%s". Solo las palabras.`, name)
	case FieldSEOTitle:
		return fmt.Sprintf(`Título SEO de 60 caracteres para "%s". Solo el texto.`, name)
	case FieldSEODescription:
		return fmt.Sprintf(`Meta-descripción SEO de 150 caracteres para "%s". Solo el texto.`, name)
	default: // description
		if req.StyleContext != "" {
			return fmt.Sprintf("%s\n\nProducto: \"%s\" (%s). Generá una descripción MUY BREVE (máximo 3 oraciones o 40 palabras). NO hables de tela ni calidad, solo de la emoción/historia.",
				req.StyleContext, name, cat)
		}
		return fmt.Sprintf(`Sos un experto en marketing de fútbol retro. Escribí una descripción MUY BREVE (máximo 3 oraciones o 40 palabras) para la camiseta "%s" (%s). Enfocate solo en la mística o el jugador. NO hables de la tela ni calidad, solo de la emoción.`,
			name, cat)
	}
}
