package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/gitpilot/cli/internal/config"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider calls the Google generative language API.
type GeminiProvider struct {
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	baseURL     string
	httpClient  *http.Client
}

// NewGeminiProvider builds a Gemini provider from config.
func NewGeminiProvider(cfg *config.Config) *GeminiProvider {
	return &GeminiProvider{
		apiKey:      cfg.GoogleAPIKey,
		model:       cfg.GeminiModel,
		maxTokens:   cfg.GeminiMaxTokens,
		temperature: cfg.GeminiTemperature,
		baseURL:     defaultGeminiBaseURL,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *GeminiProvider) Name() string { return config.ProviderGemini }

func (p *GeminiProvider) Available() bool { return p.apiKey != "" }

func (p *GeminiProvider) ModelInfo() ModelInfo {
	return ModelInfo{
		Provider:    p.Name(),
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	}
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the prompt to the generateContent endpoint and parses the
// first candidate's text as a structured response.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (*Response, error) {
	if !p.Available() {
		return nil, errors.New("gemini provider is not configured")
	}

	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenConfig{
			Temperature:     p.temperature,
			MaxOutputTokens: p.maxTokens,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encoding gemini request")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "gemini request failed")
	}
	defer httpResp.Body.Close()

	respBody, _ := io.ReadAll(httpResp.Body)
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, errors.Newf("gemini API error: HTTP %d: %s", httpResp.StatusCode, respBody)
	}

	var decoded geminiResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, errors.Wrap(err, "decoding gemini response")
	}
	if decoded.Error != nil {
		return nil, errors.Newf("gemini API error: %s", decoded.Error.Message)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("gemini returned no candidates")
	}

	resp, err := ParseResponse(decoded.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}
	resp.ModelUsed = p.model
	return resp, nil
}
