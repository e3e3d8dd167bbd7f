package llm

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Response is the structured reply expected from a model: a natural
// language confirmation, the exact git command, and safety metadata.
type Response struct {
	Reply         string   `json:"reply"`
	Command       string   `json:"command"`
	Explanation   string   `json:"explanation"`
	IsDestructive bool     `json:"is_destructive"`
	Confidence    float64  `json:"confidence"`
	Alternatives  []string `json:"alternatives,omitempty"`

	ModelUsed   string    `json:"model_used,omitempty"`
	GeneratedAt time.Time `json:"generation_time,omitempty"`
}

// ParseResponse decodes the model's raw text into a Response. Models
// occasionally wrap the JSON in a fenced code block despite instructions;
// the fence is stripped before decoding.
func ParseResponse(raw string) (*Response, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var resp Response
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, errors.Wrap(err, "decoding model response")
	}
	resp.GeneratedAt = time.Now()

	if err := resp.Validate(); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Validate checks the structural requirements of a response.
func (r *Response) Validate() error {
	r.Reply = strings.TrimSpace(r.Reply)
	r.Command = strings.TrimSpace(r.Command)
	r.Explanation = strings.TrimSpace(r.Explanation)

	if r.Reply == "" {
		return errors.New("model response missing reply")
	}
	if r.Command == "" {
		return errors.New("model response missing command")
	}
	if !strings.HasPrefix(r.Command, "git ") {
		return errors.Newf("model command must start with \"git \": %q", r.Command)
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return errors.Newf("confidence out of range: %g", r.Confidence)
	}
	return nil
}

// SafetyLevel classifies the response for display: dangerous when
// destructive, caution on low confidence, safe otherwise.
func (r *Response) SafetyLevel() string {
	switch {
	case r.IsDestructive:
		return "dangerous"
	case r.Confidence < 0.9:
		return "caution"
	default:
		return "safe"
	}
}
