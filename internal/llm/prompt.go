package llm

import (
	"encoding/json"
	"fmt"

	"github.com/gitpilot/cli/internal/schema"
)

const gitCommandPrompt = `You are an expert Git assistant. Your primary goal is to help users by providing the precise Git command needed to accomplish their task.

Analyze the user's request based on the provided JSON context of the repository's current state.

Respond ONLY with a valid JSON object that adheres to the following schema:
{
  "reply": "A short, friendly, natural-language confirmation of the action being taken.",
  "command": "The precise, executable Git command that accomplishes the user's request.",
  "explanation": "A brief, clear explanation of what the command does and why it's the right choice.",
  "is_destructive": "A boolean indicating if the command could cause data loss (e.g., git reset --hard, git push --force).",
  "confidence": "A float between 0.0 and 1.0 representing your confidence in the command's correctness.",
  "alternatives": "An optional list of strings, where each string is an alternative command or approach."
}

IMPORTANT:
- Ensure your entire response is a single, valid JSON object.
- Do not include any markdown formatting, code blocks, or any text outside the JSON object.
- The 'command' field must start with 'git '.
- If the user's request is unclear or ambiguous, ask for clarification instead of guessing.

---
CURRENT GIT CONTEXT:
%s
---
USER'S REQUEST:
%q
`

// GitCommandPrompt embeds the snapshot and the user's request into the
// command-generation prompt.
func GitCommandPrompt(snapshot schema.RepositorySnapshot, userQuery string) string {
	contextJSON, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		contextJSON = []byte("{}")
	}
	return fmt.Sprintf(gitCommandPrompt, contextJSON, userQuery)
}

const explainPrompt = `Explain what this Git command does: %s

Format your response as JSON with EXACTLY these fields:
{
  "reply": "Brief explanation of what the command does",
  "command": %q,
  "explanation": "Detailed explanation of what the command does, when to use it, and any risks",
  "is_destructive": false,
  "confidence": 0.9
}

IMPORTANT: Only include the fields above. Do not add alternatives or other fields.
`

// ExplainPrompt asks the model to describe an arbitrary git command.
func ExplainPrompt(gitCommand string) string {
	return fmt.Sprintf(explainPrompt, gitCommand, gitCommand)
}
