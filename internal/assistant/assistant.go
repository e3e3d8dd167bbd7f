package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gitpilot/cli/internal/config"
	"github.com/gitpilot/cli/internal/gitx"
	"github.com/gitpilot/cli/internal/llm"
	"github.com/gitpilot/cli/internal/schema"
)

// Scraper provides repository state. Satisfied by *gitx.Scraper.
type Scraper interface {
	Scrape() (*schema.RepositorySnapshot, error)
	QuickStatus() string
	RepoPath() string
}

// Executor runs user-approved command strings. Satisfied by *gitx.Runner.
type Executor interface {
	Execute(command string) (*gitx.ExecResult, error)
}

// ProviderSource selects the LLM backend. Satisfied by *llm.Factory.
type ProviderSource interface {
	Provider(force string) (llm.Provider, error)
}

// Assistant coordinates a request: scrape state, prompt the model,
// classify the suggested command and execute it when approved.
type Assistant struct {
	cfg       *config.Config
	scraper   Scraper
	executor  Executor
	providers ProviderSource
	logger    *zap.Logger
}

// New builds an Assistant from its collaborators.
func New(cfg *config.Config, scraper Scraper, executor Executor, providers ProviderSource, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{
		cfg:       cfg,
		scraper:   scraper,
		executor:  executor,
		providers: providers,
		logger:    logger,
	}
}

// Options control how one request is processed.
type Options struct {
	// ForceProvider overrides the provider priority order.
	ForceProvider string
	// DryRun skips execution entirely.
	DryRun bool
	// Confirmed marks the command pre-approved by the caller.
	Confirmed bool
	// Confirm, when set, is asked interactively before executing a
	// command that requires confirmation.
	Confirm func(plan Plan) bool
}

// Plan is the execution plan derived from a model response.
type Plan struct {
	Command              string   `json:"command"`
	Explanation          string   `json:"explanation"`
	Alternatives         []string `json:"alternatives,omitempty"`
	Confidence           float64  `json:"confidence"`
	IsDestructive        bool     `json:"is_destructive"`
	RequiresConfirmation bool     `json:"requires_confirmation"`
	EstimatedRisk        string   `json:"estimated_risk"`
}

// ExecutionOutcome reports what happened to the planned command. A failed
// command is carried here as data, distinguished from "not executed".
type ExecutionOutcome struct {
	Executed      bool   `json:"executed"`
	Success       bool   `json:"success"`
	Command       string `json:"command"`
	ExitCode      int    `json:"return_code"`
	Stdout        string `json:"stdout,omitempty"`
	Stderr        string `json:"stderr,omitempty"`
	Reason        string `json:"reason,omitempty"`
	IsDestructive bool   `json:"is_destructive"`
}

// RepositoryInfo is the repository part of a result.
type RepositoryInfo struct {
	Path          string `json:"path"`
	Branch        string `json:"branch"`
	StatusSummary string `json:"status_summary"`
}

// Result is the full outcome of one processed request.
type Result struct {
	RequestID    string            `json:"request_id"`
	Success      bool              `json:"success"`
	UserRequest  string            `json:"user_request"`
	Reply        string            `json:"reply"`
	Command      string            `json:"generated_command"`
	Explanation  string            `json:"explanation"`
	Alternatives []string          `json:"alternatives,omitempty"`
	Confidence   float64           `json:"confidence"`
	Plan         Plan              `json:"plan"`
	Execution    *ExecutionOutcome `json:"execution_result"`
	Repository   RepositoryInfo    `json:"repository_info"`
	Message      string            `json:"message"`
	Timestamp    time.Time         `json:"timestamp"`
}

// destructivePatterns is the fixed set of substrings that classify a
// command as destructive regardless of surrounding flags or arguments.
var destructivePatterns = []string{
	"reset --hard",
	"push --force",
	"clean -fd",
	"branch -D",
	"remote remove",
}

// IsDestructive reports whether the command matches the destructive
// pattern set.
func IsDestructive(command string) bool {
	for _, pattern := range destructivePatterns {
		if strings.Contains(command, pattern) {
			return true
		}
	}
	return false
}

// ProcessRequest is the main entry point: natural language in, executed
// (or planned) git command out. Scrape and model failures are returned as
// errors; command execution failure is reported inside the result.
func (a *Assistant) ProcessRequest(ctx context.Context, userRequest string, opts Options) (*Result, error) {
	a.logger.Info("processing request", zap.String("request", truncate(userRequest, 100)))

	snap, err := a.scraper.Scrape()
	if err != nil {
		return nil, errors.Wrap(err, "unable to access git repository")
	}

	provider, err := a.providers.Provider(opts.ForceProvider)
	if err != nil {
		return nil, err
	}

	prompt := llm.GitCommandPrompt(snap.ForPrompt(userRequest), userRequest)
	resp, err := provider.Generate(ctx, prompt)
	if err != nil {
		return nil, errors.Wrap(err, "LLM processing failed")
	}

	plan := a.buildPlan(resp)
	outcome := a.execute(plan, opts)

	result := &Result{
		RequestID:    uuid.NewString(),
		Success:      true,
		UserRequest:  userRequest,
		Reply:        resp.Reply,
		Command:      resp.Command,
		Explanation:  resp.Explanation,
		Alternatives: resp.Alternatives,
		Confidence:   resp.Confidence,
		Plan:         plan,
		Execution:    outcome,
		Repository: RepositoryInfo{
			Path:          snap.RepositoryPath,
			Branch:        snap.CurrentBranch.Name,
			StatusSummary: snap.Summary(),
		},
		Timestamp: snap.CapturedAt,
	}

	switch {
	case !outcome.Executed:
		result.Message = "Command not executed"
	case outcome.Success:
		result.Message = "Command executed successfully"
	default:
		result.Message = "Command executed but failed"
		result.Success = false
	}

	return result, nil
}

// buildPlan classifies the suggested command. A destructive command
// requires confirmation regardless of the configured default.
func (a *Assistant) buildPlan(resp *llm.Response) Plan {
	destructive := IsDestructive(resp.Command) || resp.IsDestructive

	risk := "LOW"
	if destructive {
		risk = "HIGH"
	}

	return Plan{
		Command:              resp.Command,
		Explanation:          resp.Explanation,
		Alternatives:         resp.Alternatives,
		Confidence:           resp.Confidence,
		IsDestructive:        destructive,
		RequiresConfirmation: destructive || a.cfg.RequireConfirmation,
		EstimatedRisk:        risk,
	}
}

// execute runs the plan subject to dry-run and confirmation gates.
func (a *Assistant) execute(plan Plan, opts Options) *ExecutionOutcome {
	outcome := &ExecutionOutcome{
		Command:       plan.Command,
		IsDestructive: plan.IsDestructive,
	}

	if opts.DryRun {
		outcome.Reason = "dry run"
		return outcome
	}

	if plan.RequiresConfirmation && !opts.Confirmed {
		confirmed := false
		if opts.Confirm != nil {
			confirmed = opts.Confirm(plan)
		}
		if !confirmed {
			outcome.Reason = "user declined execution"
			return outcome
		}
	}

	result, err := a.executor.Execute(plan.Command)
	if err != nil {
		a.logger.Error("command execution failed", zap.String("command", plan.Command), zap.Error(err))
		outcome.Reason = err.Error()
		return outcome
	}

	outcome.Executed = true
	outcome.Success = result.Success
	outcome.ExitCode = result.ExitCode
	outcome.Stdout = result.Stdout
	outcome.Stderr = result.Stderr

	if result.Success {
		a.logger.Info("command executed", zap.String("command", plan.Command))
	} else {
		a.logger.Warn("command failed",
			zap.String("command", plan.Command),
			zap.Int("exit_code", result.ExitCode),
			zap.String("stderr", result.Stderr))
	}

	return outcome
}

// Snapshot scrapes and returns the full repository snapshot.
func (a *Assistant) Snapshot() (*schema.RepositorySnapshot, error) {
	return a.scraper.Scrape()
}

// QuickStatus returns the short best-effort status line.
func (a *Assistant) QuickStatus() string {
	return a.scraper.QuickStatus()
}

// RepositoryStatus returns a quick overview of the repository state.
func (a *Assistant) RepositoryStatus() (map[string]interface{}, error) {
	snap, err := a.scraper.Scrape()
	if err != nil {
		return nil, errors.Wrap(err, "unable to access git repository")
	}

	return map[string]interface{}{
		"repository_path": snap.RepositoryPath,
		"current_branch":  snap.CurrentBranch.Name,
		"status_summary":  snap.Summary(),
		"file_counts": map[string]int{
			"modified":  snap.ModifiedFiles,
			"staged":    snap.StagedFiles,
			"untracked": snap.UntrackedFiles,
			"total":     snap.TotalFiles,
		},
		"special_states": map[string]bool{
			"has_conflicts":    snap.HasConflicts,
			"is_merging":       snap.IsMerging,
			"is_rebasing":      snap.IsRebasing,
			"is_detached_head": snap.IsDetachedHead,
		},
	}, nil
}

// ExplainCommand asks the model what a git command does, without
// executing anything.
func (a *Assistant) ExplainCommand(ctx context.Context, gitCommand string) (*llm.Response, error) {
	provider, err := a.providers.Provider("")
	if err != nil {
		return nil, err
	}
	resp, err := provider.Generate(ctx, llm.ExplainPrompt(gitCommand))
	if err != nil {
		return nil, errors.Wrap(err, "LLM processing failed")
	}
	return resp, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
