package extract

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/log"
	openai "github.com/sashabaranov/go-openai"

	errs "github.com/laneflow/laneflow/pkg/errors"
	"github.com/laneflow/laneflow/pkg/process"
)

// DefaultAttempts is how often a failed LLM extraction is retried
// before giving up. Bad JSON is the usual failure and a fresh
// completion usually fixes it.
const DefaultAttempts = 3

// extractionPrompt instructs the model to return the wire document and
// nothing else. The audience is assumed to have low process-modeling
// maturity, so only simple element types are requested.
const extractionPrompt = `You are an expert business process analyst. Analyze the process transcript below and extract structured process elements.

IMPORTANT: keep the model SIMPLE and intuitive:
- tasks: activities someone performs
- gateways: points where a choice is made between paths
- events: what starts and what ends the process
- annotations: important remarks about the process

TRANSCRIPT:
%s

Extract the process elements as JSON following EXACTLY this structure:

{
  "process_name": "Clear, descriptive process name",
  "description": "Short description of what the process does",
  "actors": ["list", "of", "responsible actors"],
  "elements": [
    {
      "id": "unique_identifier",
      "type": "task",
      "name": "Task name",
      "description": "Optional detail",
      "actor": "Responsible actor",
      "metadata": {}
    },
    {
      "id": "gateway_1",
      "type": "gateway",
      "name": "Question being decided",
      "description": "Decision context",
      "actor": "Who decides",
      "metadata": {
        "gateway_type": "exclusive",
        "conditions": ["Option 1", "Option 2"]
      }
    },
    {
      "id": "event_start",
      "type": "event",
      "name": "What starts the process",
      "description": null,
      "actor": null,
      "metadata": {"event_type": "start"}
    },
    {
      "id": "event_end",
      "type": "event",
      "name": "What ends the process",
      "description": null,
      "actor": null,
      "metadata": {"event_type": "end"}
    },
    {
      "id": "annotation_1",
      "type": "annotation",
      "name": "Important remark",
      "description": "Remark detail",
      "actor": null,
      "metadata": {"attached_to": "related_element_id"}
    }
  ],
  "flows": [
    {"from_element": "event_start", "to_element": "task_1", "condition": null},
    {"from_element": "gateway_1", "to_element": "task_2", "condition": "If approved"},
    {"from_element": "task_3", "to_element": "event_end", "condition": null}
  ]
}

RULES:
1. Element types: only "task", "gateway", "event", "annotation".
2. IDs: unique and descriptive (task_1, gateway_1, event_start, event_end, annotation_1).
3. Actors: name who performs each task (role or department); events and annotations have no actor (null).
4. Gateways: always use "exclusive" for gateway_type, list every option in "conditions", and give each option an outgoing flow with its "condition" filled in.
5. Flows: connect elements in order. Every process runs event_start -> tasks -> event_end.
6. Completeness: at least one start event, at least one end event, every element reachable from the start.
7. Simplicity: avoid unnecessary complexity and focus on the main flow.

Return ONLY the valid JSON, with no markdown, no comments and no extra explanation.`

// chatClient is the slice of the OpenAI client the extractor needs.
// Tests substitute a canned implementation.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// LLMOptions configures an LLMExtractor.
type LLMOptions struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Logger      *log.Logger
}

// LLMExtractor extracts processes from transcripts via chat completions.
type LLMExtractor struct {
	client      chatClient
	model       string
	maxTokens   int
	temperature float32
	logger      *log.Logger
}

// NewLLMExtractor creates an extractor. The API key is required; model,
// token and temperature defaults match pkg/config.
func NewLLMExtractor(opts LLMOptions) (*LLMExtractor, error) {
	if opts.APIKey == "" {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "OPENAI_API_KEY is not set")
	}
	if opts.Model == "" {
		opts.Model = "gpt-4o"
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 8000
	}
	return &LLMExtractor{
		client:      openai.NewClient(opts.APIKey),
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: float32(opts.Temperature),
		logger:      opts.Logger,
	}, nil
}

// Extract runs a single completion and parses the returned document.
func (e *LLMExtractor) Extract(ctx context.Context, markdown string) (*Result, error) {
	prompt := strings.Replace(extractionPrompt, "%s", markdown, 1)

	e.logf("calling chat completion", "model", e.model, "prompt_chars", len(prompt))
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeExtraction, err, "chat completion")
	}
	if len(resp.Choices) == 0 {
		return nil, errs.New(errs.ErrCodeLLMResponse, "completion returned no choices")
	}

	text := resp.Choices[0].Message.Content
	e.logf("received completion", "chars", len(text))

	p, err := parseWire(text)
	if err != nil {
		return nil, err
	}

	return &Result{Process: p, Model: e.model}, nil
}

// ExtractWithRetry retries failed extractions up to attempts times.
// Context cancellation stops the loop immediately.
func (e *LLMExtractor) ExtractWithRetry(ctx context.Context, markdown string, attempts int) (*Result, error) {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.logf("extraction attempt", "attempt", attempt, "max", attempts)

		res, err := e.Extract(ctx, markdown)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if attempt < attempts {
			e.logf("extraction attempt failed, retrying", "attempt", attempt, "err", err)
		}
	}
	return nil, lastErr
}

func (e *LLMExtractor) logf(msg string, kv ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, kv...)
	}
}

// parseWire decodes a completion into a process graph. Code fences are
// tolerated: models occasionally wrap the JSON despite instructions.
func parseWire(text string) (*process.Process, error) {
	cleaned := stripJSONFence(text)

	var w wireProcess
	if err := json.Unmarshal([]byte(cleaned), &w); err != nil {
		return nil, errs.Wrap(errs.ErrCodeLLMResponse, err, "completion is not valid JSON")
	}
	p, err := w.toProcess()
	if err != nil {
		return nil, err
	}
	return p, nil
}

// stripJSONFence removes a surrounding markdown code fence, if any.
func stripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
