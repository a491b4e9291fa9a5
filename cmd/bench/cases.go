// README: Scripted conversation cases run against a live API instance.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Result struct {
	Name   string
	Status string
	Detail string
}

type Runner struct {
	cfg    Config
	client *http.Client
}

func NewRunner(cfg Config) *Runner {
	return &Runner{cfg: cfg, client: &http.Client{Timeout: 30 * time.Second}}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	session := fmt.Sprintf("bench-%d", time.Now().UnixNano())
	cases := []struct {
		name string
		fn   func(ctx context.Context) Result
	}{
		{"health endpoint", r.checkHealth},
		{"greeting turn", func(ctx context.Context) Result {
			return r.checkTurn(ctx, session, "hello", "MVG-Assistant")
		}},
		{"route flow prompts for start", func(ctx context.Context) Result {
			return r.checkTurn(ctx, session, "I want to go to Garching", "start station")
		}},
		{"route flow completes after prompt reply", func(ctx context.Context) Result {
			return r.checkTurn(ctx, session, "Marienplatz", "searching for routes")
		}},
		{"departures flow answers", func(ctx context.Context) Result {
			return r.checkTurn(ctx, session, "When does the next train leave Sendlinger Tor?", "")
		}},
		{"session cleanup", func(ctx context.Context) Result {
			return r.checkEndSession(ctx, session)
		}},
	}

	var results []Result
	for _, c := range cases {
		res := c.fn(ctx)
		res.Name = c.name
		fmt.Printf("[%s] %s %s\n", res.Status, res.Name, res.Detail)
		results = append(results, res)
	}
	return results
}

func (r *Runner) checkHealth(ctx context.Context) Result {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+"/health", nil)
	resp, err := r.client.Do(req)
	if err != nil {
		return Result{Status: "FAIL", Detail: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{Status: "FAIL", Detail: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	return Result{Status: "PASS"}
}

// checkTurn posts one utterance and verifies the reply batch is non-empty
// and, when want is set, that some message contains it.
func (r *Runner) checkTurn(ctx context.Context, session, text, want string) Result {
	body, _ := json.Marshal(map[string]string{"session_id": session, "text": text})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+"/api/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return Result{Status: "FAIL", Detail: err.Error()}
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return Result{Status: "FAIL", Detail: fmt.Sprintf("status %d: %s", resp.StatusCode, raw)}
	}

	var out struct {
		Messages []string `json:"messages"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return Result{Status: "FAIL", Detail: "bad response json"}
	}
	if len(out.Messages) == 0 {
		return Result{Status: "FAIL", Detail: "empty message batch"}
	}
	if want != "" {
		for _, m := range out.Messages {
			if strings.Contains(m, want) {
				return Result{Status: "PASS"}
			}
		}
		// Live NLU output can vary on ambiguous utterances; report
		// rather than fail hard.
		return Result{Status: "SKIP", Detail: fmt.Sprintf("no message contained %q", want)}
	}
	return Result{Status: "PASS"}
}

func (r *Runner) checkEndSession(ctx context.Context, session string) Result {
	req, _ := http.NewRequestWithContext(ctx, http.MethodDelete, r.cfg.BaseURL+"/api/sessions/"+session, nil)
	resp, err := r.client.Do(req)
	if err != nil {
		return Result{Status: "FAIL", Detail: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		return Result{Status: "FAIL", Detail: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	return Result{Status: "PASS"}
}
