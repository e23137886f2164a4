//go:build ignore

// End-to-end smoke test against a running instance:
//
//	go run scripts/chat_smoke.go
//
// Ingests a document, runs a search, sends a chat turn, replays the
// stream variant, then reads and clears the session history.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:8000/api"

var sessionId = fmt.Sprintf("smoke-%d", time.Now().Unix())

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func sendRequest(method, path string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func step(name string, fn func() error) {
	color.Cyan("== %s ==", name)
	if err := fn(); err != nil {
		color.Red("FAIL: %v", err)
		os.Exit(1)
	}
	color.Green("OK")
	fmt.Println()
}

func main() {
	step("Ingest document", func() error {
		resp, body, err := sendRequest(http.MethodPost, "/retrieval/v1/documents", map[string]interface{}{
			"content":  "Paris is the capital of France.",
			"metadata": map[string]interface{}{"source": "smoke"},
		})
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusCreated {
			return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
		}
		var parsed map[string]interface{}
		json.Unmarshal(body, &parsed)
		prettyPrint(parsed)
		return nil
	})

	step("Search corpus", func() error {
		resp, body, err := sendRequest(http.MethodGet, "/retrieval/v1/search?q=capital+of+France&k=3", nil)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
		}
		var parsed map[string]interface{}
		json.Unmarshal(body, &parsed)
		prettyPrint(parsed)
		return nil
	})

	step("Send chat", func() error {
		resp, body, err := sendRequest(http.MethodPost, "/chat/v1", map[string]interface{}{
			"session_id": sessionId,
			"message":    "What is the capital of France?",
		})
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
		}
		var parsed map[string]interface{}
		json.Unmarshal(body, &parsed)
		prettyPrint(parsed)
		return nil
	})

	step("Stream chat", func() error {
		q := url.Values{}
		q.Set("session_id", sessionId)
		q.Set("message", "And what is it famous for?")

		resp, err := http.Get(baseURL + "/chat/v1/stream?" + q.Encode())
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		scanner := bufio.NewScanner(resp.Body)
		done := false
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			fmt.Println(line)
			if strings.HasPrefix(line, "event: error") {
				return fmt.Errorf("stream reported an error")
			}
			if strings.HasPrefix(line, "event: done") {
				done = true
			}
		}
		if !done {
			return fmt.Errorf("stream ended without done marker")
		}
		return scanner.Err()
	})

	step("Read history", func() error {
		resp, body, err := sendRequest(http.MethodGet, "/chat/v1/history/"+sessionId, nil)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
		}
		var parsed struct {
			Data []map[string]string `json:"data"`
		}
		json.Unmarshal(body, &parsed)
		prettyPrint(parsed.Data)
		if len(parsed.Data) != 4 {
			return fmt.Errorf("expected 4 history entries, got %d", len(parsed.Data))
		}
		return nil
	})

	step("Clear history", func() error {
		resp, body, err := sendRequest(http.MethodDelete, "/chat/v1/history/"+sessionId, nil)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
		}
		return nil
	})

	color.Green("Smoke test passed (session %s)", sessionId)
}
