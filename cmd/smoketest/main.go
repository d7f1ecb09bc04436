// Command smoketest drives the onboarding workflow and the batch analyzer
// end to end against a running server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

var baseURL = "http://localhost:8080"

func main() {
	if v := os.Getenv("PINEGRAPH_URL"); v != "" {
		baseURL = v
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting smoke test...")

	// 1. Relation vocabulary must be present.
	fmt.Println("1. Fetching relation vocabulary...")
	if !sendRequest("GET", "/api/relations", nil) {
		fmt.Println("FAILED: relations")
		os.Exit(1)
	}
	fmt.Println("PASSED: relations")

	// 2. Discover similar anchors for a new entity.
	fmt.Println("2. Discovering similar entities...")
	if !sendRequest("GET", "/api/node/similar/湿地松?topn=5", nil) {
		fmt.Println("FAILED: discover")
		os.Exit(1)
	}
	fmt.Println("PASSED: discover")

	// 3. Expand an anchor into candidate triples.
	fmt.Println("3. Generating candidate triples...")
	expand := map[string]string{
		"entity_name":    "湿地松",
		"similar_entity": "马尾松",
	}
	if !sendRequest("POST", "/api/node/generate-triples", expand) {
		fmt.Println("FAILED: generate-triples (is 马尾松 present in the graph?)")
		os.Exit(1)
	}
	fmt.Println("PASSED: generate-triples")

	// 4. Validate a co-observed entity batch.
	fmt.Println("4. Validating entity batch...")
	validate := map[string]interface{}{
		"entities": []map[string]interface{}{
			{"name": "松墨天牛", "type": "insect", "confidence": 0.9},
			{"name": "马尾松", "type": "tree", "confidence": 0.85},
		},
	}
	if !sendRequest("POST", "/api/entities/validate", validate) {
		fmt.Println("FAILED: validate")
		os.Exit(1)
	}
	fmt.Println("PASSED: validate")

	fmt.Println("Smoke test complete.")
}

func sendRequest(method, endpoint string, payload interface{}) bool {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Response: %s\n", string(respBody))

	return true
}
