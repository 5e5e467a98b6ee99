//go:build ignore

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{} // indexing and LLM calls can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func decode(body []byte) map[string]interface{} {
	var m map[string]interface{}
	json.Unmarshal(body, &m)
	return m
}

func main() {
	color.Cyan("Starting Document Chat API Test\n")

	// 1. Register (ignore failure if the user already exists)
	color.Yellow("\n1. Register User")
	registerReq := map[string]interface{}{
		"email":     "smoke@test.local",
		"password":  "smoketest123",
		"full_name": "Smoke Tester",
	}
	resp, body, err := sendRequest("POST", "/auth/v1/register", "", registerReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	// 2. Login
	color.Yellow("\n2. Login")
	loginReq := map[string]interface{}{
		"email":    "smoke@test.local",
		"password": "smoketest123",
	}
	resp, body, err = sendRequest("POST", "/auth/v1/login", "", loginReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	loginResp := decode(body)
	prettyPrint(loginResp)

	var token string
	if data, ok := loginResp["data"].(map[string]interface{}); ok {
		if t, ok := data["token"].(string); ok {
			token = t
		}
	}
	if token == "" {
		color.Red("No token in login response")
		os.Exit(1)
	}

	// 3. List documents
	color.Yellow("\n3. List Documents")
	resp, body, err = sendRequest("GET", "/document/v1", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 4. Start a chat session
	color.Yellow("\n4. Start Chat Session")
	resp, body, err = sendRequest("POST", "/chat/v1/start", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	startResp := decode(body)
	prettyPrint(startResp)

	var sessionID string
	if data, ok := startResp["data"].(map[string]interface{}); ok {
		if id, ok := data["session_id"].(string); ok {
			sessionID = id
		}
	}
	if sessionID == "" {
		color.Red("No session_id in start response")
		os.Exit(1)
	}

	// 5. Send a message
	color.Yellow("\n5. Send Message")
	msgReq := map[string]interface{}{
		"session_id": sessionID,
		"message":    "Hello! What documents do I have?",
	}
	resp, body, err = sendRequest("POST", "/chat/v1/message", token, msgReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 6. Chat history
	color.Yellow("\n6. Get Chat History")
	resp, body, err = sendRequest("GET", "/chat/v1/history/"+sessionID, token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 7. Single-shot question
	color.Yellow("\n7. Ask (stateless)")
	askReq := map[string]interface{}{
		"question":           "What is this document about?",
		"approve_web_search": false,
	}
	resp, body, err = sendRequest("POST", "/query/v1/ask", token, askReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 8. Dashboard
	color.Yellow("\n8. Dashboard Stats")
	resp, body, err = sendRequest("GET", "/dashboard/v1/stats", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 9. End the session
	color.Yellow("\n9. End Chat Session")
	resp, _, err = sendRequest("DELETE", "/chat/v1/"+sessionID, token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	color.Cyan("\nDone.")
}
