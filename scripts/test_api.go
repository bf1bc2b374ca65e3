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

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func decode(body []byte) map[string]interface{} {
	var out map[string]interface{}
	json.Unmarshal(body, &out)
	return out
}

func main() {
	token := os.Getenv("API_TOKEN")
	if token == "" {
		color.Red("API_TOKEN is not set. Login first and export the access token.")
		os.Exit(1)
	}

	color.Cyan("🚀 Starting Folder & Billing API Test\n")

	// 1. List plans (public)
	color.Yellow("\n1. Get Subscription Plans")
	resp, body, err := sendRequest("GET", "/plans", "", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 2. Create a folder
	color.Yellow("\n2. Create Folder")
	folderReq := map[string]interface{}{
		"id":    "smoke-test-folder",
		"name":  "Smoke Test",
		"emoji": "🧪",
	}
	resp, body, err = sendRequest("POST", "/folder/v1", token, folderReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 3. Capture a conversation into it
	color.Yellow("\n3. Capture Conversation")
	convReq := map[string]interface{}{
		"folder_id":  "smoke-test-folder",
		"id":         "smoke-test-conversation",
		"title":      "Testing the capture endpoint",
		"platform":   "chatgpt",
		"origin_url": "https://chat.openai.com/c/smoke-test",
	}
	resp, body, err = sendRequest("POST", "/conversation/v1", token, convReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 4. Usage status should reflect the new folder
	color.Yellow("\n4. Get Usage Status")
	resp, body, err = sendRequest("GET", "/user/usage-status", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	// 5. Clean up
	color.Yellow("\n5. Delete Folder")
	resp, body, err = sendRequest("DELETE", "/folder/v1/smoke-test-folder", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(decode(body))

	color.Cyan("\n✨ Done")
}
