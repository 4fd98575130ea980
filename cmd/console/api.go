package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jwebster45206/outpost-engine/pkg/chat"
	"github.com/jwebster45206/outpost-engine/pkg/npc"
	"github.com/jwebster45206/outpost-engine/pkg/quest"
)

// ErrorResponse matches the API's error body.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e ErrorResponse) String() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	// a degraded server (model offline) still answers with fallbacks
	return resp.StatusCode == http.StatusOK
}

// doJSON sends body (nil for GET) and decodes a successful answer into out.
func doJSON(client *http.Client, method, url string, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != want {
		var errorResp ErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err != nil || errorResp.String() == "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
		}
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, errorResp)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

type npcListResponse struct {
	NPCs []npc.Profile `json:"npcs"`
}

func listNPCs(client *http.Client, baseURL string) ([]npc.Profile, error) {
	var resp npcListResponse
	if err := doJSON(client, http.MethodGet, baseURL+"/npcs", nil, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return resp.NPCs, nil
}

func sendDialogue(client *http.Client, baseURL string, req chat.DialogueRequest) (*chat.DialogueResponse, error) {
	var resp chat.DialogueResponse
	if err := doJSON(client, http.MethodPost, baseURL+"/dialogue", req, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func generateQuest(client *http.Client, baseURL string, req chat.GenerateQuestRequest) (*quest.Quest, error) {
	var resp chat.QuestResponse
	if err := doJSON(client, http.MethodPost, baseURL+"/generate-quest", req, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Quest == nil {
		return nil, fmt.Errorf("quest generation failed: %s", resp.Error)
	}
	return resp.Quest, nil
}

type saveResponse struct {
	SaveID string `json:"save_id"`
}

type loadResponse struct {
	SaveID string          `json:"save_id"`
	Data   json.RawMessage `json:"data"`
}

func saveGame(client *http.Client, baseURL string, state any) (string, error) {
	var resp saveResponse
	if err := doJSON(client, http.MethodPost, baseURL+"/save", state, http.StatusOK, &resp); err != nil {
		return "", err
	}
	return resp.SaveID, nil
}

func loadGame(client *http.Client, baseURL string, state any) (string, error) {
	var resp loadResponse
	if err := doJSON(client, http.MethodGet, baseURL+"/load", nil, http.StatusOK, &resp); err != nil {
		return "", err
	}
	if err := json.Unmarshal(resp.Data, state); err != nil {
		return "", fmt.Errorf("failed to parse saved game: %w", err)
	}
	return resp.SaveID, nil
}
