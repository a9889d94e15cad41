package daily

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const apiBase = "https://api.daily.co/v1"

// Client talks to the Daily.co REST API. Only room creation is needed:
// one private room per confirmed booking, expiring after the session.
type Client struct {
	apiKey string
	http   *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
}

type Room struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CreateRoom creates a private room that stops admitting participants
// once expiry passes.
func (c *Client) CreateRoom(name string, expiry time.Time) (*Room, error) {
	payload := map[string]interface{}{
		"name":    name,
		"privacy": "private",
		"properties": map[string]interface{}{
			"exp":         expiry.Unix(),
			"enable_chat": true,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, apiBase+"/rooms", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("daily: unexpected status %d", resp.StatusCode)
	}

	var room Room
	if err := json.NewDecoder(resp.Body).Decode(&room); err != nil {
		return nil, err
	}
	return &room, nil
}
