package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var httpTimeout = 5 * time.Second

// APIClient talks to the chat backend over its polling endpoints.
type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: httpTimeout},
	}
}

// BaseURL returns the server address messages and media paths resolve
// against.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// GetMessages fetches up to limit messages for a room, oldest first.
func (c *APIClient) GetMessages(room string, limit int) ([]Message, error) {
	endpoint := c.baseURL + "/get_messages/" + url.PathEscape(room) + "?limit=" + strconv.Itoa(limit)
	var messages []Message
	if err := c.getJSON(endpoint, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// GetOnlineUsers fetches the full presence roster.
func (c *APIClient) GetOnlineUsers() ([]PresenceEntry, error) {
	var users []PresenceEntry
	if err := c.getJSON(c.baseURL+"/get_online_users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SearchMessages runs a one-shot substring search within a room.
func (c *APIClient) SearchMessages(query, room string) ([]Message, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("room", room)
	var messages []Message
	if err := c.getJSON(c.baseURL+"/search_messages?"+values.Encode(), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

type sendResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// SendMessage posts the multipart form to /send_message. A nil error means
// the server reported status "success".
func (c *APIClient) SendMessage(req SendRequest) error {
	body, contentType, err := buildSendBody(req)
	if err != nil {
		return err
	}
	resp, err := c.http.Post(c.baseURL+"/send_message", contentType, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, readResponseError(resp.Body))
	}
	var parsed sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return err
	}
	if parsed.Status != "success" {
		if parsed.Error != "" {
			return fmt.Errorf("send rejected: %s", parsed.Error)
		}
		return fmt.Errorf("send rejected: status %q", parsed.Status)
	}
	return nil
}

func (c *APIClient) getJSON(endpoint string, out interface{}) error {
	resp, err := c.http.Get(endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, readResponseError(resp.Body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// readResponseError pulls the backend's error field out of a failed
// response, falling back to the raw body.
func readResponseError(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return "request failed"
	}
	var parsed map[string]string
	if err := json.Unmarshal(data, &parsed); err == nil {
		if msg, ok := parsed["error"]; ok {
			return msg
		}
	}
	return strings.TrimSpace(string(data))
}
