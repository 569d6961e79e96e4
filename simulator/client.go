package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Cameron-Kurotori/pessimist/sdk"
)

// BattlesnakeClient is one participant of a simulated game.
type BattlesnakeClient interface {
	Info(ctx context.Context) (info sdk.BattlesnakeInfoResponse, err error)
	Start(ctx context.Context, state sdk.GameState) error
	End(ctx context.Context, state sdk.GameState) error
	Move(ctx context.Context, state sdk.GameState) (sdk.BattlesnakeMoveResponse, error)
}

type client struct {
	baseURL string
	client  *http.Client
}

// NewClient talks to a battlesnake server over HTTP, e.g. NewClient("http://localhost:8080").
func NewClient(baseURL string, httpClient *http.Client) BattlesnakeClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

func (c *client) request(ctx context.Context, uri string, method string, body []byte) ([]byte, error) {
	r, err := http.NewRequestWithContext(ctx, method, c.baseURL+uri, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return responseBody, fmt.Errorf("non successful code received status_code=%d response_body=%s", resp.StatusCode, string(responseBody))
	}
	return responseBody, nil
}

func (c *client) Info(ctx context.Context) (info sdk.BattlesnakeInfoResponse, err error) {
	body, err := c.request(ctx, "/", http.MethodGet, nil)
	if err != nil {
		return info, err
	}
	err = json.Unmarshal(body, &info)
	return info, err
}

func (c *client) Start(ctx context.Context, state sdk.GameState) error {
	reqBody, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = c.request(ctx, "/start", http.MethodPost, reqBody)
	return err
}

func (c *client) End(ctx context.Context, state sdk.GameState) error {
	reqBody, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = c.request(ctx, "/end", http.MethodPost, reqBody)
	return err
}

func (c *client) Move(ctx context.Context, state sdk.GameState) (move sdk.BattlesnakeMoveResponse, err error) {
	reqBody, err := json.Marshal(state)
	if err != nil {
		return move, err
	}
	body, err := c.request(ctx, "/move", http.MethodPost, reqBody)
	if err != nil {
		return move, err
	}
	err = json.Unmarshal(body, &move)
	return move, err
}
