package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"othello/communication"
)

var ErrNotPublished = errors.New("no game published")

type ClientCommunicator struct {
	serverURL string
	client    *http.Client
}

// NewClientCommunicator initializes and returns a new ClientCommunicator.
func NewClientCommunicator(serverURL string) *ClientCommunicator {
	return &ClientCommunicator{
		serverURL: serverURL,
		client:    http.DefaultClient,
	}
}

func (cc *ClientCommunicator) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cc.serverURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := cc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return resp, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotPublished
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch %s: %s", path, resp.Status)
	}
}

// FetchRecord returns the text transcript of the published game.
func (cc *ClientCommunicator) FetchRecord(ctx context.Context) (string, error) {
	resp, err := cc.get(ctx, "/record")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read record: %w", err)
	}
	return string(data), nil
}

func (cc *ClientCommunicator) FetchState(ctx context.Context) (communication.Snapshot, error) {
	resp, err := cc.get(ctx, "/state")
	if err != nil {
		return communication.Snapshot{}, err
	}
	defer resp.Body.Close()
	var s communication.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return communication.Snapshot{}, fmt.Errorf("failed to decode state: %w", err)
	}
	return s, nil
}
