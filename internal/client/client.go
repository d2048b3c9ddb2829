// Package client talks to the todo API and, when the server is unreachable,
// mirrors the same operations against a local offline store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
	"todoapp/config"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/shared/constant"
	"todoapp/shared/failure"
	"todoapp/transport/http/response"
)

// ErrUnreachable marks transport-level failures, as opposed to errors the
// server answered with.
var ErrUnreachable = errors.New("server unreachable")

const defaultTimeoutSecs = 5

// API is the operation contract shared by the remote client and the offline
// mirror.
type API interface {
	Create(ctx context.Context, req dto.CreateTodoRequest) (dto.TodoResponse, error)
	GetAll(ctx context.Context) ([]dto.TodoResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateTodoRequest) (dto.TodoResponse, error)
	Toggle(ctx context.Context, id int64) (dto.TodoResponse, error)
	Delete(ctx context.Context, id int64) (dto.DeleteTodoResponse, error)
}

// Remote calls the todo API over HTTP.
type Remote struct {
	baseURL string
	client  *http.Client
}

func NewRemote(cfg *config.Config) *Remote {
	timeout := cfg.Client.TimeoutSecs
	if timeout <= 0 {
		timeout = defaultTimeoutSecs
	}

	return &Remote{
		baseURL: cfg.Client.BaseURL,
		client:  &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// Health probes the server's liveness endpoint.
func (c *Remote) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health endpoint returned %d", ErrUnreachable, resp.StatusCode)
	}

	return nil
}

func (c *Remote) Create(ctx context.Context, req dto.CreateTodoRequest) (dto.TodoResponse, error) {
	return do[dto.TodoResponse](ctx, c, http.MethodPost, "/v1/todos", req)
}

func (c *Remote) GetAll(ctx context.Context) ([]dto.TodoResponse, error) {
	return do[[]dto.TodoResponse](ctx, c, http.MethodGet, "/v1/todos", nil)
}

func (c *Remote) Update(ctx context.Context, id int64, req dto.UpdateTodoRequest) (dto.TodoResponse, error) {
	return do[dto.TodoResponse](ctx, c, http.MethodPatch, fmt.Sprintf("/v1/todos/%d", id), req)
}

func (c *Remote) Toggle(ctx context.Context, id int64) (dto.TodoResponse, error) {
	return do[dto.TodoResponse](ctx, c, http.MethodPost, fmt.Sprintf("/v1/todos/%d/toggle", id), nil)
}

func (c *Remote) Delete(ctx context.Context, id int64) (dto.DeleteTodoResponse, error) {
	return do[dto.DeleteTodoResponse](ctx, c, http.MethodDelete, fmt.Sprintf("/v1/todos/%d", id), nil)
}

// do performs one request and unwraps the {data} / {error} envelope.
func do[T any](ctx context.Context, c *Remote, method, path string, body any) (T, error) {
	var result T

	payload := bytes.NewBuffer(nil)
	if body != nil {
		if err := json.NewEncoder(payload).Encode(body); err != nil {
			return result, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return result, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := c.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errBody response.Error
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Error != nil {
			return result, &failure.Failure{Code: resp.StatusCode, Message: *errBody.Error}
		}

		return result, &failure.Failure{Code: resp.StatusCode, Message: resp.Status}
	}

	var envelope response.Data[T]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return result, fmt.Errorf("failed to decode response body: %w", err)
	}

	if envelope.Data != nil {
		result = *envelope.Data
	}

	return result, nil
}
