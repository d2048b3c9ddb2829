package client

import (
	"context"
	"todoapp/internal/domains/todo/model/dto"

	"github.com/rs/zerolog/log"
)

// Fallback routes each operation to the server when it answers its health
// probe, and to the offline store otherwise. The decision lives here alone;
// callers never branch on connectivity.
type Fallback struct {
	remote  *Remote
	offline *Offline
}

func NewFallback(remote *Remote, offline *Offline) *Fallback {
	return &Fallback{
		remote:  remote,
		offline: offline,
	}
}

// Offline reports whether calls are currently served from the local store.
func (f *Fallback) Offline(ctx context.Context) bool {
	return f.remote.Health(ctx) != nil
}

func (f *Fallback) Create(ctx context.Context, req dto.CreateTodoRequest) (dto.TodoResponse, error) {
	return f.backend(ctx).Create(ctx, req)
}

func (f *Fallback) GetAll(ctx context.Context) ([]dto.TodoResponse, error) {
	return f.backend(ctx).GetAll(ctx)
}

func (f *Fallback) Update(ctx context.Context, id int64, req dto.UpdateTodoRequest) (dto.TodoResponse, error) {
	return f.backend(ctx).Update(ctx, id, req)
}

func (f *Fallback) Toggle(ctx context.Context, id int64) (dto.TodoResponse, error) {
	return f.backend(ctx).Toggle(ctx, id)
}

func (f *Fallback) Delete(ctx context.Context, id int64) (dto.DeleteTodoResponse, error) {
	return f.backend(ctx).Delete(ctx, id)
}

func (f *Fallback) backend(ctx context.Context) API {
	if err := f.remote.Health(ctx); err != nil {
		log.Warn().Err(err).Msg("Server unreachable, using offline store")

		return f.offline
	}

	return f.remote
}
