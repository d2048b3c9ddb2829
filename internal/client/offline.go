package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
	"todoapp/config"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/shared/constant"
	"todoapp/shared/failure"
	"todoapp/shared/timezone"
)

const (
	// storageKey namespaces the records inside the store file, so the same
	// file could hold other collections later.
	storageKey = "todoapp.todos"

	defaultOfflineStore = "todos.offline.json"

	offlineFileMode = 0o600
	offlineDirMode  = 0o700
)

// Offline mirrors the todo operations against a JSON file, keeping the app
// usable when the server cannot be reached. Ids are assigned from the
// millisecond clock, so they never collide with rows the server hands out in
// the same session.
type Offline struct {
	mu   sync.Mutex
	path string
}

func NewOffline(cfg *config.Config) *Offline {
	path := cfg.Client.OfflineStore
	if path == "" {
		path = defaultOfflineStore
	}

	return &Offline{path: path}
}

func (o *Offline) Create(_ context.Context, req dto.CreateTodoRequest) (dto.TodoResponse, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	todos, err := o.load()
	if err != nil {
		return dto.TodoResponse{}, err
	}

	now := timezone.Format(timezone.Now(), constant.DateFormat)

	record := dto.TodoResponse{
		ID:        o.nextID(todos),
		Title:     req.Title,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Description != nil && *req.Description != "" {
		description := *req.Description
		record.Description = &description
	}

	todos = append(todos, record)

	if err := o.save(todos); err != nil {
		return dto.TodoResponse{}, err
	}

	return record, nil
}

func (o *Offline) GetAll(_ context.Context) ([]dto.TodoResponse, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	todos, err := o.load()
	if err != nil {
		return nil, err
	}

	sortTodos(todos)

	return todos, nil
}

func (o *Offline) Update(_ context.Context, id int64, req dto.UpdateTodoRequest) (dto.TodoResponse, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	todos, err := o.load()
	if err != nil {
		return dto.TodoResponse{}, err
	}

	idx := indexOf(todos, id)
	if idx < 0 {
		return dto.TodoResponse{}, failure.NotFound("todo not found")
	}

	record := &todos[idx]

	if req.Title.Present() && !req.Title.Null() {
		record.Title = req.Title.Value()
	}

	if req.Description.Present() {
		record.Description = nil
		if !req.Description.Null() {
			description := req.Description.Value()
			record.Description = &description
		}
	}

	if req.Completed.Present() && !req.Completed.Null() {
		record.Completed = req.Completed.Value()
	}

	record.UpdatedAt = timezone.Format(timezone.Now(), constant.DateFormat)

	if err := o.save(todos); err != nil {
		return dto.TodoResponse{}, err
	}

	return *record, nil
}

func (o *Offline) Toggle(_ context.Context, id int64) (dto.TodoResponse, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	todos, err := o.load()
	if err != nil {
		return dto.TodoResponse{}, err
	}

	idx := indexOf(todos, id)
	if idx < 0 {
		return dto.TodoResponse{}, failure.NotFound(fmt.Sprintf("todo with id %d not found", id))
	}

	record := &todos[idx]
	record.Completed = !record.Completed
	record.UpdatedAt = timezone.Format(timezone.Now(), constant.DateFormat)

	if err := o.save(todos); err != nil {
		return dto.TodoResponse{}, err
	}

	return *record, nil
}

func (o *Offline) Delete(_ context.Context, id int64) (dto.DeleteTodoResponse, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	todos, err := o.load()
	if err != nil {
		return dto.DeleteTodoResponse{}, err
	}

	idx := indexOf(todos, id)
	if idx < 0 {
		return dto.DeleteTodoResponse{Success: false}, nil
	}

	todos = append(todos[:idx], todos[idx+1:]...)

	if err := o.save(todos); err != nil {
		return dto.DeleteTodoResponse{}, err
	}

	return dto.DeleteTodoResponse{Success: true}, nil
}

// load reads the store file and returns the records under the fixed key. A
// missing file is an empty store.
func (o *Offline) load() ([]dto.TodoResponse, error) {
	raw, err := os.ReadFile(o.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read offline store: %w", err)
	}

	store := make(map[string][]dto.TodoResponse)
	if err := json.Unmarshal(raw, &store); err != nil {
		return nil, fmt.Errorf("failed to decode offline store: %w", err)
	}

	return store[storageKey], nil
}

func (o *Offline) save(todos []dto.TodoResponse) error {
	if dir := filepath.Dir(o.path); dir != "." {
		if err := os.MkdirAll(dir, offlineDirMode); err != nil {
			return fmt.Errorf("failed to create offline store directory: %w", err)
		}
	}

	store := map[string][]dto.TodoResponse{storageKey: todos}

	raw, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode offline store: %w", err)
	}

	if err := os.WriteFile(o.path, raw, offlineFileMode); err != nil {
		return fmt.Errorf("failed to write offline store: %w", err)
	}

	return nil
}

// nextID assigns ids from the millisecond clock, bumping past any record
// created within the same millisecond.
func (o *Offline) nextID(todos []dto.TodoResponse) int64 {
	id := time.Now().UnixMilli()
	for indexOf(todos, id) >= 0 {
		id++
	}

	return id
}

func indexOf(todos []dto.TodoResponse, id int64) int {
	for i := range todos {
		if todos[i].ID == id {
			return i
		}
	}

	return -1
}

// sortTodos orders newest first, matching the server's listing. Timestamps
// are revived from their serialized form for comparison; ties fall back to
// the id.
func sortTodos(todos []dto.TodoResponse) {
	sort.SliceStable(todos, func(i, j int) bool {
		ti, errI := timezone.Parse(constant.DateFormat, todos[i].CreatedAt)
		tj, errJ := timezone.Parse(constant.DateFormat, todos[j].CreatedAt)

		if errI != nil || errJ != nil || ti.Equal(tj) {
			return todos[i].ID > todos[j].ID
		}

		return ti.After(tj)
	})
}
