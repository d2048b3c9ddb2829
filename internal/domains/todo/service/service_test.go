package service_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"todoapp/config"
	"todoapp/infras/otel/mocks"
	todoMocks "todoapp/internal/domains/todo/mocks"
	"todoapp/internal/domains/todo/model"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/internal/domains/todo/service"
	"todoapp/shared/failure"
	"todoapp/shared/timezone"

	gDto "todoapp/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (service.Todo, *todoMocks.MockTodo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := todoMocks.NewMockTodo(ctrl)

	return service.New(mockRepo, &config.Config{}, mocks.NewOtel()), mockRepo
}

func TestTodoService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateTodoRequest
		setupMock func(repo *todoMocks.MockTodo)
		wantErr   bool
	}{
		{
			name: "successful creation",
			req:  dto.CreateTodoRequest{Title: "Buy milk"},
			setupMock: func(repo *todoMocks.MockTodo) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mod model.Todo) (model.Todo, error) {
						mod.ID = 1

						return mod, nil
					})
			},
		},
		{
			name: "repository error",
			req:  dto.CreateTodoRequest{Title: "Buy milk"},
			setupMock: func(repo *todoMocks.MockTodo) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(model.Todo{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo := newService(t)
			tt.setupMock(mockRepo)

			res, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(1), res.ID)
			assert.Equal(t, "Buy milk", res.Title)
			assert.False(t, res.Completed)
			assert.Nil(t, res.Description)
			assert.Equal(t, res.CreatedAt, res.UpdatedAt)
		})
	}
}

func TestTodoService_GetAll(t *testing.T) {
	svc, mockRepo := newService(t)

	now := timezone.Now()

	todos := []model.Todo{
		{ID: 2, Title: "Newest", CreatedAt: now, UpdatedAt: now},
		{ID: 1, Title: "Oldest", Description: sql.NullString{String: "old one", Valid: true}, CreatedAt: now.Add(-1), UpdatedAt: now},
	}

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{
			SortBy:     "created_at",
			SortDir:    gDto.SortDirDesc,
			TieBreaker: model.FieldID,
		}, gDto.FilterGroup{}).
		Return(todos, nil)

	res, err := svc.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Newest", res[0].Title)
	assert.Nil(t, res[0].Description)
	require.NotNil(t, res[1].Description)
	assert.Equal(t, "old one", *res[1].Description)
}

func TestTodoService_GetAll_Empty(t *testing.T) {
	svc, mockRepo := newService(t)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Todo{}, nil)

	res, err := svc.GetAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestTodoService_GetAll_Error(t *testing.T) {
	svc, mockRepo := newService(t)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("database error"))

	_, err := svc.GetAll(context.Background())

	assert.Error(t, err)
}

func TestTodoService_Update(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(repo *todoMocks.MockTodo)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "title only leaves other columns untouched",
			body: `{"title": "Renamed"}`,
			setupMock: func(repo *todoMocks.MockTodo) {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (model.Todo, bool, error) {
						assert.Equal(t, "Renamed", fields[model.FieldTitle])
						assert.Contains(t, fields, "updated_at")
						assert.NotContains(t, fields, model.FieldDescription)
						assert.NotContains(t, fields, model.FieldCompleted)

						return model.Todo{ID: 1, Title: "Renamed"}, true, nil
					})
			},
		},
		{
			name: "empty patch bumps updated_at only",
			body: `{}`,
			setupMock: func(repo *todoMocks.MockTodo) {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (model.Todo, bool, error) {
						assert.Len(t, fields, 1)
						assert.Contains(t, fields, "updated_at")

						return model.Todo{ID: 1}, true, nil
					})
			},
		},
		{
			name: "not found",
			body: `{"title": "Renamed"}`,
			setupMock: func(repo *todoMocks.MockTodo) {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Todo{}, false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "repository error",
			body: `{"title": "Renamed"}`,
			setupMock: func(repo *todoMocks.MockTodo) {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Todo{}, false, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo := newService(t)
			tt.setupMock(mockRepo)

			var req dto.UpdateTodoRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			_, err := svc.Update(context.Background(), 1, req)

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestTodoService_Toggle_Alternates(t *testing.T) {
	svc, mockRepo := newService(t)

	// Sequential toggles must flip completed back and forth.
	state := model.Todo{ID: 1, Title: "Buy milk", Completed: false}

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.FilterGroup) (model.Todo, bool, error) {
			return state, true, nil
		}).
		Times(3)

	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (model.Todo, bool, error) {
			completed, ok := fields[model.FieldCompleted].(bool)
			require.True(t, ok)
			assert.NotContains(t, fields, model.FieldTitle)

			state.Completed = completed

			return state, true, nil
		}).
		Times(3)

	expected := []bool{true, false, true}
	for _, want := range expected {
		res, err := svc.Toggle(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, want, res.Completed)
		assert.Equal(t, "Buy milk", res.Title)
	}
}

func TestTodoService_Toggle_NotFound(t *testing.T) {
	svc, mockRepo := newService(t)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Todo{}, false, nil)

	_, err := svc.Toggle(context.Background(), 99)

	require.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
	assert.Contains(t, err.Error(), "99", "the error must identify the missing id")
}

func TestTodoService_Toggle_GetError(t *testing.T) {
	svc, mockRepo := newService(t)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Todo{}, false, errors.New("database error"))

	_, err := svc.Toggle(context.Background(), 1)

	require.Error(t, err)
	assert.Equal(t, 500, failure.GetCode(err))
}

func TestTodoService_Delete(t *testing.T) {
	tests := []struct {
		name        string
		affected    int64
		repoErr     error
		wantSuccess bool
		wantErr     bool
	}{
		{
			name:        "existing row removed",
			affected:    1,
			wantSuccess: true,
		},
		{
			name:        "missing id is a soft failure",
			affected:    0,
			wantSuccess: false,
		},
		{
			name:    "repository error",
			repoErr: errors.New("database error"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo := newService(t)

			mockRepo.EXPECT().
				Delete(gomock.Any(), gomock.Any()).
				Return(tt.affected, tt.repoErr)

			res, err := svc.Delete(context.Background(), 1)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, res.Success)
		})
	}
}
