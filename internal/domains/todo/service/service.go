package service

import (
	"context"
	"fmt"
	"todoapp/config"
	"todoapp/infras/otel"
	"todoapp/internal/domains/todo/model"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/internal/domains/todo/repository"
	"todoapp/shared"
	"todoapp/shared/constant"
	gDto "todoapp/shared/dto"
	"todoapp/shared/failure"
	"todoapp/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Todo interface {
	Create(ctx context.Context, req dto.CreateTodoRequest) (dto.TodoResponse, error)
	GetAll(ctx context.Context) ([]dto.TodoResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateTodoRequest) (dto.TodoResponse, error)
	Toggle(ctx context.Context, id int64) (dto.TodoResponse, error)
	Delete(ctx context.Context, id int64) (dto.DeleteTodoResponse, error)
}

type serviceImpl struct {
	repo repository.Todo
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Todo, cfg *config.Config, otel otel.Otel) Todo {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTodoRequest) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	created, err := s.repo.Insert(ctx, req.ToModel())
	if err != nil {
		log.Error().Err(err).Msg("failed to create todo")

		return res, fmt.Errorf("failed to create todo: %w", err)
	}

	res.FromModel(created)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{
		SortBy:     constant.DefaultValueSortBy,
		SortDir:    constant.DefaultValueSortDir,
		TieBreaker: model.FieldID,
	}

	models, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get todos")

		return res, fmt.Errorf("failed to get todos: %w", err)
	}

	res = make([]dto.TodoResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateTodoRequest) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	// An empty patch is legal; it still bumps updated_at.
	updated, found, err := s.repo.Update(ctx, req.Fields(), filter)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to update todo")

		return res, fmt.Errorf("failed to update todo: %w", err)
	}

	if !found {
		log.Error().Int64("id", id).Msg("todo not found")

		return res, failure.NotFound("todo not found") // nolint:wrapcheck
	}

	res.FromModel(updated)

	return res, nil
}

// Toggle flips the completion flag. The read and the write are two separate
// store operations; concurrent toggles on the same id can lose an update.
func (s *serviceImpl) Toggle(ctx context.Context, id int64) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Toggle")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	todo, found, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get todo")

		return res, fmt.Errorf("failed to get todo: %w", err)
	}

	if !found {
		log.Error().Int64("id", id).Msg("todo not found")

		return res, failure.NotFound(fmt.Sprintf("todo with id %d not found", id)) // nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldCompleted:    !todo.Completed,
		constant.FieldUpdatedAt: timezone.Now(),
	}

	updated, found, err := s.repo.Update(ctx, fields, filter)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to toggle todo")

		return res, fmt.Errorf("failed to toggle todo: %w", err)
	}

	if !found {
		return res, failure.NotFound(fmt.Sprintf("todo with id %d not found", id)) // nolint:wrapcheck
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (res dto.DeleteTodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	affected, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete todo")

		return res, fmt.Errorf("failed to delete todo: %w", err)
	}

	// Deleting an id that never existed is not an error, just success=false.
	res.Success = affected > 0

	return res, nil
}
