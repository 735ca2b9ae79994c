package service

import (
	"context"
	"time"

	"insighthub-be/internal/dto"
	"insighthub-be/internal/entity"
	"insighthub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IWorkspaceService interface {
	Create(ctx context.Context, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error)
	GetAll(ctx context.Context) ([]*dto.WorkspaceResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.WorkspaceResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type workspaceService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewWorkspaceService(uowFactory unitofwork.RepositoryFactory) IWorkspaceService {
	return &workspaceService{uowFactory: uowFactory}
}

func (s *workspaceService) Create(ctx context.Context, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ws := &entity.Workspace{
		Id:        uuid.New(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}
	if err := uow.WorkspaceRepository().Create(ctx, ws); err != nil {
		return nil, err
	}

	return toWorkspaceResponse(ws), nil
}

func (s *workspaceService) GetAll(ctx context.Context) ([]*dto.WorkspaceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	workspaces, err := uow.WorkspaceRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.WorkspaceResponse, 0, len(workspaces))
	for _, ws := range workspaces {
		res = append(res, toWorkspaceResponse(ws))
	}
	return res, nil
}

func (s *workspaceService) Show(ctx context.Context, id uuid.UUID) (*dto.WorkspaceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ws, err := uow.WorkspaceRepository().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}
	return toWorkspaceResponse(ws), nil
}

func (s *workspaceService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ws, err := uow.WorkspaceRepository().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if ws == nil {
		return ErrWorkspaceNotFound
	}
	return uow.WorkspaceRepository().Delete(ctx, id)
}

func toWorkspaceResponse(ws *entity.Workspace) *dto.WorkspaceResponse {
	return &dto.WorkspaceResponse{
		Id:        ws.Id,
		Name:      ws.Name,
		CreatedAt: ws.CreatedAt,
	}
}
