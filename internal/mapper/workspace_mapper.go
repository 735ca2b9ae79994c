package mapper

import (
	"insighthub-be/internal/entity"
	"insighthub-be/internal/model"
)

type WorkspaceMapper struct{}

func NewWorkspaceMapper() *WorkspaceMapper {
	return &WorkspaceMapper{}
}

func (m *WorkspaceMapper) ToEntity(w *model.Workspace) *entity.Workspace {
	if w == nil {
		return nil
	}
	return &entity.Workspace{
		Id:        w.Id,
		Name:      w.Name,
		CreatedAt: w.CreatedAt,
	}
}

func (m *WorkspaceMapper) ToModel(w *entity.Workspace) *model.Workspace {
	if w == nil {
		return nil
	}
	return &model.Workspace{
		Id:        w.Id,
		Name:      w.Name,
		CreatedAt: w.CreatedAt,
	}
}
