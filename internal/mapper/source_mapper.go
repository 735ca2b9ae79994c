package mapper

import (
	"insighthub-be/internal/entity"
	"insighthub-be/internal/model"
)

type SourceMapper struct{}

func NewSourceMapper() *SourceMapper {
	return &SourceMapper{}
}

func (m *SourceMapper) ToEntity(s *model.Source) *entity.Source {
	if s == nil {
		return nil
	}
	return &entity.Source{
		Id:           s.Id,
		WorkspaceId:  s.WorkspaceId,
		Kind:         s.Type,
		Title:        s.Title,
		Url:          s.Url,
		Filename:     s.Filename,
		RawText:      s.RawText,
		Status:       s.Status,
		ErrorMessage: s.ErrorMessage,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (m *SourceMapper) ToModel(s *entity.Source) *model.Source {
	if s == nil {
		return nil
	}
	return &model.Source{
		Id:           s.Id,
		WorkspaceId:  s.WorkspaceId,
		Type:         s.Kind,
		Title:        s.Title,
		Url:          s.Url,
		Filename:     s.Filename,
		RawText:      s.RawText,
		Status:       s.Status,
		ErrorMessage: s.ErrorMessage,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (m *SourceMapper) ToEntities(sources []*model.Source) []*entity.Source {
	entities := make([]*entity.Source, len(sources))
	for i, s := range sources {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
