package mapper

import (
	"insighthub-be/internal/entity"
	"insighthub-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	metadata := map[string]interface{}(d.Metadata)
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return &entity.Document{
		Id:        d.Id,
		SourceId:  d.SourceId,
		DocType:   d.DocType,
		Metadata:  metadata,
		CreatedAt: d.CreatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:        d.Id,
		SourceId:  d.SourceId,
		DocType:   d.DocType,
		Metadata:  datatypes.JSONMap(d.Metadata),
		CreatedAt: d.CreatedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
