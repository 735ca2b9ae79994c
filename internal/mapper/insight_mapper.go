package mapper

import (
	"encoding/json"
	"fmt"

	"insighthub-be/internal/entity"
	"insighthub-be/internal/model"

	"gorm.io/datatypes"
)

type InsightMapper struct{}

func NewInsightMapper() *InsightMapper {
	return &InsightMapper{}
}

func (m *InsightMapper) ToEntity(i *model.Insight) (*entity.Insight, error) {
	if i == nil {
		return nil, nil
	}
	var evidence []entity.InsightEvidence
	if len(i.Evidence) > 0 {
		if err := json.Unmarshal(i.Evidence, &evidence); err != nil {
			return nil, fmt.Errorf("decode insight %s evidence: %w", i.Id, err)
		}
	}
	metrics := map[string]interface{}(i.Metrics)
	if metrics == nil {
		metrics = map[string]interface{}{}
	}
	return &entity.Insight{
		Id:          i.Id,
		WorkspaceId: i.WorkspaceId,
		Kind:        i.Kind,
		Title:       i.Title,
		Summary:     i.Summary,
		Evidence:    evidence,
		Metrics:     metrics,
		CreatedAt:   i.CreatedAt,
	}, nil
}

func (m *InsightMapper) ToModel(i *entity.Insight) (*model.Insight, error) {
	if i == nil {
		return nil, nil
	}
	var evidence datatypes.JSON
	if i.Evidence != nil {
		raw, err := json.Marshal(i.Evidence)
		if err != nil {
			return nil, fmt.Errorf("encode insight evidence: %w", err)
		}
		evidence = raw
	}
	return &model.Insight{
		Id:          i.Id,
		WorkspaceId: i.WorkspaceId,
		Kind:        i.Kind,
		Title:       i.Title,
		Summary:     i.Summary,
		Evidence:    evidence,
		Metrics:     datatypes.JSONMap(i.Metrics),
		CreatedAt:   i.CreatedAt,
	}, nil
}

func (m *InsightMapper) ToEntities(insights []*model.Insight) ([]*entity.Insight, error) {
	entities := make([]*entity.Insight, len(insights))
	for i, ins := range insights {
		e, err := m.ToEntity(ins)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}
