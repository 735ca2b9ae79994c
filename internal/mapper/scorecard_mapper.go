package mapper

import (
	"encoding/json"
	"fmt"

	"insighthub-be/internal/entity"
	"insighthub-be/internal/model"
)

// scorecardConfig is the stored shape of a scorecard's factor list.
type scorecardConfig struct {
	Factors []entity.ScorecardFactor `json:"factors"`
}

// scorecardResultPayload is the stored shape of one brand's result.
type scorecardResultPayload struct {
	Overall float64            `json:"overall"`
	Factors map[string]float64 `json:"factors"`
}

type ScorecardMapper struct{}

func NewScorecardMapper() *ScorecardMapper {
	return &ScorecardMapper{}
}

// ToEntity fails on an unreadable config rather than yielding a scorecard
// without factors.
func (m *ScorecardMapper) ToEntity(s *model.Scorecard) (*entity.Scorecard, error) {
	if s == nil {
		return nil, nil
	}
	var cfg scorecardConfig
	if err := json.Unmarshal(s.Config, &cfg); err != nil {
		return nil, fmt.Errorf("decode scorecard %s config: %w", s.Id, err)
	}
	return &entity.Scorecard{
		Id:          s.Id,
		WorkspaceId: s.WorkspaceId,
		Name:        s.Name,
		Factors:     cfg.Factors,
		CreatedAt:   s.CreatedAt,
	}, nil
}

func (m *ScorecardMapper) ToModel(s *entity.Scorecard) (*model.Scorecard, error) {
	if s == nil {
		return nil, nil
	}
	factors := s.Factors
	if factors == nil {
		factors = []entity.ScorecardFactor{}
	}
	cfg, err := json.Marshal(scorecardConfig{Factors: factors})
	if err != nil {
		return nil, fmt.Errorf("encode scorecard config: %w", err)
	}
	return &model.Scorecard{
		Id:          s.Id,
		WorkspaceId: s.WorkspaceId,
		Name:        s.Name,
		Config:      cfg,
		CreatedAt:   s.CreatedAt,
	}, nil
}

func (m *ScorecardMapper) ToEntities(scorecards []*model.Scorecard) ([]*entity.Scorecard, error) {
	entities := make([]*entity.Scorecard, len(scorecards))
	for i, s := range scorecards {
		e, err := m.ToEntity(s)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}

func (m *ScorecardMapper) ResultToEntity(r *model.ScorecardResult) (*entity.ScorecardResult, error) {
	if r == nil {
		return nil, nil
	}
	var payload scorecardResultPayload
	if err := json.Unmarshal(r.Results, &payload); err != nil {
		return nil, fmt.Errorf("decode scorecard result %s: %w", r.Id, err)
	}
	if payload.Factors == nil {
		payload.Factors = map[string]float64{}
	}
	return &entity.ScorecardResult{
		Id:          r.Id,
		ScorecardId: r.ScorecardId,
		Brand:       r.Brand,
		Overall:     payload.Overall,
		Factors:     payload.Factors,
		CreatedAt:   r.CreatedAt,
	}, nil
}

func (m *ScorecardMapper) ResultToModel(r *entity.ScorecardResult) (*model.ScorecardResult, error) {
	if r == nil {
		return nil, nil
	}
	data, err := json.Marshal(scorecardResultPayload{Overall: r.Overall, Factors: r.Factors})
	if err != nil {
		return nil, fmt.Errorf("encode scorecard result: %w", err)
	}
	return &model.ScorecardResult{
		Id:          r.Id,
		ScorecardId: r.ScorecardId,
		Brand:       r.Brand,
		Results:     data,
		CreatedAt:   r.CreatedAt,
	}, nil
}

func (m *ScorecardMapper) ResultsToEntities(results []*model.ScorecardResult) ([]*entity.ScorecardResult, error) {
	entities := make([]*entity.ScorecardResult, len(results))
	for i, r := range results {
		e, err := m.ResultToEntity(r)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}
