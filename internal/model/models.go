package model

// All lists the models in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Workspace{},
		&Source{},
		&Document{},
		&Chunk{},
		&Insight{},
		&Scorecard{},
		&ScorecardResult{},
	}
}
