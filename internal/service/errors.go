package service

import "errors"

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrSourceNotFound    = errors.New("source not found")
	ErrScorecardNotFound = errors.New("scorecard not found")
)
