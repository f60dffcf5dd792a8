package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrValidationFailed    = errors.New("validation failed")
	ErrInsufficientPlayers = errors.New("at least 16 players are required to generate teams")

	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerNameConflict = errors.New("a player with this name already exists")

	ErrExportFailed  = errors.New("failed to export lineup")
	ErrArchiveFailed = errors.New("failed to archive lineup export")
)

// ValidationError carries per-field messages; it matches ErrValidationFailed with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
