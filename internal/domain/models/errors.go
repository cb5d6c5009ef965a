package models

import "errors"

// Sentinels shared across the data-access layer. Repositories translate
// backend responses into these; handlers dispatch on them with errors.Is.
var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateApplication = errors.New("application already submitted")
)
