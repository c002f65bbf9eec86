package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeScoutError       = "SCOUT_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeScrape           = "SCRAPE_ERROR"
	CodeLLM              = "LLM_ERROR"
	CodeStorage          = "STORAGE_ERROR"
)

type ScoutError struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *ScoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ScoutError) Unwrap() error {
	return e.Cause
}

func NewScoutError(message, code string, context map[string]any) *ScoutError {
	return &ScoutError{
		Message: message,
		Code:    code,
		Context: context,
	}
}

func (e *ScoutError) WithCause(cause error) *ScoutError {
	e.Cause = cause
	return e
}

// NotFoundError reports that a player name resolved to nothing on the source
// site or in the catalog. Surfaced to the caller, never retried.
type NotFoundError struct {
	*ScoutError
	PlayerName string
}

func NewNotFoundError(playerName string) *NotFoundError {
	return &NotFoundError{
		ScoutError: &ScoutError{
			Message: fmt.Sprintf("player %q not found", playerName),
			Code:    CodeNotFound,
			Context: map[string]any{"player": playerName},
		},
		PlayerName: playerName,
	}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return stderrors.As(err, &nf)
}

// InsufficientDataError reports that an operation needs more scouted players
// or stats than the catalog holds.
type InsufficientDataError struct {
	*ScoutError
	Needed int
	Got    int
}

func NewInsufficientDataError(message string, needed, got int) *InsufficientDataError {
	return &InsufficientDataError{
		ScoutError: &ScoutError{
			Message: message,
			Code:    CodeInsufficientData,
			Context: map[string]any{
				"needed": needed,
				"got":    got,
			},
		},
		Needed: needed,
		Got:    got,
	}
}

func IsInsufficientData(err error) bool {
	var id *InsufficientDataError
	return stderrors.As(err, &id)
}

// ScrapeError wraps network or HTML-structure failures from the source site.
type ScrapeError struct {
	*ScoutError
	URL string
}

func NewScrapeError(message, url string, cause error) *ScrapeError {
	return &ScrapeError{
		ScoutError: &ScoutError{
			Message: message,
			Code:    CodeScrape,
			Context: map[string]any{"url": url},
			Cause:   cause,
		},
		URL: url,
	}
}

// LLMError wraps transport or configuration failures of the language-model
// providers.
type LLMError struct {
	*ScoutError
	Provider string
}

func NewLLMError(message, provider string, cause error) *LLMError {
	return &LLMError{
		ScoutError: &ScoutError{
			Message: message,
			Code:    CodeLLM,
			Context: map[string]any{"provider": provider},
			Cause:   cause,
		},
		Provider: provider,
	}
}

// StorageError wraps JSON persistence or database failures.
type StorageError struct {
	*ScoutError
	Operation string
}

func NewStorageError(message, operation string, cause error) *StorageError {
	return &StorageError{
		ScoutError: &ScoutError{
			Message: message,
			Code:    CodeStorage,
			Context: map[string]any{"operation": operation},
			Cause:   cause,
		},
		Operation: operation,
	}
}
