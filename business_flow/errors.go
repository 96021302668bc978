// Package businessflow contains the core business logic and use cases for campaign generation workflows
package businessflow

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes surfaced by the generation flow
const (
	CodeGenerationConfigInvalid = "GENERATION_CONFIG_INVALID"
	CodeGenerationConflict      = "GENERATION_CONFLICT"
	CodeGenerationStorageFailed = "GENERATION_STORAGE_FAILED"
	CodeCampaignSetExportFailed = "CAMPAIGN_SET_EXPORT_FAILED"
)

// Business flow error constants
var (
	// Generation configuration errors
	ErrDataSourceIDRequired       = errors.New("dataSourceId is required")
	ErrCampaignSetIDRequired      = errors.New("campaignSetId is required")
	ErrPlatformRequired           = errors.New("At least one platform must be selected")
	ErrHierarchyConfigRequired    = errors.New("hierarchyConfig is required")
	ErrCampaignConfigRequired     = errors.New("campaignConfig is required")
	ErrCampaignNamePatternMissing = errors.New("campaignConfig.namePattern is required")
	ErrUnsupportedPlatform        = errors.New("unsupported platform")
	ErrTooManyRows                = errors.New("data source exceeds the row limit")

	// Generation conflict errors
	ErrCampaignsAlreadySynced = errors.New("Cannot regenerate: some campaigns have been synced to platforms")
	ErrGenerationInProgress   = errors.New("campaign generation already in progress for this campaign set")

	// Storage errors
	ErrLockUnavailable         = errors.New("generation lock backend unavailable")
	ErrWriteOutsideTransaction = errors.New("generated hierarchy must be written inside a transaction")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil && !strings.Contains(e.Message, e.Err.Error()) {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func configError(err error) *BusinessError {
	return NewBusinessError(CodeGenerationConfigInvalid, err.Error(), err)
}

func conflictError(err error) *BusinessError {
	return NewBusinessError(CodeGenerationConflict, err.Error(), err)
}

// storageError keeps the underlying error text so callers can surface it verbatim
func storageError(err error) *BusinessError {
	return NewBusinessError(CodeGenerationStorageFailed, err.Error(), err)
}

func hasCode(err error, code string) bool {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// IsGenerationConfigError reports a configuration mistake the caller must fix
func IsGenerationConfigError(err error) bool {
	return hasCode(err, CodeGenerationConfigInvalid)
}

// IsGenerationConflict reports a regeneration block or a concurrent run on the same campaign set
func IsGenerationConflict(err error) bool {
	return hasCode(err, CodeGenerationConflict)
}

func IsGenerationStorageError(err error) bool {
	return hasCode(err, CodeGenerationStorageFailed)
}

func IsCampaignsAlreadySynced(err error) bool {
	return errors.Is(err, ErrCampaignsAlreadySynced)
}

func IsGenerationInProgress(err error) bool {
	return errors.Is(err, ErrGenerationInProgress)
}

func IsUnsupportedPlatform(err error) bool {
	return errors.Is(err, ErrUnsupportedPlatform)
}

func IsTooManyRows(err error) bool {
	return errors.Is(err, ErrTooManyRows)
}
