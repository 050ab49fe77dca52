package constants

import "errors"

// Configuration errors.
var (
	ErrNoTokenConfigured    = errors.New("no API token configured, use 'kanka login' or set KANKA_TOKEN")
	ErrNoCampaignConfigured = errors.New("no campaign configured, use 'kanka login --campaign' or set KANKA_CAMPAIGN")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrInvalidCampaignID    = errors.New("invalid campaign id")
)

// Argument errors.
var (
	ErrInvalidID          = errors.New("invalid id")
	ErrInvalidKeyValue    = errors.New("expected key=value")
	ErrNameRequired       = errors.New("--name flag is required")
	ErrURLRequired        = errors.New("--url flag is required")
	ErrNothingToUpdate    = errors.New("no fields to update")
	ErrEntryAndEntryFile  = errors.New("--entry and --entry-file are mutually exclusive")
	ErrDeleteNotConfirmed = errors.New("delete not confirmed")
)
