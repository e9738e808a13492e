package repository

import "errors"

var (
	// ErrCampaignNotFound is returned when an operation references a
	// campaign name that does not exist.
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrDuplicateCampaign is returned when creating a campaign whose
	// name is already taken. The existing campaign is never overwritten.
	ErrDuplicateCampaign = errors.New("campaign already exists")

	// ErrEmptyHostname is returned on write paths that require a
	// hostname key.
	ErrEmptyHostname = errors.New("hostname must not be empty")

	// ErrNegativeAmount is returned when a revenue notification carries
	// a negative amount.
	ErrNegativeAmount = errors.New("amount must not be negative")
)
