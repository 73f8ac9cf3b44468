package domain

import "errors"

// ErrFileSetNotFound is an error thrown when file set is not found
var ErrFileSetNotFound = errors.New("file set not found")

// ErrArchiveNotFound is an error thrown when archive is not found
var ErrArchiveNotFound = errors.New("archive not found")

// ErrEmptyFileSet is an error thrown when there is nothing to archive
var ErrEmptyFileSet = errors.New("file set has no files")

// ErrForbidden is an error thrown when the caller does not own the resource
var ErrForbidden = errors.New("forbidden")

// ErrArchiveNotRetained is an error thrown when an archive cannot be fetched for a resend
var ErrArchiveNotRetained = errors.New("archive not retained")

// ErrSendNumberConflict is an error thrown when an archive with the same send number exists
var ErrSendNumberConflict = errors.New("send number conflict")

// ErrInvalidRecipient is an error thrown when recipient email is invalid
var ErrInvalidRecipient = errors.New("invalid recipient email")

// ErrNoRecipient is an error thrown when no delivery attempt recorded a recipient
var ErrNoRecipient = errors.New("no recipient recorded")
