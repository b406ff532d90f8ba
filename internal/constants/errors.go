package constants

import "errors"

// Static errors for err113 compliance.
var (
	ErrTokenFileExists         = errors.New("token file already exists; appending tokens is not supported, edit or remove it")
	ErrTokenFileMalformed      = errors.New("token file is not formatted correctly")
	ErrNotAuthenticated        = errors.New("not authenticated; run `triage authenticate` first")
	ErrInteractiveWithProfiles = errors.New("--interactive and --profile are mutually exclusive")
	ErrUnknownArchiveFormat    = errors.New("unknown archive format, use tar or zip")
	ErrUnknownOutputFormat     = errors.New("unknown output format")
	ErrSampleFailed            = errors.New("the sample is in a failed state")
	ErrProfileNotNeeded        = errors.New("the sample does not need a profile to be selected")
	ErrProfileNameRequired     = errors.New("profile name is required")
	ErrProfileTimeoutRequired  = errors.New("profile timeout is required")
)
