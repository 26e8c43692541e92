package manager

import "errors"

var (
	// ErrSearchFailed distinguishes "couldn't ask" from "no packs exist"
	ErrSearchFailed = errors.New("release search failed")
	// ErrNoCandidates means the search succeeded but nothing usable came back
	ErrNoCandidates = errors.New("no season pack candidates found")
	// ErrAlreadyRunning rejects a second request for a target already in flight
	ErrAlreadyRunning = errors.New("an operation for this target is already in progress")
	// ErrDeletionFailed aborts an item before any download is issued
	ErrDeletionFailed = errors.New("failed to delete existing episode files")
	// ErrDownloadFailed is the accepted partial-failure state: episode files
	// were already removed when the download could not be started
	ErrDownloadFailed = errors.New("failed to start season pack download")
	// ErrUnknownInstance means the request referenced an unconfigured media manager
	ErrUnknownInstance = errors.New("unknown media manager instance")
	// ErrOperationNotFound is returned for status or cancel requests on unknown ids
	ErrOperationNotFound = errors.New("operation not found")
)
