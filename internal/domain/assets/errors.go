package assets

import "errors"

var (
	// ErrUpstreamFetch covers any failure talking to the remote media host:
	// network error, timeout, non-2xx status. It is the source's fault, not
	// the caller's, so handlers surface it as a 502.
	ErrUpstreamFetch = errors.New("upstream media fetch failed")

	// ErrNoRemoteMedia means the item carries no URL to fetch from.
	ErrNoRemoteMedia = errors.New("gallery item has no remote media url")

	ErrFileNotFound = errors.New("cached file not found")
)
