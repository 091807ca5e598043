package domain

// RemoteState classifies the result of a remote conversion-service attempt
type RemoteState int

const (
	// RemoteFound means the service produced a local file.
	RemoteFound RemoteState = iota
	// RemoteUnavailable means the service is not configured for this kind.
	// It is a capability-absence signal, not an error.
	RemoteUnavailable
	// RemoteFailed covers every transient problem: bad status code,
	// malformed response, polling exhausted, streaming I/O error.
	RemoteFailed
)

// RemoteOutcome is the explicit result of RemoteClient.Fetch. The remote
// path never aborts an acquisition; failures are absorbed here and the
// orchestrator falls through to the local extractor.
type RemoteOutcome struct {
	State  RemoteState
	Path   string
	Reason error
}

// FoundOutcome builds a successful remote outcome for a downloaded file
func FoundOutcome(path string) RemoteOutcome {
	return RemoteOutcome{State: RemoteFound, Path: path}
}

// UnavailableOutcome signals that the remote service is unconfigured
func UnavailableOutcome() RemoteOutcome {
	return RemoteOutcome{State: RemoteUnavailable}
}

// FailedOutcome records why the remote attempt was forfeited
func FailedOutcome(reason error) RemoteOutcome {
	return RemoteOutcome{State: RemoteFailed, Reason: reason}
}
