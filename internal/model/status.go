package model

// Per-URL processing states.
const (
	StatePending       = "pending"
	StateFetching      = "fetching"
	StateFetched       = "fetched"
	StateFetchFailed   = "fetch_failed"
	StateSegmenting    = "segmenting"
	StateSegmented     = "segmented"
	StateSegmentFailed = "segment_failed"
	StateTranscribing  = "transcribing"
	StateJoined        = "joined"
	StateNoTranscript  = "no_transcript"
)

// Events driving the per-URL state machine.
const (
	EventFetch        = "fetch"
	EventFetchOK      = "fetch_ok"
	EventFetchFail    = "fetch_fail"
	EventSegment      = "segment"
	EventSegmentOK    = "segment_ok"
	EventSegmentFail  = "segment_fail"
	EventTranscribe   = "transcribe"
	EventJoin         = "join"
	EventNoTranscript = "no_transcript"
)

// IsTerminal reports whether state ends processing of a URL.
func IsTerminal(state string) bool {
	switch state {
	case StateFetchFailed, StateSegmentFailed, StateJoined, StateNoTranscript:
		return true
	default:
		return false
	}
}

// IsFailure reports whether state is a terminal failure.
func IsFailure(state string) bool {
	switch state {
	case StateFetchFailed, StateSegmentFailed, StateNoTranscript:
		return true
	default:
		return false
	}
}
