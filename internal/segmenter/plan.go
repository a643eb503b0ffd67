package segmenter

import "fmt"

// Window is one planned segment boundary, [StartMs, EndMs).
type Window struct {
	Index   int
	StartMs int64
	EndMs   int64
}

// Plan computes the windows covering [0, durationMs). Consecutive windows
// overlap by overlapMs; the last one is clipped at durationMs.
func Plan(durationMs, windowMs, overlapMs int64) ([]Window, error) {
	if overlapMs < 0 || windowMs <= overlapMs {
		return nil, fmt.Errorf("%w: window %dms, overlap %dms", ErrInvalidWindow, windowMs, overlapMs)
	}
	if durationMs <= 0 {
		return nil, fmt.Errorf("%w: duration %dms", ErrAudioDecodeFailed, durationMs)
	}

	step := windowMs - overlapMs
	windows := make([]Window, 0, Count(durationMs, windowMs, overlapMs))
	for cursor, i := int64(0), 0; ; i++ {
		end := min(cursor+windowMs, durationMs)
		windows = append(windows, Window{Index: i, StartMs: cursor, EndMs: end})
		if end == durationMs {
			break
		}
		cursor += step
	}
	return windows, nil
}

// Count returns how many windows Plan produces, or 0 for invalid input.
func Count(durationMs, windowMs, overlapMs int64) int {
	if durationMs <= 0 || overlapMs < 0 || windowMs <= overlapMs {
		return 0
	}
	if durationMs <= windowMs {
		return 1
	}
	step := windowMs - overlapMs
	return int((durationMs - overlapMs + step - 1) / step)
}
