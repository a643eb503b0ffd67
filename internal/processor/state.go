package processor

import (
	"context"

	"github.com/looplab/fsm"
	"github.com/nguyentantai21042004/tubescribe/internal/logger"
	"github.com/nguyentantai21042004/tubescribe/internal/model"
)

// newURLMachine builds the per-URL lifecycle:
//
//	pending -> fetching -> fetched | fetch_failed
//	fetched -> segmenting -> segmented | segment_failed
//	segmented -> transcribing -> joined | no_transcript
func newURLMachine(url string, log logger.Logger) *fsm.FSM {
	return fsm.NewFSM(
		model.StatePending,
		fsm.Events{
			{Name: model.EventFetch, Src: []string{model.StatePending}, Dst: model.StateFetching},
			{Name: model.EventFetchOK, Src: []string{model.StateFetching}, Dst: model.StateFetched},
			{Name: model.EventFetchFail, Src: []string{model.StateFetching}, Dst: model.StateFetchFailed},
			{Name: model.EventSegment, Src: []string{model.StateFetched}, Dst: model.StateSegmenting},
			{Name: model.EventSegmentOK, Src: []string{model.StateSegmenting}, Dst: model.StateSegmented},
			{Name: model.EventSegmentFail, Src: []string{model.StateSegmenting}, Dst: model.StateSegmentFailed},
			{Name: model.EventTranscribe, Src: []string{model.StateSegmented}, Dst: model.StateTranscribing},
			{Name: model.EventJoin, Src: []string{model.StateTranscribing}, Dst: model.StateJoined},
			{Name: model.EventNoTranscript, Src: []string{model.StateTranscribing}, Dst: model.StateNoTranscript},
		},
		fsm.Callbacks{
			"enter_state": func(ctx context.Context, e *fsm.Event) {
				log.Debug(ctx, "%s: %s -> %s", url, e.Src, e.Dst)
			},
		},
	)
}

// advance fires event; an illegal transition is a programming error and
// is only logged.
func (p *implProcessor) advance(ctx context.Context, machine *fsm.FSM, event string) {
	if err := machine.Event(ctx, event); err != nil {
		p.logger.Error(ctx, "State transition %s from %s rejected: %v", event, machine.Current(), err)
	}
}
