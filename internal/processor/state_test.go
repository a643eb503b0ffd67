package processor

import (
	"context"
	"testing"

	"github.com/nguyentantai21042004/tubescribe/internal/logger"
	"github.com/nguyentantai21042004/tubescribe/internal/model"
)

func TestURLMachine(t *testing.T) {
	tests := []struct {
		name   string
		events []string
		want   string
	}{
		{
			name:   "fetch failure",
			events: []string{model.EventFetch, model.EventFetchFail},
			want:   model.StateFetchFailed,
		},
		{
			name:   "segment failure",
			events: []string{model.EventFetch, model.EventFetchOK, model.EventSegment, model.EventSegmentFail},
			want:   model.StateSegmentFailed,
		},
		{
			name: "joined",
			events: []string{model.EventFetch, model.EventFetchOK, model.EventSegment, model.EventSegmentOK,
				model.EventTranscribe, model.EventJoin},
			want: model.StateJoined,
		},
		{
			name: "no transcript",
			events: []string{model.EventFetch, model.EventFetchOK, model.EventSegment, model.EventSegmentOK,
				model.EventTranscribe, model.EventNoTranscript},
			want: model.StateNoTranscript,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newURLMachine("https://youtu.be/a", logger.NewNop())
			for _, e := range tt.events {
				if err := m.Event(context.Background(), e); err != nil {
					t.Fatalf("Event(%s) error = %v", e, err)
				}
			}
			if m.Current() != tt.want {
				t.Errorf("state = %s, want %s", m.Current(), tt.want)
			}
			if !model.IsTerminal(m.Current()) {
				t.Errorf("%s should be terminal", m.Current())
			}
		})
	}
}

func TestURLMachineRejectsSkippedSteps(t *testing.T) {
	m := newURLMachine("https://youtu.be/a", logger.NewNop())
	if err := m.Event(context.Background(), model.EventJoin); err == nil {
		t.Error("join from pending should be rejected")
	}
}
