package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/nguyentantai21042004/tubescribe/internal/model"
)

// Channel names one of the three log streams shown to the operator.
type Channel string

const (
	ChannelInfo    Channel = "info"
	ChannelWarning Channel = "warning"
	ChannelError   Channel = "error"
)

// ParseChannel maps the external channel names, including the plural forms
// used by the HTTP API, to a Channel.
func ParseChannel(name string) (Channel, error) {
	switch name {
	case "info", "messages":
		return ChannelInfo, nil
	case "warning", "warnings":
		return ChannelWarning, nil
	case "error", "errors":
		return ChannelError, nil
	default:
		return "", fmt.Errorf("unknown log channel %q", name)
	}
}

// LogEntry is one operator-facing message. Seq is global across channels
// so interleaving can be reconstructed.
type LogEntry struct {
	Seq     int64     `json:"seq"`
	Channel Channel   `json:"channel"`
	Text    string    `json:"text"`
	Time    time.Time `json:"time"`
}

// Snapshot is a consistent copy of a session.
type Snapshot struct {
	Transcript model.Transcript `json:"transcript"`
	Info       []LogEntry       `json:"info"`
	Warnings   []LogEntry       `json:"warnings"`
	Errors     []LogEntry       `json:"errors"`
}

// Session holds the results and logs of the current batch run. It is safe
// for concurrent use.
type Session struct {
	mu         sync.RWMutex
	transcript model.Transcript
	logs       map[Channel][]LogEntry
	seq        int64
	now        func() time.Time
}

// New creates an empty session.
func New() *Session {
	s := &Session{now: time.Now}
	s.reset()
	return s
}

// Reset drops all results and logs. Called at the start of every run.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Clear is the operator-triggered reset.
func (s *Session) Clear() {
	s.Reset()
}

func (s *Session) reset() {
	s.transcript = model.NewTranscript()
	s.logs = map[Channel][]LogEntry{
		ChannelInfo:    nil,
		ChannelWarning: nil,
		ChannelError:   nil,
	}
	s.seq = 0
}

// SetTranscript records the final text for url.
func (s *Session) SetTranscript(url, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript.Set(url, text)
}

// Text returns the transcript for url.
func (s *Session) Text(url string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transcript.Get(url)
}

// Transcript returns a copy of all recorded transcripts.
func (s *Session) Transcript() model.Transcript {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTranscript(s.transcript)
}

func (s *Session) Info(format string, args ...interface{}) {
	s.append(ChannelInfo, format, args...)
}

func (s *Session) Warn(format string, args ...interface{}) {
	s.append(ChannelWarning, format, args...)
}

func (s *Session) Error(format string, args ...interface{}) {
	s.append(ChannelError, format, args...)
}

func (s *Session) append(ch Channel, format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.logs[ch] = append(s.logs[ch], LogEntry{
		Seq:     s.seq,
		Channel: ch,
		Text:    fmt.Sprintf(format, args...),
		Time:    s.now(),
	})
}

// Entries returns the channel's entries, most recent first.
func (s *Session) Entries(ch Channel) []LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return reversed(s.logs[ch])
}

// Len returns the number of entries in a channel.
func (s *Session) Len(ch Channel) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logs[ch])
}

// Snapshot copies the whole session under one lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Transcript: copyTranscript(s.transcript),
		Info:       reversed(s.logs[ChannelInfo]),
		Warnings:   reversed(s.logs[ChannelWarning]),
		Errors:     reversed(s.logs[ChannelError]),
	}
}

func reversed(entries []LogEntry) []LogEntry {
	out := make([]LogEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}

func copyTranscript(t model.Transcript) model.Transcript {
	out := model.NewTranscript()
	for _, url := range t.Order {
		out.Set(url, t.Texts[url])
	}
	return out
}
