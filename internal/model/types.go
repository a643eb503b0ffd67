package model

import (
	"fmt"
	"time"
)

// AudioAsset is a whole downloaded and transcoded audio file for one URL.
type AudioAsset struct {
	SourceURL  string
	ID         string // video identifier reported by the downloader
	Path       string
	DurationMs int64
	Format     string
}

// AudioSegment is one overlapping window of an AudioAsset, materialised as
// its own file. AssetPath references the parent asset, it does not own it.
type AudioSegment struct {
	AssetPath string
	Index     int
	StartMs   int64
	EndMs     int64
	Path      string
}

// Length returns the segment duration in milliseconds.
func (s AudioSegment) Length() int64 {
	return s.EndMs - s.StartMs
}

func (s AudioSegment) String() string {
	return fmt.Sprintf("chunk %d [%s-%s]", s.Index, FormatMs(s.StartMs), FormatMs(s.EndMs))
}

// Transcript maps a source URL to its joined text. Order keeps the URLs in
// the order their entries were recorded.
type Transcript struct {
	Order []string          `json:"order"`
	Texts map[string]string `json:"texts"`
}

// NewTranscript returns an empty transcript.
func NewTranscript() Transcript {
	return Transcript{Texts: make(map[string]string)}
}

// Set records text for url, replacing any previous entry.
func (t *Transcript) Set(url, text string) {
	if t.Texts == nil {
		t.Texts = make(map[string]string)
	}
	if _, ok := t.Texts[url]; !ok {
		t.Order = append(t.Order, url)
	}
	t.Texts[url] = text
}

// Get returns the text for url.
func (t Transcript) Get(url string) (string, bool) {
	text, ok := t.Texts[url]
	return text, ok
}

// Len returns the number of entries.
func (t Transcript) Len() int {
	return len(t.Order)
}

// Progress is an advisory completion report for a running batch.
type Progress struct {
	URL          string  `json:"url"`
	URLIndex     int     `json:"url_index"`
	URLCount     int     `json:"url_count"`
	SegmentIndex int     `json:"segment_index"`
	SegmentCount int     `json:"segment_count"`
	Overall      float64 `json:"overall"`
	Message      string  `json:"message"`
	Failed       bool    `json:"failed,omitempty"` // set on the final report of a failed URL
}

// FormatMs renders milliseconds as HH:MM:SS.mmm.
func FormatMs(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms%1000)
}
