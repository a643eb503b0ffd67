package exporter

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/tubescribe/internal/model"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Supported export formats.
const (
	FormatText = "txt"
	FormatDocx = "docx"
)

// Exporter writes finished transcripts to disk.
type Exporter interface {
	// Export writes every transcript entry in each configured format and
	// returns the written paths. A failing entry does not stop the others.
	Export(ctx context.Context, transcript model.Transcript) ([]string, error)
}
