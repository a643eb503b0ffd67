package exporter

import (
	"fmt"

	"github.com/nguyentantai21042004/tubescribe/internal/logger"
)

type implExporter struct {
	dir     string
	formats []string
	logger  logger.Logger
}

// New creates an Exporter writing into dir. Unknown formats are rejected.
func New(dir string, formats []string, log logger.Logger) (Exporter, error) {
	if len(formats) == 0 {
		formats = []string{FormatText}
	}
	for _, f := range formats {
		if f != FormatText && f != FormatDocx {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
		}
	}
	return &implExporter{dir: dir, formats: formats, logger: log}, nil
}
