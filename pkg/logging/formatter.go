package logging

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// SourceFormatter wraps a standard formatter and rewrites the caller
// information into a compact `x_file_source` field.
type SourceFormatter struct {
	Underlying logrus.Formatter
	// AddSpace adds an extra newline between entries, for text output.
	AddSpace bool
}

// Format renders a single log entry.
func (f *SourceFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry.HasCaller() {
		fileName := filepath.Base(entry.Caller.File)
		entry.Data["x_file_source"] = fmt.Sprintf("%s:%d", fileName, entry.Caller.Line)
	}

	formatted, err := f.Underlying.Format(entry)
	if err != nil {
		return nil, err
	}

	if f.AddSpace {
		return append(formatted, '\n'), nil
	}
	return formatted, nil
}
