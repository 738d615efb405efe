package report

import (
	"fmt"
	"os"
)

// Diagnostics is an append-only text file recording one line per anomaly
// (table, missing field). The file is opened per append so a crashed run
// never loses buffered lines.
type Diagnostics struct {
	path string
}

func NewDiagnostics(path string) *Diagnostics {
	return &Diagnostics{path: path}
}

func (d *Diagnostics) Path() string {
	return d.path
}

func (d *Diagnostics) Append(line string) error {
	f, err := os.OpenFile(d.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open diagnostics file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to append diagnostics line: %w", err)
	}
	return nil
}
