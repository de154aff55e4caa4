package utils

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

var statsMu sync.Mutex

// AppendStats appends one CSV line "name,v1,v2,..." to path, creating the
// file if needed.
func AppendStats(path string, name string, values ...int64) error {
	statsMu.Lock()
	defer statsMu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open stats file: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	sb.WriteString(name)
	for _, v := range values {
		fmt.Fprintf(&sb, ",%d", v)
	}
	if _, err := fmt.Fprintln(f, sb.String()); err != nil {
		return fmt.Errorf("write stats line: %w", err)
	}
	return nil
}
