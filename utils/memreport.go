package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// MemReport is a hierarchical memory usage report for a component.
type MemReport struct {
	Name       string      `json:"name"`
	TotalBytes int         `json:"total_bytes"`
	Children   []MemReport `json:"children,omitempty"`
}

// NewMemReport builds a report whose total is the sum of its children.
func NewMemReport(name string, children ...MemReport) MemReport {
	total := 0
	for _, c := range children {
		total += c.TotalBytes
	}
	return MemReport{Name: name, TotalBytes: total, Children: children}
}

// Leaf is a report without children.
func Leaf(name string, bytes int) MemReport {
	return MemReport{Name: name, TotalBytes: bytes}
}

// Find returns the first report named name in depth-first order.
func (r MemReport) Find(name string) (MemReport, bool) {
	if r.Name == name {
		return r, true
	}
	for _, child := range r.Children {
		if found, ok := child.Find(name); ok {
			return found, true
		}
	}
	return MemReport{}, false
}

// Print writes the report as a tree with human readable sizes.
func (r MemReport) Print(w io.Writer) {
	fmt.Fprint(w, r.String())
}

func (r MemReport) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf(`{"error": "%s"}`, err.Error())
	}
	return string(b)
}

func (r MemReport) String() string {
	var sb strings.Builder
	r.buildString(&sb, 0)
	return sb.String()
}

func (r MemReport) buildString(sb *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)
	sb.WriteString(fmt.Sprintf("%s- %s: %s (%s bytes)\n", prefix, r.Name,
		humanize.IBytes(uint64(r.TotalBytes)), humanize.Comma(int64(r.TotalBytes))))
	for _, child := range r.Children {
		child.buildString(sb, indent+1)
	}
}
