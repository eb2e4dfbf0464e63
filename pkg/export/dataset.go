package export

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Dataset defines tabular export content.
type Dataset struct {
	Title       string
	GeneratedAt string
	Headers     []string
	Rows        []map[string]string
	// ColumnBudgets caps the characters drawn per column on fixed-width canvases.
	ColumnBudgets []int
	Summary       []SummaryItem
	Bars          []Bar
}

// SummaryItem is a labelled count shown above the table.
type SummaryItem struct {
	Label string
	Value string
}

// Bar is one horizontal bar of a percentage chart.
type Bar struct {
	Label      string
	Count      int
	Percentage int
}

// Record returns the row values in header order.
func (d Dataset) Record(row map[string]string) []string {
	record := make([]string, len(d.Headers))
	for i, header := range d.Headers {
		record[i] = row[header]
	}
	return record
}

// Renderer serialises a dataset into a single output encoding.
type Renderer interface {
	Render(w io.Writer, data Dataset) error
	ContentType() string
	Extension() string
}

func validate(data Dataset, kind string) error {
	if len(data.Headers) == 0 {
		return fmt.Errorf("%s requires at least one header", kind)
	}
	return nil
}

// Truncate shortens s to at most budget runes, marking the cut with "...".
func Truncate(s string, budget int) string {
	if budget <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= budget {
		return s
	}
	runes := []rune(s)
	if budget <= 3 {
		return string(runes[:budget])
	}
	return string(runes[:budget-3]) + "..."
}
