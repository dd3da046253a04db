package feed

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode/utf8"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/utils"

	"github.com/goccy/go-yaml"
)

// Supported feed formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Columns maps feed columns to record fields.
type Columns struct {
	Key   string
	Name  string
	Price string
	Stock string
}

// DecodeOptions controls how a feed file is read.
type DecodeOptions struct {
	// Format is csv, json or yaml.
	Format string
	// Columns maps the feed layout.
	Columns Columns
	// Delimiter is the CSV separator. Defaults to ','.
	Delimiter rune
	// SkipRows is the number of CSV lines before the header.
	SkipRows int
}

// DetectFormat guesses the feed format from a file name or URL path.
func DetectFormat(name string) string {
	ext := strings.ToLower(path.Ext(strings.SplitN(name, "?", 2)[0]))
	switch ext {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatCSV
	}
}

// Decode reads raw feed rows from r.
func Decode(r io.Reader, opts DecodeOptions) ([]reconcile.RawRow, error) {
	switch opts.Format {
	case FormatCSV, "":
		return decodeCSV(r, opts)
	case FormatJSON:
		var records []map[string]any
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to parse json feed: %w", err)
		}
		return rowsFromMaps(records, opts.Columns), nil
	case FormatYAML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read yaml feed: %w", err)
		}
		var records []map[string]any
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse yaml feed: %w", err)
		}
		return rowsFromMaps(records, opts.Columns), nil
	default:
		return nil, fmt.Errorf("unsupported feed format: %s", opts.Format)
	}
}

func decodeCSV(r io.Reader, opts DecodeOptions) ([]reconcile.RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv feed: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, fmt.Errorf("feed ended before header row: %w", err)
		}
	}

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []reconcile.RawRow{}, nil
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	if _, ok := index[opts.Columns.Price]; !ok {
		return nil, fmt.Errorf("csv feed has no %q column", opts.Columns.Price)
	}
	if _, ok := index[opts.Columns.Stock]; !ok {
		return nil, fmt.Errorf("csv feed has no %q column", opts.Columns.Stock)
	}

	cell := func(record []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := make([]reconcile.RawRow, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv feed: %w", err)
		}
		if isBlank(record) {
			continue
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, reconcile.RawRow{
			Line:  line,
			Key:   cell(record, opts.Columns.Key),
			Name:  cell(record, opts.Columns.Name),
			Price: cell(record, opts.Columns.Price),
			Stock: cell(record, opts.Columns.Stock),
		})
	}
	return rows, nil
}

func rowsFromMaps(records []map[string]any, cols Columns) []reconcile.RawRow {
	rows := make([]reconcile.RawRow, 0, len(records))
	for i, rec := range records {
		rows = append(rows, reconcile.RawRow{
			Line:  i + 1,
			Key:   strings.TrimSpace(utils.ToString(rec[cols.Key])),
			Name:  strings.TrimSpace(utils.ToString(rec[cols.Name])),
			Price: rec[cols.Price],
			Stock: rec[cols.Stock],
		})
	}
	return rows
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// parseDelimiter returns the first rune of s, or ',' when s is empty.
func parseDelimiter(s string) rune {
	if s == "" {
		return ','
	}
	if s == `\t` {
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
