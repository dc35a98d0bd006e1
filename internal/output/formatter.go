package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/taxwizard/tax-estimator/internal/domain"
)

// ErrUnsupportedFormat is returned when a format name matches no registered formatter.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(set *domain.ReportSet) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.ReportSet) ([]byte, error)
}

func (ff FormatterFunc) Format(s *domain.ReportSet) ([]byte, error) { return ff.F(s) }
func (ff FormatterFunc) Name() string                               { return ff.ID }

// Render runs a formatter and writes its output to w.
func Render(w io.Writer, f Formatter, set *domain.ReportSet) error {
	data, err := f.Format(set)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write %s report: %w", f.Name(), err)
	}
	return nil
}

// WriteFormatted runs a formatter and writes output to a timestamped file in dir.
// An empty dir means the working directory.
func WriteFormatted(f Formatter, set *domain.ReportSet, dir, ext string) (string, error) {
	data, err := f.Format(set)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("tax_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if dir != "" {
		filename = filepath.Join(dir, filename)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleVerboseFormatter{},
	CSVSummarizer{},
	CSVDetailedExporter{},
	ConsoleFormatter{},
	HTMLFormatter{},
	JSONFormatter{},
	MarkdownFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// ResolveFormatter is GetFormatterByName with an error listing the valid choices.
func ResolveFormatter(name string) (Formatter, error) {
	if f := GetFormatterByName(name); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, name,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"console-verbose": "console",
	"verbose":         "console",
	"text":            "console",
	"summary":         "console-lite",
	"csv-detailed":    "detailed-csv",
	"csv-summary":     "csv",
	"html-report":     "html",
	"json-pretty":     "json",
	"md":              "markdown",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// Extension returns the file extension used when a format is written to disk.
func Extension(name string) string {
	switch n := NormalizeFormatName(name); {
	case n == "console", n == "console-lite":
		return "txt"
	case strings.Contains(n, "csv"):
		return "csv"
	case n == "markdown":
		return "md"
	default:
		return n
	}
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
