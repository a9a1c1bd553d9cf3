package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rentbuy/rentbuy-calculator/internal/domain"
)

// ErrUnsupportedFormat is returned for format names with no registered formatter.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Render formats a report in memory.
func Render(report *domain.Report, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	return f.Format(report)
}

// GenerateReport writes the report to dir in the named format and returns the
// files written. "all" writes the verbose console text plus every CSV and JSON.
func GenerateReport(report *domain.Report, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, name := range []string{"console", "csv", "detailed-csv", "sweep-csv", "json"} {
			file, err := WriteFormatted(GetFormatterByName(name), report, dir, ExtensionFor(name))
			if err != nil {
				return files, err
			}
			files = append(files, file)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	file, err := WriteFormatted(f, report, dir, ExtensionFor(format))
	if err != nil {
		return nil, err
	}
	return []string{file}, nil
}

func unsupported(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}
