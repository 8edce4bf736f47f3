package regression

import (
	"log/slog"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// DiffStats summarizes a unified diff between baseline and report.
type DiffStats struct {
	LinesAdded   int
	LinesRemoved int
	// Added holds the report lines that are not in the baseline.
	Added []string
}

// ParseStats extracts line statistics from unified diff output. Output the
// parser does not understand yields zero stats.
func ParseStats(output string) DiffStats {
	var stats DiffStats
	if strings.TrimSpace(output) == "" {
		return stats
	}

	fileDiffs, err := diff.NewMultiFileDiffReader(strings.NewReader(output)).ReadAllFiles()
	if err != nil {
		slog.Debug("Could not parse diff output", slog.String("error", err.Error()))
		return stats
	}

	for _, fd := range fileDiffs {
		for _, hunk := range fd.Hunks {
			for _, line := range strings.Split(string(hunk.Body), "\n") {
				switch {
				case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
					stats.LinesAdded++
					stats.Added = append(stats.Added, line[1:])
				case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
					stats.LinesRemoved++
				}
			}
		}
	}

	return stats
}
