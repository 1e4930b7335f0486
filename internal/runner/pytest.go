package runner

import (
	"strings"
	"unicode"
)

// fallbackTestError is reported when the pytest output contains no
// recognizable failure markers.
const fallbackTestError = "Tests failed. Check your code matches the requirements."

// ExtractTestError converts raw pytest output into a compact, deduplicated
// diagnostic. It collects one line per failing test from the short summary
// (`<test-name>: <description>`), assertion detail lines (indented,
// deduplicated), and source locations from traceback lines referencing the
// exercise tree (`at <file>:<line>`). The conversion is lossy by design:
// a short actionable message beats raw tool output.
//
// Parameters:
//   - pytestOutput: The raw stdout of a pytest run.
//
// Returns:
//   - string: The formatted diagnostic, or a generic fallback message.
func ExtractTestError(pytestOutput string) string {
	var errors []string

	for _, line := range strings.Split(pytestOutput, "\n") {
		switch {
		case strings.HasPrefix(line, "FAILED ") || strings.HasPrefix(line, "ERROR "):
			if entry, ok := parseSummaryLine(line); ok {
				errors = append(errors, entry)
			}

		case strings.HasPrefix(strings.TrimSpace(line), "E ") && strings.Contains(line, "AssertionError:"):
			detail := strings.TrimSpace(strings.SplitN(line, "AssertionError:", 2)[1])
			if detail != "" && !containsDetail(errors, detail) {
				errors = append(errors, "  "+detail)
			}

		case strings.Contains(line, `File "`) && strings.Contains(line, "exercises/") && strings.Contains(line, ", line "):
			if loc, ok := parseTracebackLocation(line); ok {
				errors = append(errors, "  at "+loc)
			}
		}
	}

	if len(errors) == 0 {
		return fallbackTestError
	}
	return strings.Join(errors, "\n")
}

// parseSummaryLine parses a `FAILED path::test - description` summary line
// into `<test-name>: <description>`.
func parseSummaryLine(line string) (string, bool) {
	parts := strings.SplitN(line, " - ", 2)
	if len(parts) != 2 {
		return "", false
	}

	prefix := "FAILED "
	if strings.HasPrefix(line, "ERROR ") {
		prefix = "ERROR "
	}
	testPath := strings.TrimSpace(strings.TrimPrefix(parts[0], prefix))
	desc := strings.TrimSpace(parts[1])

	if idx := strings.LastIndex(testPath, "::"); idx >= 0 {
		return testPath[idx+2:] + ": " + desc, true
	}
	return desc, true
}

// parseTracebackLocation extracts `exercises/...:<line>` from a Python
// traceback line, opportunistically; malformed lines are skipped.
func parseTracebackLocation(line string) (string, bool) {
	start := strings.Index(line, "exercises/")
	end := strings.Index(line, ", line ")
	if start < 0 || end < 0 || start >= end {
		return "", false
	}

	filePart := strings.TrimSuffix(line[start:end], `"`)
	rest := strings.Fields(line[end+len(", line "):])
	if len(rest) == 0 {
		return "", false
	}
	linePart := strings.TrimSuffix(rest[0], ",")
	if linePart == "" || !isDigits(linePart) {
		return "", false
	}
	return filePart + ":" + linePart, true
}

// containsDetail reports whether detail already appears in any collected entry.
func containsDetail(entries []string, detail string) bool {
	for _, e := range entries {
		if strings.Contains(e, detail) {
			return true
		}
	}
	return false
}

// isDigits reports whether s consists solely of decimal digits.
func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
