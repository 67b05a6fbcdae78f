package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// keywords are the reserved words offered as completions alongside the
// session's bound names.
var keywords = []string{"print", "const", "True", "False"}

// commands are the REPL commands, completed after a leading ':'.
var commands = []string{"help", "vars", "reset", "edit", "clear", "quit"}

// isWordBoundary reports whether r separates words for completion purposes:
// whitespace, operators, parentheses, the declaration colon and the string
// delimiters.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'(', ')',
		'+', '-', '*', '/', '%',
		':', '<', '>', '$', '!':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor position and its byte boundaries
// within input. It returns an empty word when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// isCommand reports whether input is a REPL command line.
func isCommand(input string) bool {
	return strings.HasPrefix(strings.TrimLeft(input, " \t"), ":")
}

// inString reports whether offset lies inside an unterminated << string.
func inString(input string, offset int) bool {
	before := input[:offset]

	return strings.Count(before, "<<") > strings.Count(before, ">>")
}

// candidates returns the completion candidates for input: command names on
// a command line, otherwise the keywords followed by the bound names.
func candidates(input string, names []string) []string {
	if isCommand(input) {
		return commands
	}

	return slices.Concat(keywords, names)
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor, ranked best-first, along with the word boundaries. There are no
// matches for an empty word or inside a string literal.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, wordStart, wordEnd := wordBounds(input, cursor)
	if word == "" || inString(input, wordStart) {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates(input, m.session.names())), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing)
// uses the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		last := i == len(matches)-1

		if i > 0 && used+entryWidth+ellipsisWidth > width && !(last && used+entryWidth <= width) {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
