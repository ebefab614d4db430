package catalog

import (
	"fmt"
	"strings"

	"github.com/s0up4200/onering/theoneapi"
)

// Formatter renders catalog results for a terminal
type Formatter interface {
	FormatPage(page *Page) string
	FormatDocuments(resource Resource, docs []theoneapi.Document) string
	FormatDocument(doc theoneapi.Document) string
}

// ConsoleFormatter provides console output formatting for documents
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

var _ Formatter = (*ConsoleFormatter)(nil)

// FormatPage formats one page with its pagination footer
func (f *ConsoleFormatter) FormatPage(page *Page) string {
	var sb strings.Builder
	sb.WriteString(f.FormatDocuments(page.Resource, page.Docs))
	if len(page.Docs) > 0 {
		fmt.Fprintf(&sb, "Page %d of %d (%d total)\n", page.Page, page.Pages, page.Total)
	}
	return sb.String()
}

// FormatDocuments formats a list of documents as a tree
func (f *ConsoleFormatter) FormatDocuments(resource Resource, docs []theoneapi.Document) string {
	if len(docs) == 0 {
		return fmt.Sprintf("No %s found\n", resource.Plural())
	}

	var sb strings.Builder

	name := string(resource)
	if len(docs) != 1 {
		name = resource.Plural()
	}
	fmt.Fprintf(&sb, "\n%s%s (%d):\n\n", strings.ToUpper(name[:1]), name[1:], len(docs))

	for i, doc := range docs {
		isLast := i == len(docs)-1
		prefix := "├"
		indent := "│   "
		if isLast {
			prefix = "╰"
			indent = "    "
		}

		fmt.Fprintf(&sb, "%s── %s\n", prefix, title(doc))
		for _, line := range details(doc) {
			fmt.Fprintf(&sb, "%s%s\n", indent, line)
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatDocument formats a single document with all its details
func (f *ConsoleFormatter) FormatDocument(doc theoneapi.Document) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", title(doc))
	for _, line := range details(doc) {
		fmt.Fprintf(&sb, "  %s\n", line)
	}
	return sb.String()
}

func title(doc theoneapi.Document) string {
	switch d := doc.(type) {
	case theoneapi.Movie:
		return d.Name
	case theoneapi.Character:
		return d.Name
	case theoneapi.Book:
		return d.Name
	case theoneapi.Chapter:
		return d.ChapterName
	case theoneapi.Quote:
		return fmt.Sprintf("%q", strings.TrimSpace(d.Dialog))
	default:
		return doc.DocumentID()
	}
}

func details(doc theoneapi.Document) []string {
	lines := []string{"ID: " + doc.DocumentID()}

	switch d := doc.(type) {
	case theoneapi.Movie:
		lines = append(lines,
			fmt.Sprintf("Runtime: %g min | Budget: $%gM | Box office: $%gM", d.RuntimeInMinutes, d.BudgetInMillions, d.BoxOfficeRevenueInMillions),
			fmt.Sprintf("Academy Awards: %g wins of %g nominations | Rotten Tomatoes: %g%%", d.AcademyAwardWins, d.AcademyAwardNominations, d.RottenTomatoesScore),
		)
	case theoneapi.Character:
		var parts []string
		for _, kv := range [][2]string{
			{"Race", d.Race}, {"Gender", d.Gender}, {"Realm", d.Realm},
			{"Born", d.Birth}, {"Died", d.Death}, {"Hair", d.Hair},
			{"Height", d.Height}, {"Spouse", d.Spouse},
		} {
			if known(kv[1]) {
				parts = append(parts, kv[0]+": "+kv[1])
			}
		}
		if len(parts) > 0 {
			lines = append(lines, strings.Join(parts, " | "))
		}
		if d.WikiURL != "" {
			lines = append(lines, "Wiki: "+d.WikiURL)
		}
	case theoneapi.Chapter:
		if d.Book != "" {
			lines = append(lines, "Book: "+d.Book)
		}
	case theoneapi.Quote:
		lines = append(lines, fmt.Sprintf("Movie: %s | Character: %s", d.Movie, d.Character))
	}

	return lines
}

func known(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != "NaN"
}
