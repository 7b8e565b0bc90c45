// Package render turns entry content into display output. Nothing here is
// written back to storage.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// PreviewLength is the number of characters shown in list previews.
const PreviewLength = 100

// Untitled is displayed for entries without a title.
const Untitled = "Untitled"

// TimestampLayout is the layout used for dates in lists.
const TimestampLayout = "Jan 2, 2006 • 3:04 PM"

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Table,
		extension.TaskList,
		extension.Strikethrough,
		extension.Linkify,
		extension.Typographer,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// Markdown renders content as HTML. Raw HTML in content is not passed
// through.
func Markdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// ImageReference returns the markdown that embeds an inline image.
func ImageReference(filename, dataURL string) string {
	return fmt.Sprintf("![%s](%s)", filename, dataURL)
}

// Title returns the display title of an entry.
func Title(title string) string {
	if strings.TrimSpace(title) == "" {
		return Untitled
	}
	return title
}

// Preview returns the first PreviewLength characters of content.
func Preview(content string) string {
	if utf8.RuneCountInString(content) <= PreviewLength {
		return content
	}
	return string([]rune(content)[:PreviewLength])
}

// Timestamp formats t in local time for lists.
func Timestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}
