package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/muesli/termenv"
)

const (
	bannerInnerWidthConstant         = 64
	bannerTopLeftConstant            = "╔"
	bannerTopRightConstant           = "╗"
	bannerBottomLeftConstant         = "╚"
	bannerBottomRightConstant        = "╝"
	bannerHorizontalConstant         = "═"
	bannerVerticalConstant           = "║"
	bannerColorConstant              = "#60a5fa"
	successColorConstant             = "#22c55e"
	warningColorConstant             = "#eab308"
	failureColorConstant             = "#ef4444"
	headingColorConstant             = "#818cf8"
	successPrefixConstant            = "✓ "
	warningPrefixConstant            = "! "
	failurePrefixConstant            = "✗ "
	numberedListItemTemplateConstant = "  %d. %s"
	detailTemplateConstant           = "  %s: %s"
	lineTerminatorConstant           = "\n"
)

// Console writes styled, human-oriented messages to an output stream.
type Console struct {
	output *termenv.Output
}

// NewConsole constructs a Console writing to writer. Options let callers pin the
// color profile; without them the profile is detected from writer.
func NewConsole(writer io.Writer, options ...termenv.OutputOption) *Console {
	if writer == nil {
		writer = io.Discard
	}
	return &Console{output: termenv.NewOutput(writer, options...)}
}

// Banner prints title centered inside a double-line frame.
func (console *Console) Banner(title string) {
	horizontalRule := strings.Repeat(bannerHorizontalConstant, bannerInnerWidthConstant)
	bannerLines := []string{
		"",
		bannerTopLeftConstant + horizontalRule + bannerTopRightConstant,
		bannerVerticalConstant + centerText(title, bannerInnerWidthConstant) + bannerVerticalConstant,
		bannerBottomLeftConstant + horizontalRule + bannerBottomRightConstant,
		"",
	}
	for _, bannerLine := range bannerLines {
		if len(bannerLine) == 0 {
			console.writeLine(bannerLine)
			continue
		}
		console.writeLine(console.output.String(bannerLine).Foreground(console.output.Color(bannerColorConstant)).Bold().String())
	}
}

// Success prints a green status line.
func (console *Console) Success(message string) {
	console.status(successPrefixConstant, message, successColorConstant)
}

// Warning prints a yellow status line.
func (console *Console) Warning(message string) {
	console.status(warningPrefixConstant, message, warningColorConstant)
}

// Failure prints a red status line.
func (console *Console) Failure(message string) {
	console.status(failurePrefixConstant, message, failureColorConstant)
}

// Heading prints an emphasized section heading.
func (console *Console) Heading(heading string) {
	console.writeLine(console.output.String(heading).Foreground(console.output.Color(headingColorConstant)).Bold().String())
}

// Detail prints an indented label and value pair.
func (console *Console) Detail(label string, value string) {
	console.writeLine(fmt.Sprintf(detailTemplateConstant, label, value))
}

// NumberedList prints items prefixed with their one-based position.
func (console *Console) NumberedList(items []string) {
	for itemIndex, item := range items {
		console.writeLine(fmt.Sprintf(numberedListItemTemplateConstant, itemIndex+1, item))
	}
}

// Println prints an unstyled line.
func (console *Console) Println(message string) {
	console.writeLine(message)
}

func (console *Console) status(prefix string, message string, color string) {
	console.writeLine(console.output.String(prefix + message).Foreground(console.output.Color(color)).String())
}

func (console *Console) writeLine(line string) {
	_, _ = io.WriteString(console.output, line+lineTerminatorConstant)
}

func centerText(text string, width int) string {
	textWidth := utf8.RuneCountInString(text)
	if textWidth >= width {
		return text
	}
	leftPadding := (width - textWidth) / 2
	rightPadding := width - textWidth - leftPadding
	return strings.Repeat(" ", leftPadding) + text + strings.Repeat(" ", rightPadding)
}
