package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amterp/dairy/internal/block"
)

// Farm palette. Dark value first, light second.
var (
	ColorPasture = lipgloss.AdaptiveColor{Dark: "#84cc16", Light: "#4d7c0f"}
	ColorBarn    = lipgloss.AdaptiveColor{Dark: "#f87171", Light: "#b91c1c"}
	ColorStraw   = lipgloss.AdaptiveColor{Dark: "#facc15", Light: "#a16207"}
	ColorFence   = lipgloss.AdaptiveColor{Dark: "#78716c", Light: "#a8a29e"}
	ColorTag     = lipgloss.AdaptiveColor{Dark: "#fb923c", Light: "#c2410c"}
	ColorTrough  = lipgloss.AdaptiveColor{Dark: "#67e8f9", Light: "#0e7490"}
)

var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorPasture)
	StyleError   = lipgloss.NewStyle().Foreground(ColorBarn)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorStraw)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorFence)
	StyleKey     = lipgloss.NewStyle().Foreground(ColorTag).Bold(true)
	StyleURL     = lipgloss.NewStyle().Foreground(ColorTrough).Underline(true)
)

const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "→"
)

// record headers whose value is the record's key.
var keyFields = []string{block.FieldAnimalID, block.FieldStaffName, block.FieldDate}

func PrintSuccess(format string, args ...any) {
	fmt.Printf("%s %s\n", StyleSuccess.Render(IconSuccess), fmt.Sprintf(format, args...))
}

// PrintError writes to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", StyleError.Render(IconError), fmt.Sprintf(format, args...))
}

// PrintWarning writes to stderr.
func PrintWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", StyleWarning.Render(IconWarning), fmt.Sprintf(format, args...))
}

func PrintInfo(format string, args ...any) {
	fmt.Printf("%s %s\n", StyleMuted.Render(IconInfo), fmt.Sprintf(format, args...))
}

// RenderID highlights a username or record key.
func RenderID(id string) string {
	return StyleKey.Render(id)
}

func RenderURL(url string) string {
	return StyleURL.Render(url)
}

func RenderMuted(text string) string {
	return StyleMuted.Render(text)
}

// RenderRecords styles store text line by line: sentinel lines are dimmed,
// field names are muted, and key values (animal ID, staff name, milking
// date) are highlighted. Other lines pass through unchanged.
func RenderRecords(text string) string {
	lines := strings.SplitAfter(text, "\n")
	var sb strings.Builder
	for _, line := range lines {
		body := strings.TrimSuffix(line, "\n")
		sb.WriteString(renderRecordLine(body))
		if len(body) < len(line) {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func renderRecordLine(line string) string {
	if block.AnimalSentinel.Matches(line) || block.DashSentinel.Matches(line) {
		return StyleMuted.Render(line)
	}
	f, ok := block.ParseField(line)
	if !ok {
		return line
	}
	value := f.Value
	for _, key := range keyFields {
		if f.Name == key {
			value = StyleKey.Render(value)
			break
		}
	}
	return StyleMuted.Render(f.Name+block.Separator) + value
}

// Box renders content in a rounded border.
func Box(content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorFence).
		Padding(0, 1).
		Render(content)
}

// LabelValue right-aligns label within labelWidth.
func LabelValue(label, value string, labelWidth int) string {
	labelStyle := lipgloss.NewStyle().
		Width(labelWidth).
		Align(lipgloss.Right).
		Foreground(ColorFence)
	return fmt.Sprintf("%s %s", labelStyle.Render(label+":"), value)
}
