package tui

import "github.com/charmbracelet/lipgloss"

// ColorRed colors text red
func ColorRed(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("1")).
		Render(text)
}

// ColorGreen colors text green
func ColorGreen(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("2")).
		Render(text)
}

// ColorYellow colors text yellow
func ColorYellow(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(text)
}

// ColorCyan colors text cyan
func ColorCyan(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Render(text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(text)
}

// ColorBold makes text bold
func ColorBold(text string) string {
	return lipgloss.NewStyle().Bold(true).Render(text)
}

// ColorSHA colors an abbreviated commit hash
func ColorSHA(sha string) string { return ColorYellow(sha) }

// ColorBranchName colors a branch name
func ColorBranchName(name string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Render(name)
}
