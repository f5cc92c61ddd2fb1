// Package cli holds presentation helpers shared by the concatd commands.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	logoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#73F59F"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFCC00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)
)

// DrawLogo returns the ASCII banner used in help output.
func DrawLogo() string {
	logo := `
 ██████╗ ██████╗ ███╗   ██╗ ██████╗ █████╗ ████████╗██████╗
██╔════╝██╔═══██╗████╗  ██║██╔════╝██╔══██╗╚══██╔══╝██╔══██╗
██║     ██║   ██║██╔██╗ ██║██║     ███████║   ██║   ██║  ██║
██║     ██║   ██║██║╚██╗██║██║     ██╔══██║   ██║   ██║  ██║
╚██████╗╚██████╔╝██║ ╚████║╚██████╗██║  ██║   ██║   ██████╔╝
 ╚═════╝ ╚═════╝ ╚═╝  ╚═══╝ ╚═════╝╚═╝  ╚═╝   ╚═╝   ╚═════╝`
	return logoStyle.Render(logo)
}

// Success prints a success line.
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Warning prints a warning line.
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error line.
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render(fmt.Sprintf(format, args...)))
}
