package util

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/manifoldco/promptui"
)

var (
	IsDebug bool

	// Style definitions for help and errors
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			Underline(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4")).
			Bold(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#45B7D1")).
			Italic(true)

	exampleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Italic(true)

	// Error styling
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4757")).
			Bold(true)

	debugErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF4757")).
			Padding(1, 2)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA726")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF69B4")).
			Bold(true)
)

// SetDebugMode sets the debug mode
func SetDebugMode(debug bool) {
	IsDebug = debug
}

// ErrorHandler returns a stylized error message
func ErrorHandler(err error) string {
	if IsDebug {
		errorMessage := errorStyle.Render("DEBUG ERROR")
		fullError := debugErrorStyle.Render(fmt.Sprintf("%+v", err))
		return fmt.Sprintf("%s\n%s", errorMessage, fullError)
	}

	styledError := errorStyle.Render(fmt.Sprintf("✗ %v", err))
	styledHint := warningStyle.Render("run the program with -debug to see details")
	return fmt.Sprintf("%s\n%s", styledError, styledHint)
}

// Helper prints the help message
func Helper() {
	title := titleStyle.Render("GoDAFilms - DAFilms.cz from your terminal")

	usage := helpStyle.Render("Usage:")
	usageExamples := []string{
		"  godafilms " + optionStyle.Render("[options]") + " " + exampleStyle.Render("<action> [argument]"),
	}

	actions := helpStyle.Render("Actions:")
	actionList := []string{
		"  " + optionStyle.Render("newest") + "        list the newest films",
		"  " + optionStyle.Render("all") + "           list the full catalog (see -sort)",
		"  " + optionStyle.Render("subscription") + "  list films covered by the subscription",
		"  " + optionStyle.Render("purchased") + "     list purchased films (login required)",
		"  " + optionStyle.Render("search <q>") + "    search films by title",
		"  " + optionStyle.Render("detail <id>") + "   show metadata for a film",
		"  " + optionStyle.Render("play [id]") + "     resolve a stream and hand it to mpv",
		"  " + optionStyle.Render("login") + "         log in with stored or prompted credentials",
		"  " + optionStyle.Render("logout") + "        drop the session",
		"  " + optionStyle.Render("status") + "        show login state",
	}

	options := helpStyle.Render("Options:")
	optionsList := []string{
		"  " + optionStyle.Render("-limit N") + "   cap listing length (default 20)",
		"  " + optionStyle.Render("-sort S") + "    newest | oldest | title (action \"all\" only)",
		"  " + optionStyle.Render("-debug") + "     enable debug mode with detailed information",
		"  " + optionStyle.Render("-help, -h") + "  show this help message",
		"  " + optionStyle.Render("-version") + "   show version information",
	}

	fmt.Println(title)
	fmt.Println()
	fmt.Println(usage)
	for _, line := range usageExamples {
		fmt.Println(line)
	}
	fmt.Println()
	fmt.Println(actions)
	for _, line := range actionList {
		fmt.Println(line)
	}
	fmt.Println()
	fmt.Println(options)
	for _, line := range optionsList {
		fmt.Println(line)
	}
	fmt.Println()
}

// PromptInput prompts the user for a single line of input
func PromptInput(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: promptStyle.Render(label),
	}

	value, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// PromptPassword prompts for a password without echoing it
func PromptPassword(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: promptStyle.Render(label),
		Mask:  '*',
	}

	value, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}
