// Package tui renders forms in the terminal. The interactive Renderer asks
// for each visible field through a PromptDriver (survey by default); View
// draws the current state with lipgloss.
package tui
