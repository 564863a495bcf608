package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/ludo-technologies/protoscan/service"
	"golang.org/x/term"
)

// lipglossStyler colors report markers and headings for terminals
type lipglossStyler struct {
	pass    lipgloss.Style
	fail    lipgloss.Style
	warn    lipgloss.Style
	heading lipgloss.Style
}

func newLipglossStyler() *lipglossStyler {
	return &lipglossStyler{
		pass:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		heading: lipgloss.NewStyle().Bold(true),
	}
}

func (s *lipglossStyler) Pass(text string) string    { return s.pass.Render(text) }
func (s *lipglossStyler) Fail(text string) string    { return s.fail.Render(text) }
func (s *lipglossStyler) Warn(text string) string    { return s.warn.Render(text) }
func (s *lipglossStyler) Heading(text string) string { return s.heading.Render(text) }

// stylerFor picks colored output only when enabled and out is a terminal
func stylerFor(color bool, out io.Writer) service.Styler {
	if !color || os.Getenv("NO_COLOR") != "" {
		return service.PlainStyler{}
	}
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return service.PlainStyler{}
	}
	return newLipglossStyler()
}
