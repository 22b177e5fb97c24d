// Package console is the terminal front end: a pure renderer of the
// controller's view and a readline shell that dispatches user intents.
package console

import (
	"fmt"
	"io"
	"time"

	"github.com/wadjakorntonsri/linkshelf/pkg/core/domain"
)

type Color string

const (
	ColorDefault    Color = "\033[0m"
	ColorGray       Color = "\033[38;2;150;150;150m"
	ColorLightRed   Color = "\033[38;2;255;150;150m"
	ColorLightGreen Color = "\033[38;2;150;255;150m"
	ColorCyan       Color = "\033[38;2;0;200;255m"
	ColorPurple     Color = "\033[38;2;200;150;255m"
	ColorPink       Color = "\033[38;2;255;192;203m"
)

const (
	processingText = "Processing..."
	loadingText    = "Loading..."
	addingText     = "Adding..."
	emptyText      = "No links yet!"
)

func colorize(s string, c Color, useColor bool) string {
	if !useColor || c == ColorDefault {
		return s
	}
	return string(c) + s + string(ColorDefault)
}

// Title is the heading shown for a page.
func Title(p domain.Page) string {
	switch p {
	case domain.PageLogin:
		return "Login"
	case domain.PageRegister:
		return "Create Account"
	case domain.PageLinks:
		return "My Links"
	default:
		return ""
	}
}

// StatusLine is the in-flight indicator for v, or "" when nothing is pending.
func StatusLine(v domain.View) string {
	switch v := v.(type) {
	case domain.LoginView:
		if v.Loading {
			return processingText
		}
	case domain.RegisterView:
		if v.Loading {
			return processingText
		}
	case domain.LinksView:
		if v.Adding {
			return addingText
		}
		if v.Loading {
			return loadingText
		}
	}
	return ""
}

// Render writes the whole page for v. It reads nothing but v.
func Render(w io.Writer, v domain.View, useColor bool) {
	fmt.Fprintln(w, colorize(Title(v.Page()), ColorPurple, useColor))

	if lv, ok := v.(domain.LinksView); ok && lv.Account != "" {
		line := "Signed in as " + lv.Account
		if !lv.Expires.IsZero() {
			line += " until " + lv.Expires.Local().Format(time.DateTime)
		}
		fmt.Fprintln(w, colorize(line, ColorGray, useColor))
	}

	if msg := v.ErrorText(); msg != "" {
		fmt.Fprintln(w, colorize("! "+msg, ColorLightRed, useColor))
	}

	switch v := v.(type) {
	case domain.LoginView:
		renderAuth(w, v.Notice, v.Loading, "register", useColor)
	case domain.RegisterView:
		renderAuth(w, v.Notice, v.Loading, "login", useColor)
	case domain.LinksView:
		renderLinks(w, v, useColor)
	}
}

func renderAuth(w io.Writer, notice string, loading bool, other string, useColor bool) {
	if notice != "" {
		fmt.Fprintln(w, colorize(notice, ColorLightGreen, useColor))
	}
	if loading {
		fmt.Fprintln(w, processingText)
		return
	}
	fmt.Fprintln(w, colorize("Type 'switch' to "+other+" instead, or 'help'.", ColorGray, useColor))
}

func renderLinks(w io.Writer, v domain.LinksView, useColor bool) {
	if v.Adding {
		fmt.Fprintln(w, addingText)
	}
	if len(v.Links) == 0 {
		if v.Loading {
			fmt.Fprintln(w, colorize(loadingText, ColorGray, useColor))
		} else {
			fmt.Fprintln(w, colorize(emptyText, ColorGray, useColor))
		}
		return
	}
	for i, l := range v.Links {
		fmt.Fprintf(w, "%3d. %s\n     %s\n", i+1, colorize(l.Title, ColorPink, useColor), colorize(l.URL, ColorCyan, useColor))
	}
}
