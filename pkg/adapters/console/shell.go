package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/wadjakorntonsri/linkshelf/pkg/core/domain"
)

var errQuit = errors.New("quit requested")

// LineReader is the part of *readline.Instance the shell uses.
type LineReader interface {
	Readline() (string, error)
	ReadPassword(prompt string) ([]byte, error)
	SetPrompt(prompt string)
}

// Controller is the set of intents the shell can dispatch.
type Controller interface {
	View() domain.View
	SubmitAuth(ctx context.Context, isLogin bool, creds domain.Credentials)
	Logout(ctx context.Context)
	SubmitLink(ctx context.Context, draft domain.LinkDraft)
	SwitchPage() bool
	TestConnection(ctx context.Context) bool
	DismissNotice()
}

type Shell struct {
	ctrl     Controller
	rl       LineReader
	out      io.Writer
	useColor bool
}

func NewShell(ctrl Controller, rl LineReader, out io.Writer, useColor bool) *Shell {
	return &Shell{ctrl: ctrl, rl: rl, out: out, useColor: useColor}
}

// Prompt is the readline prompt for page p.
func Prompt(p domain.Page) string {
	return p.String() + "> "
}

// Observe prints the in-flight indicator as it appears. Register it with the
// controller's OnChange.
func (s *Shell) Observe(v domain.View) {
	if line := StatusLine(v); line != "" {
		fmt.Fprintln(s.out, colorize(line, ColorGray, s.useColor))
	}
}

// Run reads commands until quit or end of input.
func (s *Shell) Run(ctx context.Context) error {
	s.render()
	for {
		s.rl.SetPrompt(Prompt(s.ctrl.View().Page()))
		line, err := s.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Fprintln(s.out, "Use 'quit' to exit the program.")
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		args := ParseArgs(strings.TrimSpace(line))
		if len(args) == 0 {
			continue
		}
		if err := s.Execute(ctx, args); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintln(s.out, colorize("Error: "+err.Error(), ColorLightRed, s.useColor))
		}
	}
}

// Execute runs one command. Failures of the intent itself land in the view;
// the returned error is only for misuse of the command.
func (s *Shell) Execute(ctx context.Context, args []string) error {
	cmd := strings.ToLower(args[0])
	switch cmd {
	case "login", "register":
		return s.auth(ctx, cmd == "login", args[1:])
	case "switch":
		if !s.ctrl.SwitchPage() {
			return errors.New("log out first")
		}
	case "test":
		if !s.ctrl.TestConnection(ctx) {
			return errors.New("log out to test the connection")
		}
	case "add":
		if len(args) != 3 {
			return errors.New("usage: add <title> <url>")
		}
		if s.ctrl.View().Page() != domain.PageLinks {
			return errors.New("log in first")
		}
		s.ctrl.SubmitLink(ctx, domain.LinkDraft{Title: args[1], URL: args[2]})
	case "logout":
		s.ctrl.Logout(ctx)
	case "show", "ls":
	case "help":
		s.printHelp()
		return nil
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
	s.render()
	return nil
}

func (s *Shell) auth(ctx context.Context, isLogin bool, args []string) error {
	page := s.ctrl.View().Page()
	want := domain.PageRegister
	if isLogin {
		want = domain.PageLogin
	}
	if page == domain.PageLinks {
		// Refused by the controller; no need to ask for a password.
		s.ctrl.SubmitAuth(ctx, isLogin, domain.Credentials{})
		s.render()
		return nil
	}
	if page != want {
		s.ctrl.SwitchPage()
	}

	var creds domain.Credentials
	if len(args) > 0 {
		creds.Username = args[0]
	} else {
		s.rl.SetPrompt("username: ")
		name, err := s.rl.Readline()
		if err != nil {
			return err
		}
		creds.Username = strings.TrimSpace(name)
	}
	pw, err := s.rl.ReadPassword("password: ")
	if err != nil {
		return err
	}
	creds.Password = string(pw)

	s.ctrl.SubmitAuth(ctx, isLogin, creds)
	s.render()
	return nil
}

func (s *Shell) render() {
	fmt.Fprintln(s.out)
	Render(s.out, s.ctrl.View(), s.useColor)
	s.ctrl.DismissNotice()
}

func (s *Shell) printHelp() {
	fmt.Fprint(s.out, `Commands:
  login [username]      log in, the password is asked for
  register [username]   create an account
  switch                toggle between the login and register pages
  test                  check the backend is reachable
  add <title> <url>     add a link, quote titles with spaces
  show                  print the current page again
  logout                forget the stored token
  help                  show this help
  quit                  leave the shell
`)
}

// ParseArgs splits input on spaces, keeping double-quoted runs together.
func ParseArgs(input string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false
	quoted := false

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			quoted = true
		case r == ' ' && !inQuotes:
			if current.Len() > 0 || quoted {
				args = append(args, current.String())
				current.Reset()
			}
			quoted = false
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 || quoted {
		args = append(args, current.String())
	}
	return args
}
