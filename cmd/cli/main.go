package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
	"github.com/wadjakorntonsri/linkshelf/pkg/adapters/apiclient"
	"github.com/wadjakorntonsri/linkshelf/pkg/adapters/console"
	"github.com/wadjakorntonsri/linkshelf/pkg/adapters/tokenstore"
	"github.com/wadjakorntonsri/linkshelf/pkg/config"
	"github.com/wadjakorntonsri/linkshelf/pkg/core/domain"
	"github.com/wadjakorntonsri/linkshelf/pkg/core/services"
	"golang.org/x/term"
)

const usage = "usage: linkshelf [test|login|register|links|add|logout|shell] [flags]"

var commands = map[string]bool{
	"test": true, "login": true, "register": true, "links": true,
	"add": true, "logout": true, "shell": true,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code: 0 on
// success, 1 when the resulting view shows an error, 2 on bad usage.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := "shell"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}
	if !commands[cmd] {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	cfg := config.Load()
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "backend base URL")
	ephemeral := fs.Bool("ephemeral", false, "keep the token in memory only")
	var username, password string
	if cmd == "login" || cmd == "register" {
		fs.StringVar(&username, "u", "", "username (prompted when empty)")
		fs.StringVar(&password, "p", "", "password (prompted when empty)")
	}
	fs.Parse(args)

	if *ephemeral {
		cfg.SessionBackend = "memory"
	}
	closeLog := setupLog(cfg.LogFile, stderr)
	defer closeLog()

	ctx := context.Background()
	store, err := tokenstore.New(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "warning: session store %q unavailable, token will not persist: %v\n", cfg.SessionBackend, err)
		store = tokenstore.NewMemoryStore()
	}
	defer store.Close()

	client := apiclient.New(cfg.APIURL, nil, cfg.APITimeout)
	ctrl := services.NewController(client, services.NewSessionService(store))
	useColor := isTerminal(stdout)

	if cmd == "shell" {
		if err := runShell(ctx, cfg, ctrl, useColor); err != nil {
			fmt.Fprintf(stderr, "shell: %v\n", err)
			return 1
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if cmd != "test" {
		ctrl.Start(ctx)
	}

	switch cmd {
	case "test":
		ctrl.TestConnection(ctx)
	case "login", "register":
		if ctrl.View().Page() != domain.PageLinks {
			creds, err := promptCredentials(stdin, stderr, username, password)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
			ctrl.SubmitAuth(ctx, cmd == "login", creds)
		} else {
			ctrl.SubmitAuth(ctx, cmd == "login", domain.Credentials{})
		}
	case "links":
		if ctrl.View().Page() != domain.PageLinks {
			fmt.Fprintln(stderr, "Not logged in. Run 'linkshelf login' first.")
			return 1
		}
	case "add":
		if fs.NArg() != 2 {
			fmt.Fprintln(stderr, "usage: linkshelf add [flags] <title> <url>")
			return 2
		}
		if ctrl.View().Page() != domain.PageLinks {
			fmt.Fprintln(stderr, "Not logged in. Run 'linkshelf login' first.")
			return 1
		}
		ctrl.SubmitLink(ctx, domain.LinkDraft{Title: fs.Arg(0), URL: fs.Arg(1)})
	case "logout":
		ctrl.Logout(ctx)
	}

	view := ctrl.View()
	console.Render(stdout, view, useColor)
	if view.ErrorText() != "" {
		return 1
	}
	return 0
}

func runShell(ctx context.Context, cfg *config.Config, ctrl *services.Controller, useColor bool) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          console.Prompt(domain.PageLogin),
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("initialize readline: %w", err)
	}
	defer rl.Close()

	shell := console.NewShell(ctrl, rl, rl.Stdout(), useColor)
	ctrl.OnChange(shell.Observe)
	ctrl.Start(ctx)

	fmt.Fprintf(rl.Stdout(), "linkshelf client for %s. Type 'help' for commands.\n", cfg.APIURL)
	return shell.Run(ctx)
}

// promptCredentials fills in whatever the flags left empty from stdin.
func promptCredentials(stdin io.Reader, prompts io.Writer, username, password string) (domain.Credentials, error) {
	in := bufio.NewReader(stdin)
	if username == "" {
		fmt.Fprint(prompts, "username: ")
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return domain.Credentials{}, fmt.Errorf("read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if password == "" {
		fmt.Fprint(prompts, "password: ")
		if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			b, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(prompts)
			if err != nil {
				return domain.Credentials{}, fmt.Errorf("read password: %w", err)
			}
			password = string(b)
		} else {
			line, err := in.ReadString('\n')
			if err != nil && line == "" {
				return domain.Credentials{}, fmt.Errorf("read password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}
	}
	return domain.Credentials{Username: username, Password: password}, nil
}

// setupLog sends the standard logger to path, or nowhere so it does not
// interleave with the prompt.
func setupLog(path string, stderr io.Writer) func() {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(stderr, "warning: cannot open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { f.Close() }
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
