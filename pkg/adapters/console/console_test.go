package console

import (
	"bytes"
	"context"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/wadjakorntonsri/linkshelf/pkg/core/domain"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		view    domain.View
		want    []string
		notWant []string
	}{
		{
			name: "login with error",
			view: domain.LoginView{Error: "Bad username or password"},
			want: []string{"Login", "! Bad username or password", "switch"},
		},
		{
			name:    "login in flight",
			view:    domain.LoginView{Loading: true},
			want:    []string{"Processing..."},
			notWant: []string{"switch"},
		},
		{
			name: "register notice",
			view: domain.RegisterView{Notice: "hello"},
			want: []string{"Create Account", "hello"},
		},
		{
			name: "empty collection",
			view: domain.LinksView{},
			want: []string{"My Links", "No links yet!"},
		},
		{
			name:    "first load",
			view:    domain.LinksView{Loading: true},
			want:    []string{"Loading..."},
			notWant: []string{"No links yet!"},
		},
		{
			name: "links",
			view: domain.LinksView{Account: "7", Links: []domain.Link{
				{ID: 1, Title: "Go", URL: "https://go.dev"},
				{ID: 2, Title: "Docs", URL: "https://pkg.go.dev"},
			}},
			want:    []string{"Signed in as 7", "1. Go", "https://go.dev", "2. Docs"},
			notWant: []string{"No links yet!", "Loading..."},
		},
		{
			name:    "refresh keeps links visible",
			view:    domain.LinksView{Loading: true, Links: []domain.Link{{ID: 1, Title: "Go", URL: "https://go.dev"}}},
			want:    []string{"1. Go"},
			notWant: []string{"Loading..."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Render(&buf, tt.view, false)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
			if strings.Contains(out, "\033[") {
				t.Error("colour codes written with colour off")
			}
		})
	}
}

func TestRenderColor(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, domain.LoginView{Error: "boom"}, true)
	if !strings.Contains(buf.String(), string(ColorLightRed)+"! boom") {
		t.Errorf("error not coloured: %q", buf.String())
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`add Go https://go.dev`, []string{"add", "Go", "https://go.dev"}},
		{`add "My Portfolio" https://me.dev`, []string{"add", "My Portfolio", "https://me.dev"}},
		{`  login   alice `, []string{"login", "alice"}},
		{`add "" x`, []string{"add", "", "x"}},
		{``, nil},
	}
	for _, tt := range tests {
		if got := ParseArgs(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseArgs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type fakeReader struct {
	lines     []string
	passwords []string
	prompts   []string
}

func (r *fakeReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	if line == "^C" {
		return "", readline.ErrInterrupt
	}
	return line, nil
}

func (r *fakeReader) ReadPassword(prompt string) ([]byte, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.passwords) == 0 {
		return nil, io.EOF
	}
	pw := r.passwords[0]
	r.passwords = r.passwords[1:]
	return []byte(pw), nil
}

func (r *fakeReader) SetPrompt(prompt string) {
	r.prompts = append(r.prompts, prompt)
}

type fakeController struct {
	view    domain.View
	auths   []domain.Credentials
	isLogin []bool
	drafts  []domain.LinkDraft
	logouts int
	tested  int
}

func (c *fakeController) View() domain.View { return c.view }

func (c *fakeController) SubmitAuth(ctx context.Context, isLogin bool, creds domain.Credentials) {
	c.auths = append(c.auths, creds)
	c.isLogin = append(c.isLogin, isLogin)
	if _, ok := c.view.(domain.LinksView); ok {
		return
	}
	if isLogin {
		c.view = domain.LinksView{Account: creds.Username}
	}
}

func (c *fakeController) Logout(ctx context.Context) {
	c.logouts++
	c.view = domain.LoginView{}
}

func (c *fakeController) SubmitLink(ctx context.Context, draft domain.LinkDraft) {
	c.drafts = append(c.drafts, draft)
}

func (c *fakeController) SwitchPage() bool {
	switch c.view.(type) {
	case domain.LoginView:
		c.view = domain.RegisterView{}
	case domain.RegisterView:
		c.view = domain.LoginView{}
	default:
		return false
	}
	return true
}

func (c *fakeController) TestConnection(ctx context.Context) bool {
	if c.view.Page() == domain.PageLinks {
		return false
	}
	c.tested++
	return true
}

func (c *fakeController) DismissNotice() {
	if v, ok := c.view.(domain.LoginView); ok {
		v.Notice = ""
		c.view = v
	}
}

func TestShellSession(t *testing.T) {
	ctrl := &fakeController{view: domain.LoginView{}}
	rl := &fakeReader{
		lines: []string{
			"login alice",
			`add "My Portfolio" https://me.dev`,
			"^C",
			"logout",
			"quit",
			"never reached",
		},
		passwords: []string{"secret"},
	}
	var out bytes.Buffer

	if err := NewShell(ctrl, rl, &out, false).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(ctrl.auths) != 1 || ctrl.auths[0] != (domain.Credentials{Username: "alice", Password: "secret"}) || !ctrl.isLogin[0] {
		t.Errorf("auths = %+v login=%v", ctrl.auths, ctrl.isLogin)
	}
	if len(ctrl.drafts) != 1 || ctrl.drafts[0] != (domain.LinkDraft{Title: "My Portfolio", URL: "https://me.dev"}) {
		t.Errorf("drafts = %+v", ctrl.drafts)
	}
	if ctrl.logouts != 1 {
		t.Errorf("logouts = %d", ctrl.logouts)
	}
	if len(rl.lines) != 1 {
		t.Errorf("shell kept reading after quit")
	}
	for _, want := range []string{"login> ", "links> ", "password: "} {
		if !contains(rl.prompts, want) {
			t.Errorf("prompt %q never shown; got %q", want, rl.prompts)
		}
	}
	if !strings.Contains(out.String(), "Use 'quit'") {
		t.Error("interrupt hint not printed")
	}
}

func TestShellAuthAsksForUsername(t *testing.T) {
	ctrl := &fakeController{view: domain.LoginView{}}
	rl := &fakeReader{lines: []string{" bob "}, passwords: []string{"pw"}}

	if err := NewShell(ctrl, rl, io.Discard, false).Execute(context.Background(), []string{"register"}); err != nil {
		t.Fatal(err)
	}
	if len(ctrl.auths) != 1 || ctrl.auths[0].Username != "bob" || ctrl.isLogin[0] {
		t.Fatalf("auths = %+v login=%v", ctrl.auths, ctrl.isLogin)
	}
	if ctrl.view.Page() != domain.PageRegister {
		t.Errorf("register from the login page should switch first, on %v", ctrl.view.Page())
	}
}

func TestShellAuthWhileLoggedIn(t *testing.T) {
	ctrl := &fakeController{view: domain.LinksView{}}
	rl := &fakeReader{}

	if err := NewShell(ctrl, rl, io.Discard, false).Execute(context.Background(), []string{"login", "x"}); err != nil {
		t.Fatal(err)
	}
	if len(ctrl.auths) != 1 || ctrl.auths[0] != (domain.Credentials{}) {
		t.Errorf("auths = %+v", ctrl.auths)
	}
	if len(rl.prompts) != 0 {
		t.Errorf("password asked while logged in: %q", rl.prompts)
	}
}

func TestShellMisuse(t *testing.T) {
	tests := []struct {
		name string
		view domain.View
		args []string
	}{
		{"add needs two args", domain.LinksView{}, []string{"add", "only-title"}},
		{"add on login page", domain.LoginView{}, []string{"add", "t", "https://x.dev"}},
		{"switch while logged in", domain.LinksView{}, []string{"switch"}},
		{"test while logged in", domain.LinksView{}, []string{"test"}},
		{"unknown", domain.LoginView{}, []string{"frobnicate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := &fakeController{view: tt.view}
			err := NewShell(ctrl, &fakeReader{}, io.Discard, false).Execute(context.Background(), tt.args)
			if err == nil {
				t.Error("expected an error")
			}
			if len(ctrl.drafts) != 0 {
				t.Error("link submitted on misuse")
			}
		})
	}
}

func TestNoticeShownOnce(t *testing.T) {
	ctrl := &fakeController{view: domain.LoginView{Notice: "Registration successful! Please log in."}}
	var out bytes.Buffer
	s := NewShell(ctrl, &fakeReader{}, &out, false)

	if err := s.Execute(context.Background(), []string{"show"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Registration successful") {
		t.Fatalf("notice not shown:\n%s", out.String())
	}

	out.Reset()
	if err := s.Execute(context.Background(), []string{"show"}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "Registration successful") {
		t.Errorf("notice shown twice:\n%s", out.String())
	}
}

func TestObserve(t *testing.T) {
	var out bytes.Buffer
	s := NewShell(&fakeController{}, &fakeReader{}, &out, false)
	s.Observe(domain.LoginView{})
	s.Observe(domain.LoginView{Loading: true})
	s.Observe(domain.LinksView{Adding: true})
	if got, want := out.String(), "Processing...\nAdding...\n"; got != want {
		t.Errorf("Observe output = %q, want %q", got, want)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
