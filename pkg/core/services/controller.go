package services

import (
	"context"
	"log"
	"sync"

	"github.com/wadjakorntonsri/linkshelf/pkg/core/domain"
	"github.com/wadjakorntonsri/linkshelf/pkg/ports"
)

const (
	RegisteredNotice    = "Registration successful! Please log in."
	AlreadyLoggedInText = "Already logged in. Log out first."
)

type eventKind int

const (
	tokenSet eventKind = iota
	tokenCleared
	fetchLinks
)

type event struct {
	kind  eventKind
	token string
}

// Controller owns the client's view state. Every intent runs to completion
// on the caller's goroutine; token changes are queued as events and handled
// before the intent returns. API failures end up in the view's Error field
// and are never returned.
type Controller struct {
	api     ports.LinkAPI
	session *SessionService

	mu        sync.Mutex
	view      domain.View
	queue     []event
	observers []func(domain.View)
}

func NewController(api ports.LinkAPI, session *SessionService) *Controller {
	return &Controller{
		api:     api,
		session: session,
		view:    domain.LoginView{},
	}
}

// OnChange registers fn to receive a snapshot after every state change.
func (c *Controller) OnChange(fn func(domain.View)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// View returns a snapshot of the current state.
func (c *Controller) View() domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneView(c.view)
}

// Start picks the initial page from the persisted session.
func (c *Controller) Start(ctx context.Context) {
	if token, ok := c.session.Restore(ctx); ok {
		c.emit(event{kind: tokenSet, token: token})
	} else {
		c.setView(domain.LoginView{})
	}
	c.drain(ctx)
}

// SubmitAuth logs in (isLogin) or registers with creds.
func (c *Controller) SubmitAuth(ctx context.Context, isLogin bool, creds domain.Credentials) {
	if _, ok := c.session.Get(); ok {
		c.mutate(func(v domain.View) domain.View {
			if lv, ok := v.(domain.LinksView); ok {
				lv.Error = AlreadyLoggedInText
				return lv
			}
			return v
		})
		return
	}

	c.setAuthView(isLogin, true, "", "")

	var token string
	err := creds.Validate()
	if err == nil {
		if isLogin {
			token, err = c.api.Login(ctx, creds)
		} else {
			err = c.api.Register(ctx, creds)
		}
	}
	if err != nil {
		log.Printf("controller: auth (login=%t) for %q: %v", isLogin, creds.Username, err)
		c.setAuthView(isLogin, false, domain.Message(err), "")
		return
	}

	if isLogin {
		c.session.Set(ctx, token)
		c.emit(event{kind: tokenSet, token: token})
	} else {
		c.setView(domain.LoginView{Notice: RegisteredNotice})
	}
	c.drain(ctx)
}

func (c *Controller) Logout(ctx context.Context) {
	c.session.Clear(ctx)
	c.emit(event{kind: tokenCleared})
	c.drain(ctx)
}

// SubmitLink adds a link and re-fetches the whole collection on success.
func (c *Controller) SubmitLink(ctx context.Context, draft domain.LinkDraft) {
	token, ok := c.session.Get()
	if !ok {
		return
	}

	c.mutate(func(v domain.View) domain.View {
		lv, ok := v.(domain.LinksView)
		if !ok {
			return v
		}
		lv.Adding = true
		lv.Error = ""
		return lv
	})

	err := draft.Validate()
	if err == nil {
		err = c.api.AddLink(ctx, token, draft)
	}

	c.mutate(func(v domain.View) domain.View {
		lv, ok := v.(domain.LinksView)
		if !ok {
			return v
		}
		lv.Adding = false
		if err != nil {
			lv.Error = domain.Message(err)
		}
		return lv
	})
	if err != nil {
		log.Printf("controller: add link %q: %v", draft.URL, err)
		return
	}

	c.emit(event{kind: fetchLinks, token: token})
	c.drain(ctx)
}

// SwitchPage toggles between login and register. It reports false while a
// session is active.
func (c *Controller) SwitchPage() bool {
	if _, ok := c.session.Get(); ok {
		return false
	}

	switched := false
	c.mutate(func(v domain.View) domain.View {
		switch v.(type) {
		case domain.LoginView:
			switched = true
			return domain.RegisterView{}
		case domain.RegisterView:
			switched = true
			return domain.LoginView{}
		}
		return v
	})
	return switched
}

// TestConnection pings the backend from the login or register page.
func (c *Controller) TestConnection(ctx context.Context) bool {
	page := c.View().Page()
	if page == domain.PageLinks {
		return false
	}
	isLogin := page == domain.PageLogin

	c.setAuthView(isLogin, false, "", "")
	msg, err := c.api.TestConnection(ctx)
	if err != nil {
		log.Printf("controller: test connection: %v", err)
		c.setAuthView(isLogin, false, domain.Message(err), "")
		return true
	}
	c.setAuthView(isLogin, false, "", `Success! Backend says: "`+msg+`"`)
	return true
}

// DismissNotice drops the one-time notice once a renderer has shown it.
func (c *Controller) DismissNotice() {
	switch v := c.View().(type) {
	case domain.LoginView:
		if v.Notice == "" {
			return
		}
	case domain.RegisterView:
		if v.Notice == "" {
			return
		}
	default:
		return
	}

	c.mutate(func(v domain.View) domain.View {
		switch v := v.(type) {
		case domain.LoginView:
			v.Notice = ""
			return v
		case domain.RegisterView:
			v.Notice = ""
			return v
		}
		return v
	})
}

func (c *Controller) emit(ev event) {
	c.mu.Lock()
	c.queue = append(c.queue, ev)
	c.mu.Unlock()
}

func (c *Controller) drain(ctx context.Context) {
	for {
		c.mu.Lock()
		if len(c.queue) == 0 {
			c.mu.Unlock()
			return
		}
		ev := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()

		switch ev.kind {
		case tokenSet:
			subject, expires := TokenClaims(ev.token)
			c.setView(domain.LinksView{Account: subject, Expires: expires})
			c.emit(event{kind: fetchLinks, token: ev.token})
		case tokenCleared:
			c.setView(domain.LoginView{})
		case fetchLinks:
			c.fetchLinks(ctx, ev.token)
		}
	}
}

func (c *Controller) fetchLinks(ctx context.Context, token string) {
	if current, ok := c.session.Get(); !ok || current != token {
		return
	}

	c.mutate(func(v domain.View) domain.View {
		lv, ok := v.(domain.LinksView)
		if !ok {
			return v
		}
		lv.Loading = true
		lv.Error = ""
		return lv
	})

	links, err := c.api.ListLinks(ctx, token)
	if err != nil {
		log.Printf("controller: list links: %v", err)
	}

	c.mutate(func(v domain.View) domain.View {
		lv, ok := v.(domain.LinksView)
		if !ok {
			return v
		}
		lv.Loading = false
		if err != nil {
			lv.Error = domain.Message(err)
			return lv
		}
		lv.Links = links
		return lv
	})
}

func (c *Controller) setView(v domain.View) {
	c.mutate(func(domain.View) domain.View { return v })
}

// setAuthView replaces the view with the login or register variant.
func (c *Controller) setAuthView(isLogin, loading bool, errText, notice string) {
	if isLogin {
		c.setView(domain.LoginView{Loading: loading, Error: errText, Notice: notice})
		return
	}
	c.setView(domain.RegisterView{Loading: loading, Error: errText, Notice: notice})
}

func (c *Controller) mutate(fn func(domain.View) domain.View) {
	c.mu.Lock()
	c.view = fn(c.view)
	snapshot := cloneView(c.view)
	observers := append(([]func(domain.View))(nil), c.observers...)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}

func cloneView(v domain.View) domain.View {
	if lv, ok := v.(domain.LinksView); ok {
		return lv.Clone()
	}
	return v
}
