package domain

import "time"

// Page identifies which screen is shown.
type Page int

const (
	PageLogin Page = iota
	PageRegister
	PageLinks
)

func (p Page) String() string {
	switch p {
	case PageLogin:
		return "login"
	case PageRegister:
		return "register"
	case PageLinks:
		return "links"
	default:
		return "unknown"
	}
}

// View is one variant per page. Only LinksView can exist while a token is held.
type View interface {
	Page() Page
	ErrorText() string
}

type LoginView struct {
	Loading bool
	Error   string
	Notice  string // one-time, e.g. after registering
}

type RegisterView struct {
	Loading bool
	Error   string
	Notice  string
}

type LinksView struct {
	Links   []Link
	Loading bool
	Adding  bool
	Error   string
	Account string    // token subject, if the token is a JWT
	Expires time.Time // token expiry, zero if unknown
}

func (LoginView) Page() Page    { return PageLogin }
func (RegisterView) Page() Page { return PageRegister }
func (LinksView) Page() Page    { return PageLinks }

func (v LoginView) ErrorText() string    { return v.Error }
func (v RegisterView) ErrorText() string { return v.Error }
func (v LinksView) ErrorText() string    { return v.Error }

// Clone returns a copy that shares no slices with v.
func (v LinksView) Clone() LinksView {
	if v.Links != nil {
		v.Links = append([]Link(nil), v.Links...)
	}
	return v
}
