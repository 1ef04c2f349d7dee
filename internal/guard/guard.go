// Package guard decides where a page load should be redirected given the
// client's session state.
package guard

import "strings"

// Page identifies a site page by its file name.
type Page string

const (
	PageEmpty        Page = ""
	PageLanding      Page = "index.html"
	PageRegister     Page = "register.html"
	PageLogin        Page = "login.html"
	PageDashboard    Page = "dashboard.html"
	PageTasks        Page = "tasks.html"
	PageProfile      Page = "profile.html"
	PageProfileSetup Page = "profile-setup.html"
)

var publicPages = map[Page]bool{
	PageLanding:  true,
	PageRegister: true,
	PageLogin:    true,
	PageEmpty:    true,
}

var protectedPages = map[Page]bool{
	PageDashboard:    true,
	PageTasks:        true,
	PageProfile:      true,
	PageProfileSetup: true,
}

// State is the part of the session the guard looks at.
type State struct {
	IsLoggedIn     bool
	SetupCompleted bool
}

// PageFromPath returns the last segment of a URL path, e.g. "/app/tasks.html".
func PageFromPath(path string) Page {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	return Page(path)
}

// Evaluate returns the redirect target for page, or false when the page may
// be shown. Rules are checked in order and the first match wins.
func Evaluate(page Page, state State) (Page, bool) {
	switch {
	case state.IsLoggedIn && publicPages[page]:
		return AfterLogin(state), true
	case !state.IsLoggedIn && protectedPages[page]:
		return PageLanding, true
	case state.IsLoggedIn && !state.SetupCompleted && page == PageDashboard:
		return PageProfileSetup, true
	case state.IsLoggedIn && state.SetupCompleted && page == PageProfileSetup:
		return PageDashboard, true
	}
	return "", false
}

// AfterLogin is where a freshly logged-in client goes.
func AfterLogin(state State) Page {
	if state.SetupCompleted {
		return PageDashboard
	}
	return PageProfileSetup
}

func AfterProfileSetup() Page {
	return PageDashboard
}

func AfterLogout() Page {
	return PageLanding
}
