// Package nav maps route fragments to sessions and keeps the active
// session valid as the session list changes.
//
// Routes use the fragment form "chat<N>". The Router only records where
// the user is; deciding where to go after the session list changes is
// the job of Resolve (startup) and Reconcile (after deletion), both of
// which are pure functions over the current session list.
package nav

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/zhubert/parley/internal/chat"
)

var routePattern = regexp.MustCompile(`^chat(\d+)$`)

// ParseRoute extracts the session ID from a "chat<N>" fragment.
// Anything else, including an empty string, reports false.
func ParseRoute(fragment string) (int, bool) {
	m := routePattern.FindStringSubmatch(fragment)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

// RouteFor returns the fragment for a session ID.
func RouteFor(id int) string {
	return fmt.Sprintf("chat%d", id)
}

// Resolve picks the session a requested fragment should land on. An
// exact match wins; an unparseable or stale fragment falls back to the
// first session; an empty session list resolves to nothing.
func Resolve(requested string, sessions []chat.Session) (int, bool) {
	if len(sessions) == 0 {
		return 0, false
	}
	if id, ok := ParseRoute(requested); ok {
		for _, s := range sessions {
			if s.ID == id {
				return id, true
			}
		}
	}
	return sessions[0].ID, true
}

// Reconcile re-validates the active session against the current list.
// It returns the ID to use, whether the active session had to move, and
// whether no session is left at all.
func Reconcile(activeID int, sessions []chat.Session) (newID int, moved bool, none bool) {
	if len(sessions) == 0 {
		return 0, false, true
	}
	for _, s := range sessions {
		if s.ID == activeID {
			return activeID, false, false
		}
	}
	return sessions[0].ID, true, false
}

// Router tracks the current route fragment.
type Router struct {
	fragment string
}

// NewRouter starts at the given fragment.
func NewRouter(fragment string) *Router {
	return &Router{fragment: fragment}
}

// Current returns the current fragment.
func (r *Router) Current() string {
	return r.fragment
}

// NavigateTo points the router at a session.
func (r *Router) NavigateTo(id int) {
	r.fragment = RouteFor(id)
}

// NavigateNone clears the route when no session exists.
func (r *Router) NavigateNone() {
	r.fragment = ""
}
