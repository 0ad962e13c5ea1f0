// Package policy holds the authorization rules for each entity. A policy is
// evaluated before handler logic and returns whether the request may proceed
// together with the query scope the handler must apply.
package policy

import (
	"net/http"

	"github.com/lshigami/surveyhub/internal/auth"
	"gorm.io/gorm"
)

type Action int

const (
	ActionRead Action = iota + 1
	ActionCreate
	ActionUpdate
	ActionDelete
)

func (a Action) Safe() bool {
	return a == ActionRead
}

// ActionFromMethod maps an HTTP method to the action it performs. Custom
// POST endpoints such as submit-answers count as create.
func ActionFromMethod(method string) Action {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return ActionRead
	case http.MethodPut, http.MethodPatch:
		return ActionUpdate
	case http.MethodDelete:
		return ActionDelete
	default:
		return ActionCreate
	}
}

// Scope narrows a query to the rows the caller may see.
type Scope func(db *gorm.DB) *gorm.DB

// Unscoped leaves the query untouched.
func Unscoped(db *gorm.DB) *gorm.DB { return db }

const (
	ReasonNotAuthenticated = "Authentication credentials were not provided."
	ReasonForbidden        = "You do not have permission to perform this action."
	ReasonReadOnly         = "Method not allowed on a read-only resource."
)

type Decision struct {
	Allowed bool
	Reason  string
	Scope   Scope
}

func allow(scope Scope) Decision {
	if scope == nil {
		scope = Unscoped
	}
	return Decision{Allowed: true, Scope: scope}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason, Scope: Unscoped}
}

// Func is a per-entity policy.
type Func func(p *auth.Principal, action Action) Decision

// Survey: anyone may read; writes need an authenticated caller. Ownership of
// an existing survey is checked against the loaded row with SurveyOwner.
func Survey(p *auth.Principal, action Action) Decision {
	if action.Safe() {
		return allow(nil)
	}
	if !p.Authenticated() {
		return deny(ReasonNotAuthenticated)
	}
	return allow(nil)
}

// SurveyOwner is the object-level check for survey writes.
func SurveyOwner(p *auth.Principal, action Action, ownerID uint) Decision {
	if action.Safe() {
		return allow(nil)
	}
	if !p.Authenticated() {
		return deny(ReasonNotAuthenticated)
	}
	if p.UserID != ownerID {
		return deny(ReasonForbidden)
	}
	return allow(nil)
}

// Question management is restricted to administrators.
func Question(p *auth.Principal, action Action) Decision {
	return adminOnly(p)
}

// Choice management is restricted to administrators.
func Choice(p *auth.Principal, action Action) Decision {
	return adminOnly(p)
}

func adminOnly(p *auth.Principal) Decision {
	if !p.Authenticated() {
		return deny(ReasonNotAuthenticated)
	}
	if !p.Admin() {
		return deny(ReasonForbidden)
	}
	return allow(nil)
}

// Response: authenticated callers only, and only their own responses.
func Response(p *auth.Principal, action Action) Decision {
	if !p.Authenticated() {
		return deny(ReasonNotAuthenticated)
	}
	userID := p.UserID
	return allow(func(db *gorm.DB) *gorm.DB {
		return db.Where("responses.respondent_id = ?", userID)
	})
}

// Answer: read-only, and only answers belonging to the caller's responses.
func Answer(p *auth.Principal, action Action) Decision {
	if !p.Authenticated() {
		return deny(ReasonNotAuthenticated)
	}
	if !action.Safe() {
		return deny(ReasonReadOnly)
	}
	userID := p.UserID
	return allow(func(db *gorm.DB) *gorm.DB {
		return db.Where("answers.response_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).Table("responses").Select("id").Where("respondent_id = ?", userID))
	})
}
