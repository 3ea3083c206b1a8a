package auth

import "strings"

// RouteClass describes how the gate treats a route.
type RouteClass int

const (
	// RouteProtected requires a live session token.
	RouteProtected RouteClass = iota
	// RoutePublic is admitted with no identity, token or not.
	RoutePublic
	// RouteLoggedOut is exactly the set of routes a logged-out user should
	// hit; a currently-valid token is rejected here.
	RouteLoggedOut
)

// Classifier maps request paths to route classes. Unknown paths are protected.
type Classifier struct {
	public    map[string]struct{}
	loggedOut map[string]struct{}
}

// NewClassifier returns the service's route classification.
func NewClassifier() *Classifier {
	return &Classifier{
		public: map[string]struct{}{
			"/app": {},
		},
		loggedOut: map[string]struct{}{
			"/users/create":  {},
			"/users/confirm": {},
			"/users/resend":  {},
			"/users/login":   {},
			"/users/reset":   {},
			"/users/change":  {},
			"/users/refresh": {},
		},
	}
}

// Classify returns the class for a request path.
func (c *Classifier) Classify(path string) RouteClass {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if _, ok := c.public[path]; ok {
		return RoutePublic
	}
	if _, ok := c.loggedOut[path]; ok {
		return RouteLoggedOut
	}
	return RouteProtected
}
