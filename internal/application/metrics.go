package application

import "expvar"

// Counters published on /debug/vars.
var (
	registrations = expvar.NewInt("registrations")
	logins        = expvar.NewInt("logins")
	goalsCreated  = expvar.NewInt("goals_created")
	postsCreated  = expvar.NewInt("posts_created")
)
