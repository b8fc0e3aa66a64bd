package auth_test

import (
	"techquiz-core/auth"
	"techquiz-core/gateway"
)

// The gateway client is the production Backend, and the session feeds its
// authenticated requests.
var (
	_ auth.Backend        = (*gateway.Client)(nil)
	_ gateway.TokenSource = (*auth.Session)(nil)
)
