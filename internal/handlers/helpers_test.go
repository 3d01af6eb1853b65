package handlers_test

import (
	"context"
	"net/http"

	"github.com/AzmainZaman/CSE470-Project/internal/middleware"
	"github.com/AzmainZaman/CSE470-Project/internal/utils"
)

// auditStub returns a Logger with no backing collection, which drops
// every entry.
func auditStub() utils.Logger {
	return utils.Logger{}
}

// asUser attaches an authenticated email the way the JWT middleware
// would.
func asUser(req *http.Request, email string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.ContextUserEmail, email)
	return req.WithContext(ctx)
}
