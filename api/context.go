package api

import (
	"context"
)

type keyType string

const adminAuthKey keyType = "adminAuth"

// authMethod records how the admin proved themselves on this request.
type authMethod string

const (
	authBySession authMethod = "session"
	authByToken   authMethod = "token"
)

func ctxWithAdminAuth(ctx context.Context, method authMethod) context.Context {
	return context.WithValue(ctx, adminAuthKey, method)
}

func ctxGetAdminAuth(ctx context.Context) (authMethod, bool) {
	method, ok := ctx.Value(adminAuthKey).(authMethod)
	return method, ok
}
