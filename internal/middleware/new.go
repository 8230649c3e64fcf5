package middleware

import (
	"admissions-srv/pkg/log"
	"admissions-srv/pkg/scope"
)

const authCookieName = "access_token"

type Middleware struct {
	l           log.Logger
	jwtManager  scope.Manager
	internalKey string
}

func New(l log.Logger, jwtManager scope.Manager, internalKey string) Middleware {
	return Middleware{
		l:           l,
		jwtManager:  jwtManager,
		internalKey: internalKey,
	}
}
