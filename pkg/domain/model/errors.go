package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrUserAlreadyExists     = goerr.New("user already exists")
	ErrInvalidCredentials    = goerr.New("invalid credentials")
	ErrEmailAlreadyMonitored = goerr.New("email already being monitored")
	ErrEmailNotFound         = goerr.New("email not found")
	ErrSessionNotFound       = goerr.New("session not found")
)
