package domain

import "errors"

var (
	ErrLoginRejected      = errors.New("login rejected")
	ErrProfileFetchFailed = errors.New("profile fetch failed")
	ErrSecretNotFound     = errors.New("secret not found")
)
