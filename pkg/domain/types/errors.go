package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption      = goerr.New("invalid option")
	ErrValidationFailed   = goerr.New("validation failed")
	ErrInvalidGitHubData  = goerr.New("invalid GitHub data")
	ErrUnsupportedChannel = goerr.New("unsupported channel")
	ErrNoVerifiedIdentity = goerr.New("no verified identity")
	ErrUnauthorized       = goerr.New("unauthorized")
	ErrProviderResponse   = goerr.New("unexpected test provider response")
)
