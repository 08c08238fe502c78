package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when the upstream API rejects for rate limiting
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrOpenAIFailure is returned when the OpenAI API request fails
	ErrOpenAIFailure = errors.New("OpenAI API request failed")
)
