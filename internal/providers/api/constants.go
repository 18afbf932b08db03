package api

import "time"

const (
	providerName       = "api"
	defaultBaseURL     = "http://localhost:4000"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512
)
