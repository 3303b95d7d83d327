package mxit

import (
	"strings"
	"time"
)

type Option func(*Options)

type Options struct {
	authBaseURL     string
	apiBaseURL      string
	scope           string
	maxAuthAttempts int
	authBackoff     time.Duration
	requestTimeout  time.Duration
	authScheme      string
	requestLogger   RequestLogger
	retryClassifier func(statusCode int) bool
	requestHeaders  map[string]string
}

func newConnectionOptions() *Options {
	return &Options{
		authBaseURL:     DefaultAuthBaseURL,
		apiBaseURL:      DefaultAPIBaseURL,
		scope:           DefaultScope,
		maxAuthAttempts: 3,
		authBackoff:     5 * time.Second,
		requestTimeout:  30 * time.Second,
		requestLogger:   &NoopLogger{},
		retryClassifier: DefaultRetryClassifier,
		requestHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
	}
}

func WithAuthBaseURL(baseURL string) Option {
	return func(o *Options) {
		if strings.TrimSpace(baseURL) != "" {
			o.authBaseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithAPIBaseURL(baseURL string) Option {
	return func(o *Options) {
		if strings.TrimSpace(baseURL) != "" {
			o.apiBaseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithScope(scope string) Option {
	return func(o *Options) {
		if strings.TrimSpace(scope) != "" {
			o.scope = scope
		}
	}
}

func WithMaxAuthAttempts(attempts int) Option {
	return func(o *Options) {
		if attempts >= 1 {
			o.maxAuthAttempts = attempts
		}
	}
}

func WithAuthBackoff(backoff time.Duration) Option {
	return func(o *Options) {
		if backoff > 0 {
			o.authBackoff = backoff
		}
	}
}

func WithRequestTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout > 0 {
			o.requestTimeout = timeout
		}
	}
}

func WithAuthScheme(scheme string) Option {
	return func(o *Options) {
		if strings.TrimSpace(scheme) != "" {
			o.authScheme = scheme
		}
	}
}

func WithRequestLogger(logger RequestLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.requestLogger = logger
		}
	}
}

func WithRetryClassifier(classifier func(statusCode int) bool) Option {
	return func(o *Options) {
		if classifier != nil {
			o.retryClassifier = classifier
		}
	}
}

func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" || strings.EqualFold(header, "Content-Type") || strings.EqualFold(header, "Accept") {
			return
		}

		o.requestHeaders[header] = value
	}
}
