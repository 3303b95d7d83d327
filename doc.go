// Package mxit provides a connection manager for the Mxit messaging REST API.
//
// The connection manager wraps [github.com/go-resty/resty/v2] and coordinates
// one OAuth2 client-credentials token lifecycle with one outbound send
// operation: it obtains and caches an access token, attaches it to every
// message send, and transparently re-authenticates and retries when the
// token expires.
//
// # Basic Usage
//
//	cm := mxit.New("my-client-id", "my-client-secret",
//	    mxit.WithMaxAuthAttempts(5),
//	)
//	defer cm.Close()
//
//	if !cm.Authenticate(ctx) {
//	    log.Fatal("authentication failed")
//	}
//
//	msg := mxit.NewMessage("my-app", []string{"m40000001"}, "hello")
//	if !cm.SendMessage(ctx, msg) {
//	    log.Print("send failed")
//	}
//
// # Configuration
//
// All configuration is supplied as [Option] functions passed to [New].
// Invalid values are silently ignored and the default is retained.
//
// # Authentication
//
// [ConnectionManager.Authenticate] performs an OAuth2 client-credentials
// exchange against the auth endpoint, retrying up to the configured attempt
// count with a fixed backoff between attempts. At most one authentication
// run is in flight at any time; concurrent callers block until the run in
// progress completes and then observe its outcome through the cached token.
//
// # Retry Behaviour
//
// A failed send is retried exactly once. If the failure was HTTP 401 the
// manager re-authenticates first and retries with the fresh token; any
// other failure is retried as-is. [DefaultRetryClassifier] currently treats
// every send failure as retryable; supply [WithRetryClassifier] to narrow
// this.
//
// # Logging
//
// Implement [RequestLogger] and supply it via [WithRequestLogger] to
// integrate with your logging library. The default [NoopLogger] discards
// all log output. Ensure your implementation redacts credentials and tokens
// from request and response bodies before persisting logs.
package mxit
