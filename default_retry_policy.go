package mxit

// DefaultRetryClassifier is the default send-failure classification used by
// [ConnectionManager]. It decides, from the status code of a failed send,
// whether the send is worth one more attempt.
//
// It currently classifies every failure as retryable, matching the behaviour
// the API's upstream connection helper has always shipped with. Callers that
// need to fail fast on client errors should supply their own classifier via
// [WithRetryClassifier].
//
// TODO: confirm with the API team whether 4xx responses other than 401
// should be non-retryable; until then every failure gets the single retry.
func DefaultRetryClassifier(statusCode int) bool {
	// Candidate narrowing, pending the product decision above:
	// return statusCode == http.StatusUnauthorized || statusCode >= 500
	return true
}
