// Package graph implements the Microsoft Graph client used by the watcher.
//
// # Client
//
// [Client] issues authenticated GET requests against the beta meeting
// transcripts endpoints with automatic retry for throttling responses
// (429 and 503). A server-supplied Retry-After header takes precedence over
// exponential backoff. Outgoing requests pass through a client-side rate
// limiter so tight poll intervals cannot hammer the API.
//
// # Credentials
//
// [CredentialProvider] performs the app-only OAuth2 client-credential
// exchange via [clientcredentials.Config]. The resulting [Credential] is a
// bearer token plus its acquisition time; the poller re-acquires it after 50
// minutes or when a call comes back 401.
//
// # Decoding
//
// The transcripts feed is a beta surface that routinely returns empty bodies,
// 202/204 statuses, and occasionally non-JSON content. [Decode] classifies a
// response as empty, raw text, or parsed JSON before anything tries to
// destructure it. Logical display fields are resolved from parsed payloads
// through ordered fallback chains ([Summarize]) because the upstream schema
// is not stable.
//
// # Error Handling
//
// Non-success statuses surface as [*StatusError] carrying the status code,
// status text, and best-effort body. A 401 unwraps to
// [shared.ErrAuthFailed] so callers can trigger a credential refresh with
// errors.Is; everything else unwraps to [shared.ErrAPIRequest].
package graph
