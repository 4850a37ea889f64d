// Package completion provides the "Precedence AI" search source, backed by
// a chat-completion model.
//
// With a stored credential the client sends one completion request and
// parses the JSON reply into case results. Without a credential it fails
// with domain.ErrMissingCredential, unless test mode is on, in which case
// MockGenerator produces results locally from the sample dataset.
package completion
