// Package triage defines the public surface of the Triage API client:
// the Client interface, typed request and response structures for every
// endpoint, the error taxonomy, and the cursor pagination iterator.
//
// Use github.com/myrtus0x0/triage/pkg/triageclient to construct a client.
package triage

// Version is the client library version reported in the User-Agent header.
const Version = "0.1.0"
