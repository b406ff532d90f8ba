// Package triageclient provides the primary entry point for constructing a
// Triage API client that implements the triage.Client interface.
//
// It layers the HTTP transport and bearer-token authentication on top of the
// types and interfaces defined in the triage package. Most applications
// should import triageclient to build a client, then use the returned
// triage.Client for every API operation.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/myrtus0x0/triage/pkg/triage"
//	  "github.com/myrtus0x0/triage/pkg/triageclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := triageclient.NewWithToken("<api-token>")
//	  if err != nil {
//	    log.Fatal(err)
//	  }
//
//	  // Or against a private instance, with full configuration:
//	  cli, err = triageclient.New(&triage.Config{
//	    Token:   "<api-token>",
//	    RootURL: "https://private.example.com/api",
//	  })
//	  if err != nil {
//	    log.Fatal(err)
//	  }
//
//	  samples := cli.OwnedSamples(ctx, 20)
//	  for samples.HasNext() {
//	    sample, err := samples.Next()
//	    if err != nil {
//	      log.Fatal(err)
//	    }
//	    _ = sample
//	  }
//	}
//
// The client performs exactly one HTTP attempt per call and adds no timeout
// of its own; supply Config.HTTPClient to control deadlines, and cancel the
// request context to abandon an in-flight call or stream.
package triageclient
