// Package httpclient provides a configurable JSON HTTP client with
// pluggable authentication, retry, and response transformation strategies.
//
// A request flows through four independently replaceable collaborators:
// the authentication strategy decorates the outgoing headers, the transport
// performs a single network call, the retry policy decides whether a failed
// attempt is repeated and after what delay, and the response transformer
// post-processes the decoded body of a successful response.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL:   "https://api.example.com",
//	    Auth:      httpclient.BearerAuth(token),
//	    Retry:     httpclient.DefaultRetryPolicy(),
//	    Transform: httpclient.NewDateFieldTransformer(),
//	})
//	resp, err := client.Do(ctx, httpclient.Request{Method: "GET", Path: "/parts/123"})
//
// Typed helpers decode JSON responses into concrete types:
//
//	part, err := httpclient.Get[PartRecord](client, ctx, "/parts/123")
package httpclient
