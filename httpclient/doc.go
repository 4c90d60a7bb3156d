// Package httpclient is the HTTP adapter shared by the REST-based provider
// clients (Deepgram, AssemblyAI, the whisper sidecar and the LLM backends).
//
//	a, err := httpclient.New(httpclient.Config{
//	    Name:    "deepgram",
//	    BaseURL: "https://api.deepgram.com",
//	    Auth:    httpclient.SchemeAuth("Token", apiKey),
//	    Retry:   httpclient.DefaultRetryConfig(),
//	})
//	resp, err := httpclient.Post[listenResponse](ctx, a, "/v1/listen", audio,
//	    httpclient.WithQuery(map[string]string{"language": "en"}))
//
// Non-2xx responses come back as *Error values classified by status code;
// ToAppError maps them onto the application error codes.
package httpclient
