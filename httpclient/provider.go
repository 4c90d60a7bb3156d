package httpclient

import (
	"github.com/traduckxion/transcribe/provider"
)

var (
	_ provider.RequestResponse[Request, *Response] = (*Adapter)(nil)
	_ provider.Closeable                           = (*Adapter)(nil)
)
