package http

import "net/http"

type authTransport struct {
	scheme    string
	token     string
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	if t.token != "" {
		reqCopy.Header.Set("Authorization", t.scheme+" "+t.token)
	}

	return t.transport.RoundTrip(reqCopy)
}

// WithAuthToken attaches an Authorization header to every request.
// The scheme is whatever the peer expects, e.g. "Bearer" or "Api-Key".
func WithAuthToken(scheme, token string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{
			scheme:    scheme,
			token:     token,
			transport: rt,
		}
	})
}
