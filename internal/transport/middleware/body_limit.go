package middleware

import "net/http"

// BodyLimit caps request bodies at n bytes. Reads past the limit fail and the
// handler's JSON decoding reports a bad request.
func BodyLimit(n int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
