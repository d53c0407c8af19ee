package middleware

import "net/http"

const defaultCORSOrigin = "http://localhost:3000"

// CORS allows credentialed requests from origin (localhost:3000 when empty).
func CORS(origin string, next http.Handler) http.Handler {
	if origin == "" {
		origin = defaultCORSOrigin
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID, X-Device-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
