package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"pos-admin-api/pkg/apierror"
	"pos-admin-api/pkg/response"
)

// Recovery turns a panic in a handler into a 500 response.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[Recovery] PANIC rid=%s: %v\n%s", GetRequestID(r.Context()), rec, debug.Stack())
				response.Error(w, apierror.InternalError("internal server error"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
