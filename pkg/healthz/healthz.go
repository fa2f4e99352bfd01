package healthz

import (
	"io"
	"net/http"
)

// Healthz is a HTTP handler for the /healthz endpoint which responds with 200 OK
// if all registered checks succeed, and with 500 Internal Server Error otherwise.
func Healthz(w http.ResponseWriter, r *http.Request) {
	ok, info := HealthInfo()
	if ok {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusInternalServerError)
	}
	io.WriteString(w, info)
}
