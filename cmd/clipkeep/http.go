package main

import (
	"errors"
	"net"
	"net/http"
)

// serveHTTPGateway runs srv on ln until it is closed.
func serveHTTPGateway(ln net.Listener, srv *http.Server) error {
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
