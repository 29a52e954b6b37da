package gateway

import "net/http"

// Handler exposes the gateway's HTTP handler for in-process test servers.
func (g *Gateway) Handler() http.Handler {
	return g.httpSrv.Handler
}
