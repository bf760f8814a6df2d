// Package http exposes the procedure table over POST /rpc/{procedure}
package http

import (
	"io"
	stdhttp "net/http"

	"chirp/internal/modkit/httpkit"
	perr "chirp/internal/platform/errors"
	"chirp/internal/services/api/rpc"
)

const maxInput = 64 << 10

// Register mounts the dispatcher
func Register(r httpkit.Router, t rpc.Table) {
	h := &handlers{table: t}
	httpkit.Get(r, "/", h.list)
	r.Post("/{procedure}", httpkit.Call(h.call))
}

type handlers struct{ table rpc.Table }

// swagger:route GET /rpc RPC rpcList
// @Summary List procedure names
// @Tags RPC
// @Produce json
// @Success 200 {array} string "ok"
// @Router /rpc [get]
func (h *handlers) list(_ *stdhttp.Request) (any, error) {
	return h.table.Names(), nil
}

// swagger:route POST /rpc/{procedure} RPC rpcCall
// @Summary Call a named procedure with a JSON input
// @Tags RPC
// @Accept json
// @Produce json
// @Param procedure path string true "procedure name"
// @Success 200 {object} httpkit.Envelope "ok"
// @Router /rpc/{procedure} [post]
func (h *handlers) call(r *stdhttp.Request) (any, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxInput+1))
	if err != nil {
		return nil, perr.JSONErrf("read input: %v", err)
	}
	if len(raw) > maxInput {
		return nil, perr.JSONErrf("input too large")
	}
	return h.table.Dispatch(r.Context(), httpkit.Param(r, "procedure"), raw)
}
