// Copyright © 2026 The gripdap authors

package dapserver

import (
	"context"
	"fmt"

	"github.com/google/go-dap"
)

// threadID is the single DAP thread id exposed by the server; each
// server instance bridges one debuggee thread.
const threadID = 1

// handler dispatches incoming DAP messages to the appropriate method.
type handler struct {
	server *Server
}

func newHandler(s *Server) *handler {
	return &handler{server: s}
}

// send sends a DAP message and logs any write error.
func (h *handler) send(msg dap.Message) {
	if err := h.server.send(msg); err != nil {
		h.server.log.WithError(err).Error("dap send failed")
	}
}

func (h *handler) handle(msg dap.Message) {
	switch req := msg.(type) {
	case *dap.InitializeRequest:
		h.onInitialize(req)
	case *dap.ConfigurationDoneRequest:
		h.onConfigurationDone(req)
	case *dap.ThreadsRequest:
		h.onThreads(req)
	case *dap.ScopesRequest:
		h.onScopes(req)
	case *dap.VariablesRequest:
		h.onVariables(req)
	case *dap.DisconnectRequest:
		h.onDisconnect(req)
	case dap.RequestMessage:
		h.sendNotSupported(req)
	default:
		h.server.log.WithField("type", typeName(msg)).Warn("unhandled dap message")
	}
}

func (h *handler) onInitialize(req *dap.InitializeRequest) {
	resp := &dap.InitializeResponse{}
	resp.Response = h.newResponse(req.Seq, req.Command)
	resp.Body = dap.Capabilities{
		SupportsConfigurationDoneRequest: true,
	}
	h.send(resp)

	h.send(&dap.InitializedEvent{
		Event: h.newEvent("initialized"),
	})
}

func (h *handler) onConfigurationDone(req *dap.ConfigurationDoneRequest) {
	resp := &dap.ConfigurationDoneResponse{}
	resp.Response = h.newResponse(req.Seq, req.Command)
	h.send(resp)
}

func (h *handler) onThreads(req *dap.ThreadsRequest) {
	resp := &dap.ThreadsResponse{}
	resp.Response = h.newResponse(req.Seq, req.Command)
	resp.Body.Threads = []dap.Thread{
		{Id: threadID, Name: h.server.thread.Name()},
	}
	h.send(resp)
}

func (h *handler) onScopes(req *dap.ScopesRequest) {
	resp := &dap.ScopesResponse{}
	resp.Response = h.newResponse(req.Seq, req.Command)
	if h.server.scopes != nil {
		resp.Body.Scopes = translateScopes(h.server.scopes.FrameScopes(req.Arguments.FrameId))
	}
	h.send(resp)
}

func (h *handler) onVariables(req *dap.VariablesRequest) {
	resp := &dap.VariablesResponse{}
	resp.Response = h.newResponse(req.Seq, req.Command)

	provider, ok := h.server.thread.Registry().Lookup(req.Arguments.VariablesReference)
	if !ok {
		// Disposed or never-assigned handles report not-found; the
		// client may legitimately race a resume with an expansion.
		resp.Success = false
		resp.Message = "variables reference not found"
		h.send(resp)
		return
	}

	vars, err := provider.Variables(context.Background())
	if err != nil {
		// A failed remote fetch is surfaced, not shown as empty.
		resp.Success = false
		resp.Message = err.Error()
		h.send(resp)
		return
	}
	resp.Body.Variables = translateVariables(vars)
	h.send(resp)
}

func (h *handler) onDisconnect(req *dap.DisconnectRequest) {
	resp := &dap.DisconnectResponse{}
	resp.Response = h.newResponse(req.Seq, req.Command)
	h.send(resp)

	h.server.thread.Dispose()

	h.send(&dap.TerminatedEvent{
		Event: h.newEvent("terminated"),
	})
	h.server.close()
}

// sendNotSupported answers requests outside the variable-inspection
// surface (launch, breakpoints, execution control) with an error
// response; those concerns belong to the embedding debug session.
func (h *handler) sendNotSupported(req dap.RequestMessage) {
	r := req.GetRequest()
	resp := &dap.ErrorResponse{}
	resp.Response = h.newResponse(r.Seq, r.Command)
	resp.Success = false
	resp.Message = "Not supported"
	h.send(resp)
}

// --- helpers ---

func (h *handler) newResponse(reqSeq int, command string) dap.Response {
	return dap.Response{
		ProtocolMessage: dap.ProtocolMessage{Seq: h.server.nextSeq(), Type: "response"},
		RequestSeq:      reqSeq,
		Success:         true,
		Command:         command,
	}
}

func (h *handler) newEvent(event string) dap.Event {
	return dap.Event{
		ProtocolMessage: dap.ProtocolMessage{Seq: h.server.nextSeq(), Type: "event"},
		Event:           event,
	}
}

func typeName(msg dap.Message) string {
	return fmt.Sprintf("%T", msg)
}
