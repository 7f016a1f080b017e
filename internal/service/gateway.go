package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// RegisterGateway adds the HTTP/JSON routes for srv to mux:
//
//	POST /v1/copy      CopyRequest
//	POST /v1/paste     PasteRequest (body optional)
//	GET  /v1/recent    ?limit=N
//	GET  /v1/status
//	POST /v1/capture   true | false
func RegisterGateway(mux *gwruntime.ServeMux, srv ControlServer) error {
	routes := []struct {
		method, path string
		handler      gwruntime.HandlerFunc
	}{
		{http.MethodPost, "/v1/copy", route(srv.Copy, decodeBody[CopyRequest])},
		{http.MethodPost, "/v1/paste", route(srv.Paste, decodeBody[PasteRequest])},
		{http.MethodGet, "/v1/recent", route(srv.Recent, decodeRecent)},
		{http.MethodGet, "/v1/status", route(srv.Status, decodeNothing)},
		{http.MethodPost, "/v1/capture", route(srv.SetCapture, decodeCapture)},
	}
	for _, r := range routes {
		if err := mux.HandlePath(r.method, r.path, r.handler); err != nil {
			return fmt.Errorf("route %s %s: %w", r.method, r.path, err)
		}
	}
	return nil
}

func route[Req, Resp any](call func(context.Context, *Req) (*Resp, error), decode func(*http.Request, *Req) error) gwruntime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		in := new(Req)
		if err := decode(r, in); err != nil {
			writeError(w, status.Error(codes.InvalidArgument, err.Error()))
			return
		}
		out, err := call(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return bytes.TrimSpace(data), nil
}

func decodeBody[Req any](r *http.Request, in *Req) error {
	data, err := readBody(r)
	if err != nil || len(data) == 0 {
		return err
	}
	return Codec{}.Unmarshal(data, in)
}

func decodeRecent(r *http.Request, in *RecentRequest) error {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("limit: %w", err)
	}
	in.Limit = n
	return nil
}

func decodeNothing(*http.Request, *emptypb.Empty) error { return nil }

func decodeCapture(r *http.Request, in *wrapperspb.BoolValue) error {
	data, err := readBody(r)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return errors.New("body must be true or false")
	}
	return Codec{}.Unmarshal(data, in)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	data, err := Codec{}.Marshal(v)
	if err != nil {
		slog.Error("gateway marshal failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	st := status.Convert(err)
	writeJSON(w, gwruntime.HTTPStatusFromCode(st.Code()), errorBody{
		Code:    st.Code().String(),
		Message: st.Message(),
	})
}
