package service

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"go.klb.dev/clipkeep/internal/history"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "clipkeep.v1.ClipboardControl"

// CodecName is the content subtype every call uses ("application/grpc+json").
const CodecName = "json"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec marshals protobuf messages with protojson and everything else with
// encoding/json.
type Codec struct{}

func (Codec) Name() string { return CodecName }

func (Codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, m)
	}
	return json.Unmarshal(data, v)
}

// ControlServer is the server API for ClipboardControl.
type ControlServer interface {
	Copy(context.Context, *CopyRequest) (*emptypb.Empty, error)
	Paste(context.Context, *PasteRequest) (*PasteResponse, error)
	Watch(*WatchRequest, WatchStream) error
	Recent(context.Context, *RecentRequest) (*RecentResponse, error)
	Status(context.Context, *emptypb.Empty) (*StatusResponse, error)
	SetCapture(context.Context, *wrapperspb.BoolValue) (*emptypb.Empty, error)
}

// WatchStream is the server side of a Watch call.
type WatchStream interface {
	Context() context.Context
	Send(*history.Item) error
}

// Register attaches srv to a gRPC server.
func Register(s grpc.ServiceRegistrar, srv ControlServer) {
	s.RegisterService(&serviceDesc, srv)
}

func fullMethod(name string) string { return "/" + ServiceName + "/" + name }

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ControlServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Copy", ControlServer.Copy),
		unary("Paste", ControlServer.Paste),
		unary("Recent", ControlServer.Recent),
		unary("Status", ControlServer.Status),
		unary("SetCapture", ControlServer.SetCapture),
	},
	Streams: []grpc.StreamDesc{{
		StreamName:    "Watch",
		ServerStreams: true,
		Handler:       watchHandler,
	}},
	Metadata: "clipkeep/v1/control",
}

func unary[Req, Resp any](name string, call func(ControlServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, icpt grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ControlServer), ctx, req.(*Req))
			}
			if icpt == nil {
				return handler(ctx, in)
			}
			return icpt(ctx, in, &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}, handler)
		},
	}
}

func watchHandler(srv any, stream grpc.ServerStream) error {
	in := new(WatchRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(ControlServer).Watch(in, &watchServer{stream})
}

type watchServer struct {
	grpc.ServerStream
}

func (w *watchServer) Send(it *history.Item) error { return w.ServerStream.SendMsg(it) }

// ── client ─────────────────────────────────────────────────────────────────

// Client is the client API for ClipboardControl.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps cc. Calls always use the JSON codec.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func callOpts(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, name string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, fullMethod(name), in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Copy(ctx context.Context, in *CopyRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, "Copy", in, opts)
}

func (c *Client) Paste(ctx context.Context, in *PasteRequest, opts ...grpc.CallOption) (*PasteResponse, error) {
	return invoke[PasteResponse](ctx, c.cc, "Paste", in, opts)
}

func (c *Client) Recent(ctx context.Context, in *RecentRequest, opts ...grpc.CallOption) (*RecentResponse, error) {
	return invoke[RecentResponse](ctx, c.cc, "Recent", in, opts)
}

func (c *Client) Status(ctx context.Context, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c.cc, "Status", &emptypb.Empty{}, opts)
}

func (c *Client) SetCapture(ctx context.Context, enabled bool, opts ...grpc.CallOption) error {
	_, err := invoke[emptypb.Empty](ctx, c.cc, "SetCapture", wrapperspb.Bool(enabled), opts)
	return err
}

// WatchClient receives captured items until the stream ends.
type WatchClient interface {
	Recv() (*history.Item, error)
}

func (c *Client) Watch(ctx context.Context, in *WatchRequest, opts ...grpc.CallOption) (WatchClient, error) {
	stream, err := c.cc.NewStream(ctx, &serviceDesc.Streams[0], fullMethod("Watch"), callOpts(opts)...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &watchClient{stream}, nil
}

type watchClient struct {
	grpc.ClientStream
}

func (w *watchClient) Recv() (*history.Item, error) {
	it := new(history.Item)
	if err := w.ClientStream.RecvMsg(it); err != nil {
		return nil, err
	}
	return it, nil
}
