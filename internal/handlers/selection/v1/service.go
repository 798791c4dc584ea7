package v1

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "ao.selection.v1.SelectionService"

// SelectionServiceServer is the server API for the selection service
type SelectionServiceServer interface {
	SelectBuild(context.Context, *SelectBuildRequest) (*SelectBuildResponse, error)
	GetSelection(context.Context, *GetSelectionRequest) (*GetSelectionResponse, error)
	DeleteSelection(context.Context, *DeleteSelectionRequest) (*DeleteSelectionResponse, error)
	CalculateItemPower(context.Context, *CalculateItemPowerRequest) (*CalculateItemPowerResponse, error)
	EnumerateVariants(context.Context, *EnumerateVariantsRequest) (*EnumerateVariantsResponse, error)
}

// ServiceDesc describes the selection service for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SelectionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SelectBuild", Handler: unaryHandler("SelectBuild", SelectionServiceServer.SelectBuild)},
		{MethodName: "GetSelection", Handler: unaryHandler("GetSelection", SelectionServiceServer.GetSelection)},
		{MethodName: "DeleteSelection", Handler: unaryHandler("DeleteSelection", SelectionServiceServer.DeleteSelection)},
		{MethodName: "CalculateItemPower", Handler: unaryHandler("CalculateItemPower", SelectionServiceServer.CalculateItemPower)},
		{MethodName: "EnumerateVariants", Handler: unaryHandler("EnumerateVariants", SelectionServiceServer.EnumerateVariants)},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterSelectionServiceServer registers srv with the gRPC server
func RegisterSelectionServiceServer(s grpc.ServiceRegistrar, srv SelectionServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unaryHandler[Req, Resp any](
	method string,
	call func(SelectionServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SelectionServiceServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SelectionServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// SelectionServiceClient is the client API for the selection service.
// Every call uses the JSON codec.
type SelectionServiceClient interface {
	SelectBuild(ctx context.Context, in *SelectBuildRequest, opts ...grpc.CallOption) (*SelectBuildResponse, error)
	GetSelection(ctx context.Context, in *GetSelectionRequest, opts ...grpc.CallOption) (*GetSelectionResponse, error)
	DeleteSelection(ctx context.Context, in *DeleteSelectionRequest, opts ...grpc.CallOption) (*DeleteSelectionResponse, error)
	CalculateItemPower(ctx context.Context, in *CalculateItemPowerRequest, opts ...grpc.CallOption) (*CalculateItemPowerResponse, error)
	EnumerateVariants(ctx context.Context, in *EnumerateVariantsRequest, opts ...grpc.CallOption) (*EnumerateVariantsResponse, error)
}

type selectionServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSelectionServiceClient wraps a client connection
func NewSelectionServiceClient(cc grpc.ClientConnInterface) SelectionServiceClient {
	return &selectionServiceClient{cc: cc}
}

func (c *selectionServiceClient) SelectBuild(ctx context.Context, in *SelectBuildRequest, opts ...grpc.CallOption) (*SelectBuildResponse, error) {
	out := new(SelectBuildResponse)
	if err := c.invoke(ctx, "SelectBuild", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *selectionServiceClient) GetSelection(ctx context.Context, in *GetSelectionRequest, opts ...grpc.CallOption) (*GetSelectionResponse, error) {
	out := new(GetSelectionResponse)
	if err := c.invoke(ctx, "GetSelection", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *selectionServiceClient) DeleteSelection(ctx context.Context, in *DeleteSelectionRequest, opts ...grpc.CallOption) (*DeleteSelectionResponse, error) {
	out := new(DeleteSelectionResponse)
	if err := c.invoke(ctx, "DeleteSelection", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *selectionServiceClient) CalculateItemPower(ctx context.Context, in *CalculateItemPowerRequest, opts ...grpc.CallOption) (*CalculateItemPowerResponse, error) {
	out := new(CalculateItemPowerResponse)
	if err := c.invoke(ctx, "CalculateItemPower", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *selectionServiceClient) EnumerateVariants(ctx context.Context, in *EnumerateVariantsRequest, opts ...grpc.CallOption) (*EnumerateVariantsResponse, error) {
	out := new(EnumerateVariantsResponse)
	if err := c.invoke(ctx, "EnumerateVariants", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *selectionServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, fullMethod(method), in, out, opts...)
}
