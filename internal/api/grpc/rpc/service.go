package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "sesn.compliance.Compliance"

const (
	MethodRegisterUser   = "/" + ServiceName + "/RegisterUser"
	MethodEraseUser      = "/" + ServiceName + "/EraseUser"
	MethodAccessUser     = "/" + ServiceName + "/AccessUser"
	MethodUpdateConsent  = "/" + ServiceName + "/UpdateConsent"
	MethodConsentHistory = "/" + ServiceName + "/ConsentHistory"
)

// ComplianceServer is the server API for the Compliance service.
type ComplianceServer interface {
	RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error)
	EraseUser(context.Context, *EraseUserRequest) (*EraseUserResponse, error)
	AccessUser(context.Context, *AccessUserRequest) (*AccessUserResponse, error)
	UpdateConsent(context.Context, *UpdateConsentRequest) (*UpdateConsentResponse, error)
	ConsentHistory(context.Context, *ConsentHistoryRequest) (*ConsentHistoryResponse, error)
}

// RegisterComplianceServer registers srv on s.
func RegisterComplianceServer(s grpc.ServiceRegistrar, srv ComplianceServer) {
	s.RegisterService(&ComplianceServiceDesc, srv)
}

// unaryHandler adapts a typed method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](
	fullMethod string,
	call func(ComplianceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ComplianceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ComplianceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ComplianceServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ComplianceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "RegisterUser",
			Handler:    unaryHandler(MethodRegisterUser, ComplianceServer.RegisterUser),
		},
		{
			MethodName: "EraseUser",
			Handler:    unaryHandler(MethodEraseUser, ComplianceServer.EraseUser),
		},
		{
			MethodName: "AccessUser",
			Handler:    unaryHandler(MethodAccessUser, ComplianceServer.AccessUser),
		},
		{
			MethodName: "UpdateConsent",
			Handler:    unaryHandler(MethodUpdateConsent, ComplianceServer.UpdateConsent),
		},
		{
			MethodName: "ConsentHistory",
			Handler:    unaryHandler(MethodConsentHistory, ComplianceServer.ConsentHistory),
		},
	},
	Metadata: "sesn/compliance.json",
}
