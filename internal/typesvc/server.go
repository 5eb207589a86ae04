package typesvc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/evaluator"
	"github.com/mindscript-lang/mindscript/internal/lexer"
	"github.com/mindscript-lang/mindscript/internal/object"
	"github.com/mindscript-lang/mindscript/internal/parser"
	"github.com/mindscript-lang/mindscript/internal/printer"
	"github.com/mindscript-lang/mindscript/internal/store"
	"github.com/mindscript-lang/mindscript/internal/types"
)

// Server implements the five external interfaces against a base
// environment (primitive types plus whatever internal/store has
// persisted for a given session). It keeps its own Evaluator so
// EnforceCall can parse and run the function-literal source a request
// supplies, through the same apply/call-boundary path a local script gets.
type Server struct {
	eval     *evaluator.Evaluator
	base     *object.Environment
	registry *store.Registry
}

// NewServer builds a Server. registry may be nil, in which case every
// request's Session is ignored and requests run against only the
// primitive-type environment.
func NewServer(registry *store.Registry) *Server {
	e := evaluator.New()
	return &Server{eval: e, base: e.Global, registry: registry}
}

// sessionEnv returns the environment a request should resolve types
// against: the primitive-type root, enclosing a child scope populated
// with that session's persisted aliases (internal/store), if any.
func (s *Server) sessionEnv(ctx context.Context, session string) (*object.Environment, error) {
	if session == "" || s.registry == nil {
		return s.base, nil
	}
	aliases, err := s.registry.LoadAliases(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", session, err)
	}
	env := object.NewEnclosedEnvironment(s.base)
	for name, t := range aliases {
		env.Define(name, &object.TypeValue{Def: t, Env: env})
	}
	return env, nil
}

func parseType(text string) (ast.Type, error) {
	p := parser.New(lexer.New(text))
	t := p.ParseTypeExpression()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("parsing type %q: %v", text, errs)
	}
	return t, nil
}

// TypeOf implements spec §6's `typeOf(v) -> Type`.
func (s *Server) TypeOf(ctx context.Context, req *TypeOfRequest) (*TypeOfResponse, error) {
	v, err := jsonToValue(req.Value)
	if err != nil {
		return nil, err
	}
	return &TypeOfResponse{Type: printer.PrintType(types.TypeOf(v))}, nil
}

// CheckType implements spec §6's `checkType(v, T) -> bool`.
func (s *Server) CheckType(ctx context.Context, req *CheckTypeRequest) (*CheckTypeResponse, error) {
	env, err := s.sessionEnv(ctx, req.Session)
	if err != nil {
		return nil, err
	}
	t, err := parseType(req.Type)
	if err != nil {
		return nil, err
	}
	v, err := jsonToValue(req.Value)
	if err != nil {
		return nil, err
	}
	ok, err := types.ValueOf(v, t, env)
	if err != nil {
		return nil, err
	}
	return &CheckTypeResponse{Ok: ok}, nil
}

// IsSubtype implements spec §6's `isSubtype(T1, T2) -> bool`.
func (s *Server) IsSubtype(ctx context.Context, req *IsSubtypeRequest) (*IsSubtypeResponse, error) {
	env, err := s.sessionEnv(ctx, req.Session)
	if err != nil {
		return nil, err
	}
	t1, err := parseType(req.A)
	if err != nil {
		return nil, err
	}
	t2, err := parseType(req.B)
	if err != nil {
		return nil, err
	}
	ok, err := types.Subtype(t1, t2, env, env)
	if err != nil {
		return nil, err
	}
	return &IsSubtypeResponse{Ok: ok}, nil
}

// Resolve implements spec §6's alias-resolution interface.
func (s *Server) Resolve(ctx context.Context, req *ResolveRequest) (*ResolveResponse, error) {
	env, err := s.sessionEnv(ctx, req.Session)
	if err != nil {
		return nil, err
	}
	t, err := parseType(req.Type)
	if err != nil {
		return nil, err
	}
	resolved, _, err := types.Resolve(t, env)
	if err != nil {
		return nil, err
	}
	return &ResolveResponse{Type: printer.PrintType(resolved)}, nil
}

// EnforceCall implements spec §6's `enforceCall(callable, arg) -> value`.
// It parses Func as a single function-literal expression, evaluates it in
// the session environment to get a Callable, and runs it through the same
// EnforceCall boundary protocol a local call expression triggers.
func (s *Server) EnforceCall(ctx context.Context, req *EnforceCallRequest) (*EnforceCallResponse, error) {
	env, err := s.sessionEnv(ctx, req.Session)
	if err != nil {
		return nil, err
	}

	p := parser.New(lexer.New(req.Func))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("parsing callable %q: %v", req.Func, errs)
	}

	fnVal, err := s.eval.Eval(program, env)
	if err != nil {
		return nil, err
	}
	callable, ok := fnVal.(object.Callable)
	if !ok {
		return nil, fmt.Errorf("enforceCall: %q does not evaluate to a callable, got %s", req.Func, printer.PrintType(types.TypeOf(fnVal)))
	}

	arg, err := jsonToValue(req.Arg)
	if err != nil {
		return nil, err
	}

	result, err := s.eval.EnforceCall(callable, arg)
	if err != nil {
		return nil, err
	}

	jv, err := valueToJSON(result)
	if err != nil {
		return nil, err
	}
	return &EnforceCallResponse{Result: jv}, nil
}

// serviceDesc is hand-built rather than generated by protoc-gen-go-grpc,
// since there is no .proto this service compiles from (see the package
// doc comment). Each handler decodes with the request's own zero value so
// the JSON codec (codec.go) can unmarshal into it directly.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: "mindscript.typesvc.TypeService",
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "TypeOf", Handler: typeOfHandler},
		{MethodName: "CheckType", Handler: checkTypeHandler},
		{MethodName: "IsSubtype", Handler: isSubtypeHandler},
		{MethodName: "Resolve", Handler: resolveHandler},
		{MethodName: "EnforceCall", Handler: enforceCallHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "typesvc.proto",
}

func typeOfHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(TypeOfRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	s := srv.(*Server)
	if interceptor == nil {
		return s.TypeOf(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: s, FullMethod: "/mindscript.typesvc.TypeService/TypeOf"}
	handler := func(ctx context.Context, req any) (any, error) {
		return s.TypeOf(ctx, req.(*TypeOfRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func checkTypeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(CheckTypeRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	s := srv.(*Server)
	if interceptor == nil {
		return s.CheckType(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: s, FullMethod: "/mindscript.typesvc.TypeService/CheckType"}
	handler := func(ctx context.Context, req any) (any, error) {
		return s.CheckType(ctx, req.(*CheckTypeRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func isSubtypeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(IsSubtypeRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	s := srv.(*Server)
	if interceptor == nil {
		return s.IsSubtype(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: s, FullMethod: "/mindscript.typesvc.TypeService/IsSubtype"}
	handler := func(ctx context.Context, req any) (any, error) {
		return s.IsSubtype(ctx, req.(*IsSubtypeRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func resolveHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(ResolveRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	s := srv.(*Server)
	if interceptor == nil {
		return s.Resolve(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: s, FullMethod: "/mindscript.typesvc.TypeService/Resolve"}
	handler := func(ctx context.Context, req any) (any, error) {
		return s.Resolve(ctx, req.(*ResolveRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func enforceCallHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(EnforceCallRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	s := srv.(*Server)
	if interceptor == nil {
		return s.EnforceCall(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: s, FullMethod: "/mindscript.typesvc.TypeService/EnforceCall"}
	handler := func(ctx context.Context, req any) (any, error) {
		return s.EnforceCall(ctx, req.(*EnforceCallRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// Register attaches the type service to a *grpc.Server.
func Register(s *grpc.Server, srv *Server) {
	s.RegisterService(&serviceDesc, srv)
}
