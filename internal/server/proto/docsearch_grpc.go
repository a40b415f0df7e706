package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "docsearch.DocSearch"

// DocSearchClient is the client API for the DocSearch service.
type DocSearchClient interface {
	Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*SearchResponse, error)
	ListDocuments(ctx context.Context, in *ListDocumentsRequest, opts ...grpc.CallOption) (*ListDocumentsResponse, error)
	Neighbors(ctx context.Context, in *NeighborsRequest, opts ...grpc.CallOption) (*NeighborsResponse, error)
	FullTextSearch(ctx context.Context, in *FullTextSearchRequest, opts ...grpc.CallOption) (*FullTextSearchResponse, error)
	StartOrResumeIndex(ctx context.Context, in *IndexRequest, opts ...grpc.CallOption) (*IndexResponse, error)
	IndexProgress(ctx context.Context, in *IndexProgressRequest, opts ...grpc.CallOption) (*IndexProgressResponse, error)
	StopIndex(ctx context.Context, in *StopIndexRequest, opts ...grpc.CallOption) (*StopIndexResponse, error)
	DeleteIndex(ctx context.Context, in *DeleteIndexRequest, opts ...grpc.CallOption) (*DeleteIndexResponse, error)
}

type docSearchClient struct {
	cc grpc.ClientConnInterface
}

func NewDocSearchClient(cc grpc.ClientConnInterface) DocSearchClient {
	return &docSearchClient{cc}
}

func (c *docSearchClient) Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*SearchResponse, error) {
	out := new(SearchResponse)
	err := c.cc.Invoke(ctx, "/"+serviceName+"/Search", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *docSearchClient) ListDocuments(ctx context.Context, in *ListDocumentsRequest, opts ...grpc.CallOption) (*ListDocumentsResponse, error) {
	out := new(ListDocumentsResponse)
	err := c.cc.Invoke(ctx, "/"+serviceName+"/ListDocuments", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *docSearchClient) Neighbors(ctx context.Context, in *NeighborsRequest, opts ...grpc.CallOption) (*NeighborsResponse, error) {
	out := new(NeighborsResponse)
	err := c.cc.Invoke(ctx, "/"+serviceName+"/Neighbors", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *docSearchClient) FullTextSearch(ctx context.Context, in *FullTextSearchRequest, opts ...grpc.CallOption) (*FullTextSearchResponse, error) {
	out := new(FullTextSearchResponse)
	err := c.cc.Invoke(ctx, "/"+serviceName+"/FullTextSearch", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *docSearchClient) StartOrResumeIndex(ctx context.Context, in *IndexRequest, opts ...grpc.CallOption) (*IndexResponse, error) {
	out := new(IndexResponse)
	err := c.cc.Invoke(ctx, "/"+serviceName+"/StartOrResumeIndex", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *docSearchClient) IndexProgress(ctx context.Context, in *IndexProgressRequest, opts ...grpc.CallOption) (*IndexProgressResponse, error) {
	out := new(IndexProgressResponse)
	err := c.cc.Invoke(ctx, "/"+serviceName+"/IndexProgress", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *docSearchClient) StopIndex(ctx context.Context, in *StopIndexRequest, opts ...grpc.CallOption) (*StopIndexResponse, error) {
	out := new(StopIndexResponse)
	err := c.cc.Invoke(ctx, "/"+serviceName+"/StopIndex", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *docSearchClient) DeleteIndex(ctx context.Context, in *DeleteIndexRequest, opts ...grpc.CallOption) (*DeleteIndexResponse, error) {
	out := new(DeleteIndexResponse)
	err := c.cc.Invoke(ctx, "/"+serviceName+"/DeleteIndex", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DocSearchServer is the server API for the DocSearch service.
type DocSearchServer interface {
	Search(context.Context, *SearchRequest) (*SearchResponse, error)
	ListDocuments(context.Context, *ListDocumentsRequest) (*ListDocumentsResponse, error)
	Neighbors(context.Context, *NeighborsRequest) (*NeighborsResponse, error)
	FullTextSearch(context.Context, *FullTextSearchRequest) (*FullTextSearchResponse, error)
	StartOrResumeIndex(context.Context, *IndexRequest) (*IndexResponse, error)
	IndexProgress(context.Context, *IndexProgressRequest) (*IndexProgressResponse, error)
	StopIndex(context.Context, *StopIndexRequest) (*StopIndexResponse, error)
	DeleteIndex(context.Context, *DeleteIndexRequest) (*DeleteIndexResponse, error)
}

// UnimplementedDocSearchServer can be embedded to have forward compatible implementations.
type UnimplementedDocSearchServer struct{}

func (*UnimplementedDocSearchServer) Search(context.Context, *SearchRequest) (*SearchResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Search not implemented")
}

func (*UnimplementedDocSearchServer) ListDocuments(context.Context, *ListDocumentsRequest) (*ListDocumentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListDocuments not implemented")
}

func (*UnimplementedDocSearchServer) Neighbors(context.Context, *NeighborsRequest) (*NeighborsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Neighbors not implemented")
}

func (*UnimplementedDocSearchServer) FullTextSearch(context.Context, *FullTextSearchRequest) (*FullTextSearchResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method FullTextSearch not implemented")
}

func (*UnimplementedDocSearchServer) StartOrResumeIndex(context.Context, *IndexRequest) (*IndexResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method StartOrResumeIndex not implemented")
}

func (*UnimplementedDocSearchServer) IndexProgress(context.Context, *IndexProgressRequest) (*IndexProgressResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method IndexProgress not implemented")
}

func (*UnimplementedDocSearchServer) StopIndex(context.Context, *StopIndexRequest) (*StopIndexResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method StopIndex not implemented")
}

func (*UnimplementedDocSearchServer) DeleteIndex(context.Context, *DeleteIndexRequest) (*DeleteIndexResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteIndex not implemented")
}

func RegisterDocSearchServer(s *grpc.Server, srv DocSearchServer) {
	s.RegisterService(&docSearchServiceDesc, srv)
}

func _DocSearch_Search_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SearchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DocSearchServer).Search(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/Search",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DocSearchServer).Search(ctx, req.(*SearchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DocSearch_ListDocuments_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListDocumentsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DocSearchServer).ListDocuments(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/ListDocuments",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DocSearchServer).ListDocuments(ctx, req.(*ListDocumentsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DocSearch_Neighbors_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(NeighborsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DocSearchServer).Neighbors(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/Neighbors",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DocSearchServer).Neighbors(ctx, req.(*NeighborsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DocSearch_FullTextSearch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(FullTextSearchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DocSearchServer).FullTextSearch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/FullTextSearch",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DocSearchServer).FullTextSearch(ctx, req.(*FullTextSearchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DocSearch_StartOrResumeIndex_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(IndexRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DocSearchServer).StartOrResumeIndex(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/StartOrResumeIndex",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DocSearchServer).StartOrResumeIndex(ctx, req.(*IndexRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DocSearch_IndexProgress_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(IndexProgressRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DocSearchServer).IndexProgress(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/IndexProgress",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DocSearchServer).IndexProgress(ctx, req.(*IndexProgressRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DocSearch_StopIndex_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(StopIndexRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DocSearchServer).StopIndex(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/StopIndex",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DocSearchServer).StopIndex(ctx, req.(*StopIndexRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DocSearch_DeleteIndex_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DeleteIndexRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DocSearchServer).DeleteIndex(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/DeleteIndex",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DocSearchServer).DeleteIndex(ctx, req.(*DeleteIndexRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var docSearchServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*DocSearchServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Search",
			Handler:    _DocSearch_Search_Handler,
		},
		{
			MethodName: "ListDocuments",
			Handler:    _DocSearch_ListDocuments_Handler,
		},
		{
			MethodName: "Neighbors",
			Handler:    _DocSearch_Neighbors_Handler,
		},
		{
			MethodName: "FullTextSearch",
			Handler:    _DocSearch_FullTextSearch_Handler,
		},
		{
			MethodName: "StartOrResumeIndex",
			Handler:    _DocSearch_StartOrResumeIndex_Handler,
		},
		{
			MethodName: "IndexProgress",
			Handler:    _DocSearch_IndexProgress_Handler,
		},
		{
			MethodName: "StopIndex",
			Handler:    _DocSearch_StopIndex_Handler,
		},
		{
			MethodName: "DeleteIndex",
			Handler:    _DocSearch_DeleteIndex_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "docsearch.proto",
}
