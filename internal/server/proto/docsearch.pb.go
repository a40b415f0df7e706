// Message types of docsearch.proto. Run go generate after editing the
// .proto file; proto_test.go fails when the two disagree.

package proto

import (
	"github.com/golang/protobuf/proto"
)

type Document struct {
	Title string `protobuf:"bytes,1,opt,name=title,proto3" json:"title,omitempty"`
	Href  string `protobuf:"bytes,2,opt,name=href,proto3" json:"href,omitempty"`
}

func (m *Document) Reset()         { *m = Document{} }
func (m *Document) String() string { return proto.CompactTextString(m) }
func (*Document) ProtoMessage()    {}

func (m *Document) GetTitle() string {
	if m != nil {
		return m.Title
	}
	return ""
}

func (m *Document) GetHref() string {
	if m != nil {
		return m.Href
	}
	return ""
}

type SearchRequest struct {
	Query string `protobuf:"bytes,1,opt,name=query,proto3" json:"query,omitempty"`
}

func (m *SearchRequest) Reset()         { *m = SearchRequest{} }
func (m *SearchRequest) String() string { return proto.CompactTextString(m) }
func (*SearchRequest) ProtoMessage()    {}

func (m *SearchRequest) GetQuery() string {
	if m != nil {
		return m.Query
	}
	return ""
}

type SearchResponse struct {
	Documents []*Document `protobuf:"bytes,1,rep,name=documents,proto3" json:"documents,omitempty"`
}

func (m *SearchResponse) Reset()         { *m = SearchResponse{} }
func (m *SearchResponse) String() string { return proto.CompactTextString(m) }
func (*SearchResponse) ProtoMessage()    {}

func (m *SearchResponse) GetDocuments() []*Document {
	if m != nil {
		return m.Documents
	}
	return nil
}

type ListDocumentsRequest struct {
}

func (m *ListDocumentsRequest) Reset()         { *m = ListDocumentsRequest{} }
func (m *ListDocumentsRequest) String() string { return proto.CompactTextString(m) }
func (*ListDocumentsRequest) ProtoMessage()    {}

type ListDocumentsResponse struct {
	Documents []*Document `protobuf:"bytes,1,rep,name=documents,proto3" json:"documents,omitempty"`
}

func (m *ListDocumentsResponse) Reset()         { *m = ListDocumentsResponse{} }
func (m *ListDocumentsResponse) String() string { return proto.CompactTextString(m) }
func (*ListDocumentsResponse) ProtoMessage()    {}

func (m *ListDocumentsResponse) GetDocuments() []*Document {
	if m != nil {
		return m.Documents
	}
	return nil
}

type NeighborsRequest struct {
	Href string `protobuf:"bytes,1,opt,name=href,proto3" json:"href,omitempty"`
}

func (m *NeighborsRequest) Reset()         { *m = NeighborsRequest{} }
func (m *NeighborsRequest) String() string { return proto.CompactTextString(m) }
func (*NeighborsRequest) ProtoMessage()    {}

func (m *NeighborsRequest) GetHref() string {
	if m != nil {
		return m.Href
	}
	return ""
}

type NeighborsResponse struct {
	Prev *Document `protobuf:"bytes,1,opt,name=prev,proto3" json:"prev,omitempty"`
	Next *Document `protobuf:"bytes,2,opt,name=next,proto3" json:"next,omitempty"`
}

func (m *NeighborsResponse) Reset()         { *m = NeighborsResponse{} }
func (m *NeighborsResponse) String() string { return proto.CompactTextString(m) }
func (*NeighborsResponse) ProtoMessage()    {}

func (m *NeighborsResponse) GetPrev() *Document {
	if m != nil {
		return m.Prev
	}
	return nil
}

func (m *NeighborsResponse) GetNext() *Document {
	if m != nil {
		return m.Next
	}
	return nil
}

type FullTextSearchRequest struct {
	IndexIdentifier string `protobuf:"bytes,1,opt,name=index_identifier,json=indexIdentifier,proto3" json:"index_identifier,omitempty"`
	Query           string `protobuf:"bytes,2,opt,name=query,proto3" json:"query,omitempty"`
	Offset          int32  `protobuf:"varint,3,opt,name=offset,proto3" json:"offset,omitempty"`
	Limit           int32  `protobuf:"varint,4,opt,name=limit,proto3" json:"limit,omitempty"`
}

func (m *FullTextSearchRequest) Reset()         { *m = FullTextSearchRequest{} }
func (m *FullTextSearchRequest) String() string { return proto.CompactTextString(m) }
func (*FullTextSearchRequest) ProtoMessage()    {}

func (m *FullTextSearchRequest) GetIndexIdentifier() string {
	if m != nil {
		return m.IndexIdentifier
	}
	return ""
}

func (m *FullTextSearchRequest) GetQuery() string {
	if m != nil {
		return m.Query
	}
	return ""
}

func (m *FullTextSearchRequest) GetOffset() int32 {
	if m != nil {
		return m.Offset
	}
	return 0
}

func (m *FullTextSearchRequest) GetLimit() int32 {
	if m != nil {
		return m.Limit
	}
	return 0
}

type FullTextSearchResponse struct {
	Documents []*Document `protobuf:"bytes,1,rep,name=documents,proto3" json:"documents,omitempty"`
}

func (m *FullTextSearchResponse) Reset()         { *m = FullTextSearchResponse{} }
func (m *FullTextSearchResponse) String() string { return proto.CompactTextString(m) }
func (*FullTextSearchResponse) ProtoMessage()    {}

func (m *FullTextSearchResponse) GetDocuments() []*Document {
	if m != nil {
		return m.Documents
	}
	return nil
}

type IndexRequest struct {
	IndexIdentifier string   `protobuf:"bytes,1,opt,name=index_identifier,json=indexIdentifier,proto3" json:"index_identifier,omitempty"`
	ContentDir      string   `protobuf:"bytes,2,opt,name=content_dir,json=contentDir,proto3" json:"content_dir,omitempty"`
	ExcludePatterns []string `protobuf:"bytes,3,rep,name=exclude_patterns,json=excludePatterns,proto3" json:"exclude_patterns,omitempty"`
}

func (m *IndexRequest) Reset()         { *m = IndexRequest{} }
func (m *IndexRequest) String() string { return proto.CompactTextString(m) }
func (*IndexRequest) ProtoMessage()    {}

func (m *IndexRequest) GetIndexIdentifier() string {
	if m != nil {
		return m.IndexIdentifier
	}
	return ""
}

func (m *IndexRequest) GetContentDir() string {
	if m != nil {
		return m.ContentDir
	}
	return ""
}

func (m *IndexRequest) GetExcludePatterns() []string {
	if m != nil {
		return m.ExcludePatterns
	}
	return nil
}

type IndexResponse struct {
}

func (m *IndexResponse) Reset()         { *m = IndexResponse{} }
func (m *IndexResponse) String() string { return proto.CompactTextString(m) }
func (*IndexResponse) ProtoMessage()    {}

type IndexProgressRequest struct {
	IndexIdentifier string `protobuf:"bytes,1,opt,name=index_identifier,json=indexIdentifier,proto3" json:"index_identifier,omitempty"`
}

func (m *IndexProgressRequest) Reset()         { *m = IndexProgressRequest{} }
func (m *IndexProgressRequest) String() string { return proto.CompactTextString(m) }
func (*IndexProgressRequest) ProtoMessage()    {}

func (m *IndexProgressRequest) GetIndexIdentifier() string {
	if m != nil {
		return m.IndexIdentifier
	}
	return ""
}

type IndexProgressResponse struct {
	PercentageDone   float32 `protobuf:"fixed32,1,opt,name=percentage_done,json=percentageDone,proto3" json:"percentage_done,omitempty"`
	IndexedDocuments int32   `protobuf:"varint,2,opt,name=indexed_documents,json=indexedDocuments,proto3" json:"indexed_documents,omitempty"`
	TotalDocuments   int32   `protobuf:"varint,3,opt,name=total_documents,json=totalDocuments,proto3" json:"total_documents,omitempty"`
	IsRunning        bool    `protobuf:"varint,4,opt,name=is_running,json=isRunning,proto3" json:"is_running,omitempty"`
}

func (m *IndexProgressResponse) Reset()         { *m = IndexProgressResponse{} }
func (m *IndexProgressResponse) String() string { return proto.CompactTextString(m) }
func (*IndexProgressResponse) ProtoMessage()    {}

func (m *IndexProgressResponse) GetPercentageDone() float32 {
	if m != nil {
		return m.PercentageDone
	}
	return 0
}

func (m *IndexProgressResponse) GetIndexedDocuments() int32 {
	if m != nil {
		return m.IndexedDocuments
	}
	return 0
}

func (m *IndexProgressResponse) GetTotalDocuments() int32 {
	if m != nil {
		return m.TotalDocuments
	}
	return 0
}

func (m *IndexProgressResponse) GetIsRunning() bool {
	if m != nil {
		return m.IsRunning
	}
	return false
}

type StopIndexRequest struct {
	IndexIdentifier string `protobuf:"bytes,1,opt,name=index_identifier,json=indexIdentifier,proto3" json:"index_identifier,omitempty"`
}

func (m *StopIndexRequest) Reset()         { *m = StopIndexRequest{} }
func (m *StopIndexRequest) String() string { return proto.CompactTextString(m) }
func (*StopIndexRequest) ProtoMessage()    {}

func (m *StopIndexRequest) GetIndexIdentifier() string {
	if m != nil {
		return m.IndexIdentifier
	}
	return ""
}

type StopIndexResponse struct {
}

func (m *StopIndexResponse) Reset()         { *m = StopIndexResponse{} }
func (m *StopIndexResponse) String() string { return proto.CompactTextString(m) }
func (*StopIndexResponse) ProtoMessage()    {}

type DeleteIndexRequest struct {
	IndexIdentifier string `protobuf:"bytes,1,opt,name=index_identifier,json=indexIdentifier,proto3" json:"index_identifier,omitempty"`
}

func (m *DeleteIndexRequest) Reset()         { *m = DeleteIndexRequest{} }
func (m *DeleteIndexRequest) String() string { return proto.CompactTextString(m) }
func (*DeleteIndexRequest) ProtoMessage()    {}

func (m *DeleteIndexRequest) GetIndexIdentifier() string {
	if m != nil {
		return m.IndexIdentifier
	}
	return ""
}

type DeleteIndexResponse struct {
}

func (m *DeleteIndexResponse) Reset()         { *m = DeleteIndexResponse{} }
func (m *DeleteIndexResponse) String() string { return proto.CompactTextString(m) }
func (*DeleteIndexResponse) ProtoMessage()    {}
