// Package proto holds the DocSearch gRPC messages and service binding.
// The messages in docsearch.pb.go are regenerated from docsearch.proto,
// the service binding in docsearch_grpc.go is maintained alongside it.
package proto

//go:generate protoc --go_out=paths=source_relative:. docsearch.proto
