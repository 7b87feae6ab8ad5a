// Package proto defines the wire contract of the roster gRPC service.
//
// Messages are plain Go structs carried by a JSON codec registered with gRPC
// under the "json" content subtype. Clients created with
// NewRosterServiceClient select it on every call; servers pick it up from the
// request content type.
package proto

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype used by the roster service.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
