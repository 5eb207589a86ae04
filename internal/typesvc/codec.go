package typesvc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName is the content-subtype this service negotiates instead of the
// default "proto" codec — "application/grpc+json" on the wire.
const codecName = "json"

// jsonCodec implements encoding.Codec over plain Go structs (messages.go),
// letting grpc-go carry request/response pairs that were never compiled
// from a .proto file.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
