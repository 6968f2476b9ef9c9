// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package grpcclient

import "encoding/json"

// jsonCodec marshals request and response messages as JSON. The xgtd
// admin surface accepts JSON-framed messages, which keeps the client
// free of generated message types.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return "json" }
