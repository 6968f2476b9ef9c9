// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FormatConnectError renders a failed connection attempt in a friendly
// way, mapping the common gRPC status codes to a hint and falling back
// to the masked error text.
func FormatConnectError(err error) string {
	if err == nil {
		return ""
	}
	st, ok := status.FromError(err)
	if !ok {
		return Mask(err.Error())
	}
	switch st.Code() {
	case codes.Unavailable:
		return "server unavailable: " + Mask(st.Message()) + "\nCheck that xgtd is running and the host and port are correct."
	case codes.DeadlineExceeded:
		return "connection timed out: " + Mask(st.Message())
	case codes.Unauthenticated, codes.PermissionDenied:
		return "authentication failed: " + Mask(st.Message()) + "\nCheck the username and password."
	default:
		return Mask(err.Error())
	}
}
