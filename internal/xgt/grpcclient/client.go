// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package grpcclient provides the gRPC-backed implementation of the
// xgt.Service interface. It holds a single client connection to the
// xgtd server, frames every call as JSON over gRPC, and attaches basic
// authentication metadata to each request.
//
// The connection is validated once at dial time with a version request;
// there is no reconnect logic. A shell that loses its server restarts.
package grpcclient

import (
	"context"
	"encoding/base64"
	"net"
	"strconv"
	"time"

	"xgtsh/cli/internal/xgt"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// connectTimeout bounds the initial version handshake.
const connectTimeout = 10 * time.Second

// Method paths of the xgtd admin service.
const (
	methodGetVersion          = "/xgt.Admin/GetVersion"
	methodGetConfig           = "/xgt.Admin/GetConfig"
	methodSetConfig           = "/xgt.Admin/SetConfig"
	methodGetDefaultNamespace = "/xgt.Admin/GetDefaultNamespace"
	methodSetDefaultNamespace = "/xgt.Admin/SetDefaultNamespace"
	methodGetNamespaces       = "/xgt.Admin/GetNamespaces"
	methodGetJobs             = "/xgt.Admin/GetJobs"
	methodCancelJob           = "/xgt.Admin/CancelJob"
	methodRunQuery            = "/xgt.Admin/RunQuery"
	methodGetFrames           = "/xgt.Admin/GetFrames"
	methodGetFrame            = "/xgt.Admin/GetFrame"
	methodGetFrameLabels      = "/xgt.Admin/GetFrameLabels"
	methodGetFrameData        = "/xgt.Admin/GetFrameData"
	methodDropFrame           = "/xgt.Admin/DropFrame"
	methodDropFrames          = "/xgt.Admin/DropFrames"
	methodSaveFrame           = "/xgt.Admin/SaveFrame"
	methodMemoryInfo          = "/xgt.Admin/MemoryInfo"
	methodGetUserLabels       = "/xgt.Admin/GetUserLabels"
)

// Options configures a connection attempt.
type Options struct {
	Host     string
	Port     int
	User     string
	Password string
}

// Client implements xgt.Service over one grpc.ClientConn.
type Client struct {
	conn          *grpc.ClientConn
	authToken     string
	serverVersion string
}

var _ xgt.Service = (*Client)(nil)

// Connect dials the server and validates the connection with a version
// request. The returned client is ready for use; on error the caller
// owns nothing and may proceed disconnected.
func Connect(ctx context.Context, opts Options) (*Client, error) {
	target := net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port))

	// xgtd speaks plaintext gRPC on its default port.
	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(jsonCodec{})),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", target)
	}

	c := &Client{
		conn:      conn,
		authToken: basicToken(opts.User, opts.Password),
	}

	hctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	var resp versionResponse
	if err := c.invoke(hctx, methodGetVersion, &versionRequest{}, &resp); err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(err, "connect to %s", target)
	}
	c.serverVersion = resp.Version
	return c, nil
}

// Close releases the client connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// ServerVersion returns the version string captured at connect time.
func (c *Client) ServerVersion() string { return c.serverVersion }

// invoke performs one unary call with authentication metadata attached.
func (c *Client) invoke(ctx context.Context, method string, req, resp any) error {
	md := metadata.Pairs("authorization", "Basic "+c.authToken)
	ctx = metadata.NewOutgoingContext(ctx, md)
	return c.conn.Invoke(ctx, method, req, resp)
}

func basicToken(user, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(user + ":" + password))
}

// Wire message shapes. Field names follow the server's JSON contract.

type versionRequest struct{}

type versionResponse struct {
	Version string `json:"version"`
}

type configResponse struct {
	Entries map[string]any `json:"entries"`
}

type setConfigRequest struct {
	Settings map[string]any `json:"settings"`
}

type namespaceRequest struct {
	Namespace string `json:"namespace"`
}

type namespaceResponse struct {
	Namespace string `json:"namespace"`
}

type namespacesResponse struct {
	Namespaces []string `json:"namespaces"`
}

type jobsResponse struct {
	Jobs []xgt.Job `json:"jobs"`
}

type cancelJobRequest struct {
	ID int `json:"id"`
}

type runQueryRequest struct {
	Query string `json:"query"`
}

type framesRequest struct {
	Namespace string        `json:"namespace"`
	Kind      xgt.FrameKind `json:"kind"`
}

type framesResponse struct {
	Frames []xgt.Frame `json:"frames"`
}

type frameRequest struct {
	Name string        `json:"name"`
	Kind xgt.FrameKind `json:"kind"`
}

type frameLabelsRequest struct {
	Name string `json:"name"`
}

type frameDataRequest struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"`
	Count  int    `json:"count"`
}

type frameDataResponse struct {
	Rows [][]any `json:"rows"`
}

type dropFrameRequest struct {
	Name string `json:"name"`
}

type dropFramesRequest struct {
	Names []string `json:"names"`
}

type saveFrameRequest struct {
	Name     string `json:"name"`
	Filename string `json:"filename"`
	Headers  bool   `json:"headers"`
}

type userLabelsResponse struct {
	Labels []string `json:"labels"`
}

type emptyResponse struct{}

func (c *Client) GetConfig(ctx context.Context) (map[string]any, error) {
	var resp configResponse
	if err := c.invoke(ctx, methodGetConfig, &versionRequest{}, &resp); err != nil {
		return nil, remoteErr(err)
	}
	return resp.Entries, nil
}

func (c *Client) SetConfig(ctx context.Context, settings map[string]any) error {
	return remoteErr(c.invoke(ctx, methodSetConfig, &setConfigRequest{Settings: settings}, &emptyResponse{}))
}

func (c *Client) GetDefaultNamespace(ctx context.Context) (string, error) {
	var resp namespaceResponse
	if err := c.invoke(ctx, methodGetDefaultNamespace, &versionRequest{}, &resp); err != nil {
		return "", remoteErr(err)
	}
	return resp.Namespace, nil
}

func (c *Client) SetDefaultNamespace(ctx context.Context, namespace string) error {
	return remoteErr(c.invoke(ctx, methodSetDefaultNamespace, &namespaceRequest{Namespace: namespace}, &emptyResponse{}))
}

func (c *Client) GetNamespaces(ctx context.Context) ([]string, error) {
	var resp namespacesResponse
	if err := c.invoke(ctx, methodGetNamespaces, &versionRequest{}, &resp); err != nil {
		return nil, remoteErr(err)
	}
	return resp.Namespaces, nil
}

func (c *Client) GetJobs(ctx context.Context) ([]xgt.Job, error) {
	var resp jobsResponse
	if err := c.invoke(ctx, methodGetJobs, &versionRequest{}, &resp); err != nil {
		return nil, remoteErr(err)
	}
	return resp.Jobs, nil
}

func (c *Client) CancelJob(ctx context.Context, id int) error {
	return remoteErr(c.invoke(ctx, methodCancelJob, &cancelJobRequest{ID: id}, &emptyResponse{}))
}

func (c *Client) RunQuery(ctx context.Context, query string) (*xgt.QueryResult, error) {
	var resp xgt.QueryResult
	if err := c.invoke(ctx, methodRunQuery, &runQueryRequest{Query: query}, &resp); err != nil {
		return nil, remoteErr(err)
	}
	return &resp, nil
}

func (c *Client) GetFrames(ctx context.Context, namespace string, kind xgt.FrameKind) ([]xgt.Frame, error) {
	var resp framesResponse
	req := &framesRequest{Namespace: namespace, Kind: kind}
	if err := c.invoke(ctx, methodGetFrames, req, &resp); err != nil {
		return nil, remoteErr(err)
	}
	return resp.Frames, nil
}

func (c *Client) GetFrame(ctx context.Context, name string, kind xgt.FrameKind) (*xgt.Frame, error) {
	var resp xgt.Frame
	if err := c.invoke(ctx, methodGetFrame, &frameRequest{Name: name, Kind: kind}, &resp); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, xgt.ErrFrameNotFound
		}
		return nil, remoteErr(err)
	}
	return &resp, nil
}

func (c *Client) GetFrameLabels(ctx context.Context, name string) (xgt.FrameLabels, error) {
	var resp xgt.FrameLabels
	if err := c.invoke(ctx, methodGetFrameLabels, &frameLabelsRequest{Name: name}, &resp); err != nil {
		return xgt.FrameLabels{}, remoteErr(err)
	}
	return resp, nil
}

func (c *Client) GetFrameData(ctx context.Context, name string, offset, count int) ([][]any, error) {
	var resp frameDataResponse
	req := &frameDataRequest{Name: name, Offset: offset, Count: count}
	if err := c.invoke(ctx, methodGetFrameData, req, &resp); err != nil {
		return nil, remoteErr(err)
	}
	return resp.Rows, nil
}

func (c *Client) DropFrame(ctx context.Context, name string) error {
	return remoteErr(c.invoke(ctx, methodDropFrame, &dropFrameRequest{Name: name}, &emptyResponse{}))
}

func (c *Client) DropFrames(ctx context.Context, names []string) error {
	return remoteErr(c.invoke(ctx, methodDropFrames, &dropFramesRequest{Names: names}, &emptyResponse{}))
}

func (c *Client) SaveFrame(ctx context.Context, name, filename string) error {
	req := &saveFrameRequest{Name: name, Filename: filename, Headers: true}
	return remoteErr(c.invoke(ctx, methodSaveFrame, req, &emptyResponse{}))
}

func (c *Client) MemoryInfo(ctx context.Context) (xgt.MemoryInfo, error) {
	var resp xgt.MemoryInfo
	if err := c.invoke(ctx, methodMemoryInfo, &versionRequest{}, &resp); err != nil {
		return xgt.MemoryInfo{}, remoteErr(err)
	}
	return resp, nil
}

func (c *Client) GetUserLabels(ctx context.Context) ([]string, error) {
	var resp userLabelsResponse
	if err := c.invoke(ctx, methodGetUserLabels, &versionRequest{}, &resp); err != nil {
		return nil, remoteErr(err)
	}
	return resp.Labels, nil
}

// remoteErr strips gRPC status framing down to the server's message so
// handler output stays readable.
func remoteErr(err error) error {
	if err == nil {
		return nil
	}
	if st, ok := status.FromError(err); ok && st.Code() != codes.Unknown {
		return errors.New(st.Message())
	}
	return err
}
