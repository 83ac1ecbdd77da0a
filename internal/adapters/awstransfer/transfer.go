// Package awstransfer adapts the AWS Transfer Family SDK to the domain
// TransferPort
package awstransfer

import (
	"context"
	stderrs "errors"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transfer"
	"github.com/aws/aws-sdk-go-v2/service/transfer/types"

	perr "sftpcycle/internal/platform/errors"
	"sftpcycle/internal/services/endpoint/domain"
)

// sdk is the slice of the SDK client this adapter calls, kept as an
// interface so tests can stand in for the real client
type sdk interface {
	CreateServer(ctx context.Context, in *transfer.CreateServerInput, optFns ...func(*transfer.Options)) (*transfer.CreateServerOutput, error)
	DescribeServer(ctx context.Context, in *transfer.DescribeServerInput, optFns ...func(*transfer.Options)) (*transfer.DescribeServerOutput, error)
	StopServer(ctx context.Context, in *transfer.StopServerInput, optFns ...func(*transfer.Options)) (*transfer.StopServerOutput, error)
	DeleteServer(ctx context.Context, in *transfer.DeleteServerInput, optFns ...func(*transfer.Options)) (*transfer.DeleteServerOutput, error)
	ListServers(ctx context.Context, in *transfer.ListServersInput, optFns ...func(*transfer.Options)) (*transfer.ListServersOutput, error)
	ListTagsForResource(ctx context.Context, in *transfer.ListTagsForResourceInput, optFns ...func(*transfer.Options)) (*transfer.ListTagsForResourceOutput, error)
	CreateUser(ctx context.Context, in *transfer.CreateUserInput, optFns ...func(*transfer.Options)) (*transfer.CreateUserOutput, error)
	DeleteUser(ctx context.Context, in *transfer.DeleteUserInput, optFns ...func(*transfer.Options)) (*transfer.DeleteUserOutput, error)
	ListUsers(ctx context.Context, in *transfer.ListUsersInput, optFns ...func(*transfer.Options)) (*transfer.ListUsersOutput, error)
}

var _ sdk = (*transfer.Client)(nil)

// Client implements domain.TransferPort over the Transfer Family API
type Client struct {
	api sdk
}

var _ domain.TransferPort = (*Client)(nil)

// New wraps a configured SDK client
func New(api *transfer.Client) *Client { return &Client{api: api} }

// newWith is the test seam
func newWith(api sdk) *Client { return &Client{api: api} }

// wrapErr normalizes SDK errors: missing resources get the platform NotFound
// code, everything else keeps the provider's native code and message
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	var rnf *types.ResourceNotFoundException
	if stderrs.As(err, &rnf) {
		return perr.Wrap(err, perr.ErrorCodeNotFound, "resource not found")
	}
	return perr.FromAPI(err)
}

// CreateServer provisions a new service-managed public SFTP server
func (c *Client) CreateServer(ctx context.Context, args domain.CreateServerArgs) (string, error) {
	out, err := c.api.CreateServer(ctx, &transfer.CreateServerInput{
		IdentityProviderType: types.IdentityProviderTypeServiceManaged,
		Protocols:            []types.Protocol{types.ProtocolSftp},
		EndpointType:         types.EndpointTypePublic,
		LoggingRole:          aws.String(args.LoggingRole),
		Tags:                 tagSlice(args.Tags),
	})
	if err != nil {
		return "", wrapErr(err)
	}
	return aws.ToString(out.ServerId), nil
}

// DescribeServer reads the server's current description. Transfer Family
// reports no hostname for public endpoints, so Endpoint stays empty and the
// caller derives one
func (c *Client) DescribeServer(ctx context.Context, serverID string) (domain.Server, error) {
	out, err := c.api.DescribeServer(ctx, &transfer.DescribeServerInput{ServerId: aws.String(serverID)})
	if err != nil {
		return domain.Server{}, wrapErr(err)
	}
	return domain.Server{
		ID:    aws.ToString(out.Server.ServerId),
		ARN:   aws.ToString(out.Server.Arn),
		State: domain.ParseState(string(out.Server.State)),
	}, nil
}

// StopServer asks the provider to take the server offline
func (c *Client) StopServer(ctx context.Context, serverID string) error {
	_, err := c.api.StopServer(ctx, &transfer.StopServerInput{ServerId: aws.String(serverID)})
	return wrapErr(err)
}

// DeleteServer removes the server
func (c *Client) DeleteServer(ctx context.Context, serverID string) error {
	_, err := c.api.DeleteServer(ctx, &transfer.DeleteServerInput{ServerId: aws.String(serverID)})
	return wrapErr(err)
}

// ListServers returns every server the account can see, following pagination
func (c *Client) ListServers(ctx context.Context) ([]domain.ServerSummary, error) {
	var (
		out   []domain.ServerSummary
		token *string
	)
	for {
		page, err := c.api.ListServers(ctx, &transfer.ListServersInput{NextToken: token})
		if err != nil {
			return nil, wrapErr(err)
		}
		for _, srv := range page.Servers {
			out = append(out, domain.ServerSummary{
				ID:  aws.ToString(srv.ServerId),
				ARN: aws.ToString(srv.Arn),
			})
		}
		if page.NextToken == nil {
			return out, nil
		}
		token = page.NextToken
	}
}

// ListTags returns the tag set of the resource at arn
func (c *Client) ListTags(ctx context.Context, arn string) (map[string]string, error) {
	tags := map[string]string{}
	var token *string
	for {
		page, err := c.api.ListTagsForResource(ctx, &transfer.ListTagsForResourceInput{
			Arn:       aws.String(arn),
			NextToken: token,
		})
		if err != nil {
			return nil, wrapErr(err)
		}
		for _, t := range page.Tags {
			tags[aws.ToString(t.Key)] = aws.ToString(t.Value)
		}
		if page.NextToken == nil {
			return tags, nil
		}
		token = page.NextToken
	}
}

// CreateUser provisions one user with a path-style home directory
func (c *Client) CreateUser(ctx context.Context, args domain.CreateUserArgs) error {
	in := &transfer.CreateUserInput{
		ServerId:          aws.String(args.ServerID),
		UserName:          aws.String(args.Username),
		Role:              aws.String(args.Role),
		HomeDirectory:     aws.String(args.HomeDirectory),
		HomeDirectoryType: types.HomeDirectoryTypePath,
		Tags:              tagSlice(args.Tags),
	}
	if args.PublicKey != "" {
		in.SshPublicKeyBody = aws.String(args.PublicKey)
	}
	_, err := c.api.CreateUser(ctx, in)
	return wrapErr(err)
}

// DeleteUser removes one user from the server
func (c *Client) DeleteUser(ctx context.Context, serverID, username string) error {
	_, err := c.api.DeleteUser(ctx, &transfer.DeleteUserInput{
		ServerId: aws.String(serverID),
		UserName: aws.String(username),
	})
	return wrapErr(err)
}

// ListUsernames returns the names of every user on the server, following pagination
func (c *Client) ListUsernames(ctx context.Context, serverID string) ([]string, error) {
	var (
		out   []string
		token *string
	)
	for {
		page, err := c.api.ListUsers(ctx, &transfer.ListUsersInput{
			ServerId:  aws.String(serverID),
			NextToken: token,
		})
		if err != nil {
			return nil, wrapErr(err)
		}
		for _, u := range page.Users {
			out = append(out, aws.ToString(u.UserName))
		}
		if page.NextToken == nil {
			return out, nil
		}
		token = page.NextToken
	}
}

// tagSlice converts a tag map to the SDK form in stable key order
func tagSlice(tags map[string]string) []types.Tag {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]types.Tag, 0, len(keys))
	for _, k := range keys {
		out = append(out, types.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return out
}
