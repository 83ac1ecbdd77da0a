// Package awsroute53 adapts the Route 53 SDK to the domain DNSPort
package awsroute53

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/route53/types"

	perr "sftpcycle/internal/platform/errors"
	"sftpcycle/internal/services/endpoint/domain"
)

// sdk is the slice of the SDK client this adapter calls, kept as an
// interface so tests can stand in for the real client
type sdk interface {
	ChangeResourceRecordSets(ctx context.Context, in *route53.ChangeResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ChangeResourceRecordSetsOutput, error)
	GetChange(ctx context.Context, in *route53.GetChangeInput, optFns ...func(*route53.Options)) (*route53.GetChangeOutput, error)
	ListResourceRecordSets(ctx context.Context, in *route53.ListResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ListResourceRecordSetsOutput, error)
}

var _ sdk = (*route53.Client)(nil)

// Client implements domain.DNSPort over the Route 53 API
type Client struct {
	api sdk
}

var _ domain.DNSPort = (*Client)(nil)

// New wraps a configured SDK client
func New(api *route53.Client) *Client { return &Client{api: api} }

// newWith is the test seam
func newWith(api sdk) *Client { return &Client{api: api} }

// UpsertCNAME submits one create-or-replace change for the alias record
func (c *Client) UpsertCNAME(ctx context.Context, ch domain.CNAMEChange) (string, error) {
	out, err := c.api.ChangeResourceRecordSets(ctx, &route53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(ch.ZoneID),
		ChangeBatch: &types.ChangeBatch{
			Comment: aws.String(ch.Comment),
			Changes: []types.Change{{
				Action: types.ChangeActionUpsert,
				ResourceRecordSet: &types.ResourceRecordSet{
					Name:            aws.String(ch.Name),
					Type:            types.RRTypeCname,
					TTL:             aws.Int64(ch.TTL),
					ResourceRecords: []types.ResourceRecord{{Value: aws.String(ch.Target)}},
				},
			}},
		},
	})
	if err != nil {
		return "", perr.FromAPI(err)
	}
	return aws.ToString(out.ChangeInfo.Id), nil
}

// ChangeSynced reports whether the change has propagated to all zone servers
func (c *Client) ChangeSynced(ctx context.Context, changeID string) (bool, error) {
	out, err := c.api.GetChange(ctx, &route53.GetChangeInput{Id: aws.String(changeID)})
	if err != nil {
		return false, perr.FromAPI(err)
	}
	return out.ChangeInfo.Status == types.ChangeStatusInsync, nil
}

// ListRecords lists record sets at/after name in the zone's lexical ordering.
// The callers only need the entry at the alias itself, so one item suffices
func (c *Client) ListRecords(ctx context.Context, zoneID, name string) ([]domain.DNSRecord, error) {
	out, err := c.api.ListResourceRecordSets(ctx, &route53.ListResourceRecordSetsInput{
		HostedZoneId:    aws.String(zoneID),
		StartRecordName: aws.String(name),
		StartRecordType: types.RRTypeCname,
		MaxItems:        aws.Int32(1),
	})
	if err != nil {
		return nil, perr.FromAPI(err)
	}
	records := make([]domain.DNSRecord, 0, len(out.ResourceRecordSets))
	for _, rs := range out.ResourceRecordSets {
		value := ""
		if len(rs.ResourceRecords) > 0 {
			value = aws.ToString(rs.ResourceRecords[0].Value)
		}
		records = append(records, domain.DNSRecord{
			Name:  aws.ToString(rs.Name),
			Type:  string(rs.Type),
			Value: value,
		})
	}
	return records, nil
}
