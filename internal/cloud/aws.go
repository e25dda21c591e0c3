package cloud

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
)

// STSAPI is the subset of the STS client used by the checker
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// EC2API is the subset of the EC2 client used by the checker
type EC2API interface {
	DescribeAvailabilityZones(ctx context.Context, params *ec2.DescribeAvailabilityZonesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAvailabilityZonesOutput, error)
}

// S3API is the subset of the S3 client used by the checker
type S3API interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Checker performs AWS environment checks for the console dashboard
type Checker struct {
	stsClient STSAPI
	ec2Client EC2API
	s3Client  S3API
	region    string
}

// NewChecker creates a Checker from explicit clients (used by tests)
func NewChecker(stsClient STSAPI, ec2Client EC2API, s3Client S3API, region string) *Checker {
	return &Checker{
		stsClient: stsClient,
		ec2Client: ec2Client,
		s3Client:  s3Client,
		region:    region,
	}
}

// NewAWSChecker creates a Checker backed by the default AWS credential chain
func NewAWSChecker(ctx context.Context, region string) (*Checker, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Checker{
		stsClient: sts.NewFromConfig(cfg),
		ec2Client: ec2.NewFromConfig(cfg),
		s3Client:  s3.NewFromConfig(cfg),
		region:    region,
	}, nil
}

// Region returns the region the checker operates in
func (c *Checker) Region() string {
	return c.region
}

// CredentialsStatus probes the configured AWS identity
func (c *Checker) CredentialsStatus(ctx context.Context) *CredentialsStatus {
	out, err := c.stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return &CredentialsStatus{
			Configured: false,
			Region:     c.region,
			Error:      "AWS credentials not configured or invalid",
		}
	}

	return &CredentialsStatus{
		Configured: true,
		AccountID:  aws.ToString(out.Account),
		ARN:        aws.ToString(out.Arn),
		Region:     c.region,
	}
}

// AvailabilityZones lists the availability zones of a region
func (c *Checker) AvailabilityZones(ctx context.Context, region string) ([]string, error) {
	out, err := c.ec2Client.DescribeAvailabilityZones(ctx, &ec2.DescribeAvailabilityZonesInput{}, func(o *ec2.Options) {
		o.Region = region
	})
	if err != nil {
		return nil, fmt.Errorf("describe availability zones: %w", err)
	}

	zones := make([]string, 0, len(out.AvailabilityZones))
	for _, az := range out.AvailabilityZones {
		zones = append(zones, aws.ToString(az.ZoneName))
	}

	return zones, nil
}

// CheckLogBucket probes an S3 bucket used for log forwarding
func (c *Checker) CheckLogBucket(ctx context.Context, bucket string) *BucketStatus {
	status := &BucketStatus{Bucket: bucket}

	_, err := c.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err == nil {
		status.Exists = true
		status.Accessible = true
		return status
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchBucket":
			status.Error = "bucket does not exist"
		case "Forbidden", "AccessDenied":
			// Bucket exists but is owned by someone else
			status.Exists = true
			status.Error = "access denied"
		default:
			status.Error = apiErr.ErrorCode()
		}
		return status
	}

	status.Error = err.Error()
	return status
}

// Overview aggregates the environment checks for the dashboard
func (c *Checker) Overview(ctx context.Context) *EnvironmentOverview {
	overview := &EnvironmentOverview{
		Credentials: *c.CredentialsStatus(ctx),
		Region:      c.region,
	}

	if overview.Credentials.Configured {
		if zones, err := c.AvailabilityZones(ctx, c.region); err == nil {
			overview.AvailabilityZones = zones
		}
	}

	return overview
}
