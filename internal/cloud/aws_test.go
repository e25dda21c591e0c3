package cloud_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rh-rosa-lab/rosactl/internal/cloud"
)

type fakeSTS struct {
	out *sts.GetCallerIdentityOutput
	err error
}

func (f *fakeSTS) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return f.out, f.err
}

type fakeEC2 struct {
	zones []string
	err   error
}

func (f *fakeEC2) DescribeAvailabilityZones(ctx context.Context, params *ec2.DescribeAvailabilityZonesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAvailabilityZonesOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	out := &ec2.DescribeAvailabilityZonesOutput{}
	for _, z := range f.zones {
		out.AvailabilityZones = append(out.AvailabilityZones, ec2types.AvailabilityZone{
			ZoneName: aws.String(z),
		})
	}
	return out, nil
}

type fakeS3 struct {
	err error
}

func (f *fakeS3) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &s3.HeadBucketOutput{}, nil
}

type apiError struct {
	code string
}

func (e *apiError) Error() string       { return e.code }
func (e *apiError) ErrorCode() string   { return e.code }
func (e *apiError) ErrorMessage() string { return e.code }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

func TestChecker_CredentialsStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("reports configured identity", func(t *testing.T) {
		checker := cloud.NewChecker(&fakeSTS{
			out: &sts.GetCallerIdentityOutput{
				Account: aws.String("123456789012"),
				Arn:     aws.String("arn:aws:iam::123456789012:user/operator"),
			},
		}, &fakeEC2{}, &fakeS3{}, "us-west-2")

		status := checker.CredentialsStatus(ctx)
		assert.True(t, status.Configured)
		assert.Equal(t, "123456789012", status.AccountID)
		assert.Equal(t, "us-west-2", status.Region)
	})

	t.Run("reports missing credentials", func(t *testing.T) {
		checker := cloud.NewChecker(&fakeSTS{err: fmt.Errorf("no credentials")}, &fakeEC2{}, &fakeS3{}, "us-west-2")

		status := checker.CredentialsStatus(ctx)
		assert.False(t, status.Configured)
		assert.NotEmpty(t, status.Error)
	})
}

func TestChecker_AvailabilityZones(t *testing.T) {
	checker := cloud.NewChecker(&fakeSTS{}, &fakeEC2{zones: []string{"us-west-2a", "us-west-2b"}}, &fakeS3{}, "us-west-2")

	zones, err := checker.AvailabilityZones(context.Background(), "us-west-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"us-west-2a", "us-west-2b"}, zones)
}

func TestChecker_CheckLogBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("accessible bucket", func(t *testing.T) {
		checker := cloud.NewChecker(&fakeSTS{}, &fakeEC2{}, &fakeS3{}, "us-west-2")

		status := checker.CheckLogBucket(ctx, "my-logs")
		assert.True(t, status.Exists)
		assert.True(t, status.Accessible)
		assert.Empty(t, status.Error)
	})

	t.Run("missing bucket", func(t *testing.T) {
		checker := cloud.NewChecker(&fakeSTS{}, &fakeEC2{}, &fakeS3{err: &apiError{code: "NotFound"}}, "us-west-2")

		status := checker.CheckLogBucket(ctx, "my-logs")
		assert.False(t, status.Exists)
		assert.Equal(t, "bucket does not exist", status.Error)
	})

	t.Run("foreign bucket", func(t *testing.T) {
		checker := cloud.NewChecker(&fakeSTS{}, &fakeEC2{}, &fakeS3{err: &apiError{code: "AccessDenied"}}, "us-west-2")

		status := checker.CheckLogBucket(ctx, "my-logs")
		assert.True(t, status.Exists)
		assert.False(t, status.Accessible)
		assert.Equal(t, "access denied", status.Error)
	})
}

func TestChecker_Overview(t *testing.T) {
	checker := cloud.NewChecker(&fakeSTS{
		out: &sts.GetCallerIdentityOutput{
			Account: aws.String("123456789012"),
			Arn:     aws.String("arn:aws:iam::123456789012:user/operator"),
		},
	}, &fakeEC2{zones: []string{"us-west-2a"}}, &fakeS3{}, "us-west-2")

	overview := checker.Overview(context.Background())
	assert.True(t, overview.Credentials.Configured)
	assert.Equal(t, []string{"us-west-2a"}, overview.AvailabilityZones)
	assert.Equal(t, "us-west-2", overview.Region)
}
