package snapshot

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/rendr/internal/errors"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func TestFileTarget(t *testing.T) {
	dir := t.TempDir()
	target, err := ParseTarget(filepath.Join(dir, "out", "index.html"), nil)
	require.NoError(t, err)

	loc, err := target.Save(context.Background(), []byte("<p>hi</p>"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "index.html"), loc)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(data))
}

func TestS3Target(t *testing.T) {
	fake := &fakeS3{}
	target, err := ParseTarget("s3://site/pages/index.html", func() (PutObjectAPI, error) {
		return fake, nil
	})
	require.NoError(t, err)

	loc, err := target.Save(context.Background(), []byte("<p>hi</p>"))
	require.NoError(t, err)
	assert.Equal(t, "s3://site/pages/index.html", loc)

	require.Len(t, fake.inputs, 1)
	in := fake.inputs[0]
	assert.Equal(t, "site", aws.ToString(in.Bucket))
	assert.Equal(t, "pages/index.html", aws.ToString(in.Key))
	assert.Equal(t, "text/html; charset=utf-8", aws.ToString(in.ContentType))
	assert.Equal(t, "rendr", in.Metadata["generator"])
	assert.Equal(t, "<p>hi</p>", fake.bodies[0])
}

func TestS3PutFailure(t *testing.T) {
	cause := stderrors.New("access denied")
	target := Target{Store: &S3Store{Client: &fakeS3{err: cause}, Bucket: "b", Prefix: "p/"}, Key: "k.html"}

	_, err := target.Save(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "E160"))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "access denied")
}

func TestParseTargetErrors(t *testing.T) {
	noClient := func() (PutObjectAPI, error) { return nil, stderrors.New("no credentials") }

	for _, target := range []string{"", "s3://", "s3://bucket", "s3://bucket/", "s3://bucket/dir/", "s3://b/k"} {
		_, err := ParseTarget(target, noClient)
		assert.Error(t, err, target)
		assert.True(t, errors.HasCode(err, "E161"), target)
	}
}

func TestS3FromEnv(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	_, err := S3FromEnv()
	assert.Error(t, err)

	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIDEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_ENDPOINT_URL", "http://localhost:9000")
	client, err := S3FromEnv()
	require.NoError(t, err)

	c, ok := client.(*s3.Client)
	require.True(t, ok)
	assert.Equal(t, "eu-west-1", c.Options().Region)
	assert.True(t, c.Options().UsePathStyle)
}
