package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAwsS3PublicURL(t *testing.T) {
	hosted := &AwsS3{bucket: "cookflow", region: "eu-west-1"}
	assert.Equal(t, "https://cookflow.s3.eu-west-1.amazonaws.com/recipe/1/a.jpg", hosted.PublicURL("recipe/1/a.jpg"))

	custom := &AwsS3{bucket: "cookflow", region: "us-east-1", endpoint: "http://localhost:9000"}
	assert.Equal(t, "http://localhost:9000/cookflow/recipe/1/a.jpg", custom.PublicURL("recipe/1/a.jpg"))

	assert.NoError(t, custom.MakeDir(context.Background(), "recipe/1"))
}
