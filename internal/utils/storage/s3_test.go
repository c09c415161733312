package storage

import (
	"Cook-App-Backend/domain"
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadBase64(t *testing.T) {
	ctx := context.Background()
	png := base64.StdEncoding.EncodeToString([]byte("\x89PNG fake"))

	t.Run("empty uploads nothing", func(t *testing.T) {
		url, err := UploadBase64(ctx, &AwsS3{}, "  ", "", "dishes")
		require.NoError(t, err)
		assert.Empty(t, url)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := UploadBase64(ctx, &AwsS3{}, png, "application/pdf", "dishes")
		assert.ErrorIs(t, err, domain.ErrUnsupportedImage)
	})

	t.Run("disabled store is a dependency failure", func(t *testing.T) {
		_, err := UploadBase64(ctx, &AwsS3{}, png, "image/png", "dishes")
		require.Error(t, err)
		assert.Equal(t, domain.KindDependency, domain.KindOf(err))
		assert.ErrorIs(t, err, ErrMediaStoreDisabled)
	})
}

func TestPublicLinkRoundTrip(t *testing.T) {
	a := &AwsS3{bucket: "cook-media", region: "ap-southeast-1"}

	link := a.GetPublicLinkKey("dishes/abc.png")
	assert.Equal(t, "https://cook-media.s3.ap-southeast-1.amazonaws.com/dishes/abc.png", link)
	assert.Equal(t, "dishes/abc.png", a.GetObjectKeyFromLink(link))
	assert.True(t, AllowImage("IMAGE/WEBP"))
	assert.False(t, AllowImage("text/plain"))
}
