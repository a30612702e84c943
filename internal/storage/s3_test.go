package storage

import (
	"testing"

	"gymwell/gym-app/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestPublicBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.S3Config
		want string
	}{
		{
			name: "explicit base",
			cfg:  config.S3Config{PublicBaseURL: "https://cdn.example.com/videos/", BucketName: "b"},
			want: "https://cdn.example.com/videos",
		},
		{
			name: "custom endpoint",
			cfg:  config.S3Config{Endpoint: "http://localhost:9000", BucketName: "gym"},
			want: "http://localhost:9000/gym",
		},
		{
			name: "aws",
			cfg:  config.S3Config{Region: "eu-west-1", BucketName: "gym"},
			want: "https://gym.s3.eu-west-1.amazonaws.com",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicBaseURL(tt.cfg))
		})
	}
}

func TestKeyFromURL(t *testing.T) {
	base := "http://localhost:9000/gym"

	key, ok := keyFromURL(base, base+"/exercises/3/abc.mp4")
	assert.True(t, ok)
	assert.Equal(t, "exercises/3/abc.mp4", key)

	_, ok = keyFromURL(base, "https://youtube.com/watch?v=1")
	assert.False(t, ok)

	_, ok = keyFromURL(base, base+"/")
	assert.False(t, ok)
}
