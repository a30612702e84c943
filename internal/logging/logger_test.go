package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestGetLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"DEBUG", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"trace", logrus.TraceLevel},
		{"", logrus.InfoLevel},
		{"nonsense", logrus.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetLevel(tt.in), tt.in)
	}
}
