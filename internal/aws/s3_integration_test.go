// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

//go:build integration
// +build integration

package aws

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_Open reads the object named by COLFILTER_S3_TEST_URI using
// the default credential chain.
func TestIntegration_Open(t *testing.T) {
	uri := os.Getenv("COLFILTER_S3_TEST_URI")
	if uri == "" {
		t.Skip("COLFILTER_S3_TEST_URI not set")
	}
	ctx := context.Background()

	client, err := NewS3(ctx, WithRegion(os.Getenv("AWS_REGION")))
	require.NoError(t, err)

	body, err := Open(ctx, client, uri)
	require.NoError(t, err)
	defer body.Close()

	b, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}
