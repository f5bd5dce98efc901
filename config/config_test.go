package config

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":             "9090",
		"BAD_INT":          "nine",
		"COOKIE_SECURE":    "true",
		"MAX_BYTES":        "5242880",
		"ACCEPTED_ORIGINS": "https://a.dev, ,https://b.dev",
		"EMPTY":            "",
	}

	assert.Equal(t, 9090, GetInt(c, "PORT", 8080))
	assert.Equal(t, 8080, GetInt(c, "BAD_INT", 8080))
	assert.True(t, GetBool(c, "COOKIE_SECURE", false))
	assert.Equal(t, int64(5242880), GetInt64(c, "MAX_BYTES", 0))
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, GetList(c, "ACCEPTED_ORIGINS"))
	assert.Equal(t, "fallback", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
}

type fakeParameters struct {
	pages [][]types.Parameter
	calls int
}

func (f *fakeParameters) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	page := f.pages[f.calls]
	f.calls++
	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestLoadParametersKeepsEnvironmentValues(t *testing.T) {
	source := &fakeParameters{pages: [][]types.Parameter{
		{{Name: aws.String("/site/prod/ADMIN_PASSWORD"), Value: aws.String("from-ssm")}},
		{{Name: aws.String("/site/prod/redis_url"), Value: aws.String("redis://cache:6379")}},
	}}
	c := map[string]string{"ADMIN_PASSWORD": "from-env"}

	loaded, err := LoadParameters(context.Background(), source, "/site/prod", c)
	require.NoError(t, err)

	assert.Equal(t, 1, loaded)
	assert.Equal(t, "from-env", c["ADMIN_PASSWORD"])
	assert.Equal(t, "redis://cache:6379", c["REDIS_URL"])
	assert.Equal(t, 2, source.calls)
}
