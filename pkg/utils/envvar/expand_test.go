package envvar_test

import (
	"testing"

	"github.com/devantler-tech/s3edit/pkg/utils/envvar"
	"github.com/stretchr/testify/assert"
)

func lookup(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestExpandWith(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"MINIO_HOST": "localhost:9000",
		"PROFILE":    "dev",
		"VAR123":     "numeric",
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"no placeholders", "eu-west-1", "eu-west-1"},
		{"single placeholder", "http://${MINIO_HOST}", "http://localhost:9000"},
		{"unset placeholder", "${MISSING}", ""},
		{"multiple placeholders", "${PROFILE}-${VAR123}", "dev-numeric"},
		{"bare dollar untouched", "pa$$word$PROFILE", "pa$$word$PROFILE"},
		{"unterminated", "${PROFILE", "${PROFILE"},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, envvar.ExpandWith(testCase.input, lookup(env)))
		})
	}
}

func TestExpandAll(t *testing.T) {
	t.Parallel()

	endpoint := "http://${HOST}"
	profile := "static"

	envvar.ExpandAll(lookup(map[string]string{"HOST": "minio"}), &endpoint, nil, &profile)

	assert.Equal(t, "http://minio", endpoint)
	assert.Equal(t, "static", profile)
}

//nolint:paralleltest // sets process environment
func TestExpand_ProcessEnvironment(t *testing.T) {
	t.Setenv("S3EDIT_TEST_REGION", "us-east-2")

	assert.Equal(t, "us-east-2", envvar.Expand("${S3EDIT_TEST_REGION}"))
}
