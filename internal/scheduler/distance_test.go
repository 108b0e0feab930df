package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZipPrefixEstimator(t *testing.T) {
	est := ZipPrefixEstimator{}

	assert.Equal(t, 5, est.Miles("94110", "94117"))
	assert.Equal(t, 15, est.Miles("94110", "94901"))
	assert.Equal(t, 25, est.Miles("94110", "10001"))
	assert.Equal(t, 10, est.Miles("", "94110"), "missing zip assumes moderate distance")
}

func TestExtractZip(t *testing.T) {
	assert.Equal(t, "94110", ExtractZip("123 Valencia St, San Francisco, CA 94110"))
	assert.Equal(t, "", ExtractZip("123 Valencia St"))
	assert.Equal(t, "", ExtractZip("unit 123456"), "six digits is not a zip")
}
