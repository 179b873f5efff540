package treasury_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iov-one/treasury"
)

func TestVersion(t *testing.T) {
	defer func() { treasury.GitCommit = "" }()

	treasury.GitCommit = ""
	assert.Equal(t, "v0.1.0", treasury.Version())

	treasury.GitCommit = "12345678"
	assert.Equal(t, "v0.1.0 12345678", treasury.Version())
}
