package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamParserYieldsOneQueryThenExhausts(t *testing.T) {
	p, err := NewParamParser("3", []string{"2", "1", "Asia"})
	require.NoError(t, err)

	kind, args, _, ok, err := p.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Q3, kind)
	assert.Equal(t, []string{"2", "1", "Asia"}, args)

	_, _, _, ok, err = p.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewParamParserRejectsBadQueryNumber(t *testing.T) {
	_, err := NewParamParser("9", nil)
	assert.Error(t, err)
}
