package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleEstimate(t *testing.T) {
	assert := assert.New(t)

	var e Simple
	assert.Equal(0, e.Estimate(""))
	assert.Equal(1, e.Estimate("abcd"))
	assert.Equal(25, e.Estimate(string(make([]byte, 100))))
}

func TestForName(t *testing.T) {
	assert := assert.New(t)

	e, err := ForName("simple")
	assert.NoError(err)
	assert.IsType(Simple{}, e)

	e, err = ForName("")
	assert.NoError(err)
	assert.IsType(Simple{}, e)

	_, err = ForName("bogus")
	assert.Error(err)
}
