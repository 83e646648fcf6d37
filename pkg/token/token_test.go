package token

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	a := assert.New(t)
	rx := regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

	for _, n := range []int{1, 8, 12, 40} {
		token, err := Generate(n)
		a.NoError(err)
		a.Len(token, n)
		a.Regexp(rx, token)
	}

	token, err := Generate(12)
	a.NoError(err)
	token2, err := Generate(12)
	a.NoError(err)
	a.NotEqual(token, token2)

	_, err = Generate(0)
	a.Equal(ErrInvalidLength, err)
}
