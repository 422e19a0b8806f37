package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluralize(t *testing.T) {
	assert.Equal(t, "alias", Pluralize(1, "alias", "aliases"))
	assert.Equal(t, "aliases", Pluralize(0, "alias", "aliases"))
	assert.Equal(t, "aliases", Pluralize(2, "alias", "aliases"))
}
