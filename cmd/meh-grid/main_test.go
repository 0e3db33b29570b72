package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindCommand(t *testing.T) {
	for _, name := range []string{"estimate", "info", "normalize", "preview", "help"} {
		c, ok := findCommand(name)
		assert.True(t, ok, name)
		assert.NotNil(t, c.run, name)
	}

	_, ok := findCommand("mvt")
	assert.False(t, ok)
}
