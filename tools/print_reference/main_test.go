package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintReference(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printReference(&buf, 10))

	out := buf.String()
	assert.Contains(t, out, "Annual payment: 91388.48")
	assert.Contains(t, out, "Year 10\n")
	assert.NotContains(t, out, "Year 11\n")
	assert.Contains(t, out, "Break-even year: 6")
}
