package taxon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRecord_NormalizesNames(t *testing.T) {
	// "é" as combining sequence (U+0065 U+0301) vs precomposed (U+00E9).
	combining := "Mésange bleue"
	precomposed := "Mésange bleue"

	a := NewRecord(1, "species", "Cyanistes caeruleus", combining)
	b := NewRecord(1, "species", "Cyanistes caeruleus", precomposed)
	assert.Equal(t, a.CommonName, b.CommonName)
	assert.True(t, a.Active)
}

func TestWithin(t *testing.T) {
	rec := Record{ID: 10, Ancestry: []int{1, 2, 40151}}
	assert.True(t, rec.Within(40151))
	assert.False(t, rec.Within(3))

	var empty Record
	assert.False(t, empty.Within(1))
}
