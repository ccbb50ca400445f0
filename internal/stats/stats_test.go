package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Compute(""))
}

func TestCompute_CountsParagraphsCharactersWords(t *testing.T) {
	text := "Go is a language.\n\n• Alpha\n• Beta\n\n\nEnd"
	got := Compute(text)
	assert.Equal(t, 3, got.Paragraphs)
	assert.Equal(t, 9, got.Words)
	assert.Equal(t, 28, got.Characters)
}

func TestCompute_CJKCountsRunes(t *testing.T) {
	got := Compute("中文字 Go")
	assert.Equal(t, Stats{Paragraphs: 1, Characters: 5, Words: 2}, got)
}
