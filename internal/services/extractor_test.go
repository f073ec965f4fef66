package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextPlainFile(t *testing.T) {
	extractor := NewTextExtractor()

	text, err := extractor.ExtractText("resume.txt", []byte("Jane Doe\nBackend Engineer"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nBackend Engineer", text)
}

func TestExtractTextEmptyFile(t *testing.T) {
	extractor := NewTextExtractor()

	_, err := extractor.ExtractText("resume.txt", []byte("   \n  "))
	assert.Error(t, err)
}

func TestExtractTextCorruptPDF(t *testing.T) {
	extractor := NewTextExtractor()

	_, err := extractor.ExtractText("resume.pdf", []byte("not actually a pdf"))
	assert.Error(t, err)
}

func TestCleanText(t *testing.T) {
	cleaned := CleanText("  Jane Doe  \n\n   \nBackend Engineer\n")
	assert.Equal(t, "Jane Doe\nBackend Engineer", cleaned)
}
