package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupersedes(t *testing.T) {
	prelim := &Analysis{Tier: TierPreliminary}
	verified := &Analysis{Tier: TierVerified}

	tests := []struct {
		name     string
		incoming *Analysis
		existing *Analysis
		force    bool
		want     bool
	}{
		{"first write always wins", prelim, nil, false, true},
		{"verified over nothing", verified, nil, false, true},
		{"preliminary over preliminary", prelim, prelim, false, true},
		{"verified over preliminary", verified, prelim, false, true},
		{"verified over verified", verified, verified, false, true},
		{"preliminary never displaces verified", prelim, verified, false, false},
		{"force lets preliminary displace verified", prelim, verified, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.incoming.Supersedes(tt.existing, tt.force))
		})
	}
}

func TestResumeExcerpt(t *testing.T) {
	resume := &Resume{Text: "short text"}
	assert.Equal(t, "short text", resume.Excerpt(300))

	long := &Resume{Text: strings.Repeat("a", 400)}
	assert.Len(t, long.Excerpt(300), 300)

	multibyte := &Resume{Text: strings.Repeat("é", 10)}
	assert.Equal(t, strings.Repeat("é", 5), multibyte.Excerpt(5))
}
