package sequence_test

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/duka-api/pkg/sequence"
)

var numberPattern = regexp.MustCompile(`^INV-20260829-(\d{5})-[ABCDEFGHJKMNPQRSTUVWXYZ23456789]{4}(\d{4})$`)

func fixedClock() time.Time {
	return time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)
}

func TestNext_Format(t *testing.T) {
	gen := sequence.NewGeneratorAt(fixedClock)

	number := gen.Next("INV", "")
	matches := numberPattern.FindStringSubmatch(number)
	require.NotNil(t, matches, "unexpected number format: %s", number)

	assert.Equal(t, "00001", matches[1])
	assert.Equal(t, fmt.Sprintf("%04d", fixedClock().UnixMilli()%10000), matches[2])
}

func TestNext_IncrementsFromLast(t *testing.T) {
	gen := sequence.NewGeneratorAt(fixedClock)

	number := gen.Next("INV", "INV-20260829-00041-K7QX3518")
	assert.True(t, strings.HasPrefix(number, "INV-20260829-00042-"), "got %s", number)
}

func TestNext_RestartsOnUnparseableLast(t *testing.T) {
	gen := sequence.NewGeneratorAt(fixedClock)

	for _, last := range []string{"garbage", "INV-20260829", "INV-20260829-notanumber-XXXX0000"} {
		number := gen.Next("INV", last)
		assert.True(t, strings.HasPrefix(number, "INV-20260829-00001-"), "last=%q got %s", last, number)
	}
}

func TestNext_SuffixVaries(t *testing.T) {
	gen := sequence.NewGeneratorAt(fixedClock)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		seen[gen.Next("INV", "")] = true
	}
	// Same clock, same sequence; the random suffix still separates them.
	assert.Greater(t, len(seen), 1)
}

func TestSearchPrefix(t *testing.T) {
	gen := sequence.NewGeneratorAt(fixedClock)
	assert.Equal(t, "PO-202608", gen.SearchPrefix("PO"))
}
