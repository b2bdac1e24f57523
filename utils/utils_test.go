package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/magiconair/properties/assert"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseListString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "bracketed list", raw: "[0xabc, 0xdef]", want: []string{"0xabc", "0xdef"}},
		{name: "quoted elements", raw: `["0xabc","0xdef"]`, want: []string{"0xabc", "0xdef"}},
		{name: "bare scalar", raw: "0xabc", want: []string{"0xabc"}},
		{name: "empty string", raw: "", want: nil},
		{name: "empty list", raw: "[]", want: []string{}},
		{name: "whitespace", raw: "  [ 1 , 2 ]  ", want: []string{"1", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseListString(tt.raw))
		})
	}
}

func TestExtractBIPNumber(t *testing.T) {
	assert.Equal(t, ExtractBIPNumber("BIPs/2023-W23/BIP-334.json"), "BIP-334")
	assert.Equal(t, ExtractBIPNumber("BIP289.json"), "BIP-289")
	assert.Equal(t, ExtractBIPNumber("payload.json"), SentinelNA)
}

func TestScaleAmount(t *testing.T) {
	raw, _ := decimal.NewFromString("1500000")
	assert.Equal(t, ScaleAmount(raw, 6).String(), "1.5")
	raw, _ = decimal.NewFromString("1000000000000000000")
	assert.Equal(t, ScaleAmount(raw, 18).String(), "1")
}

func TestPrettyAmounts(t *testing.T) {
	pretty := PrettyAmounts([]string{"2000000", "not-a-number"}, 6)
	require.Equal(t, []string{"raw: 2000000/1e6 = 2", "not-a-number"}, pretty)
}

func TestSumAmounts(t *testing.T) {
	assert.Equal(t, SumAmounts([]string{"100", "250", "junk"}).String(), "350")
}

func TestChecksumAddress(t *testing.T) {
	assert.Equal(t, ChecksumAddress("0xba100000625a3754423978a60c9317c58a424e3d"), "0xba100000625a3754423978a60c9317c58a424e3D")
	assert.Equal(t, ChecksumAddress("not an address"), "not an address")
}

func TestElapsedTime(t *testing.T) {
	slow := ElapsedTime(time.Now().Add(-2 * time.Second))
	require.True(t, strings.HasSuffix(slow, "s") && !strings.HasSuffix(slow, "ms"))
	require.True(t, strings.HasSuffix(ElapsedTime(time.Now()), "ms"))
}

func TestChainNames(t *testing.T) {
	assert.Equal(t, ChainNameByID(137), ChainPolygon)
	assert.Equal(t, ChainNameByID(424242), ChainEmpty)
	assert.Equal(t, ChainIDByName(ChainMainnet), int64(1))
	assert.Equal(t, DisplayChain(ChainAvalanche), "avax")
	assert.Equal(t, DisplayChain(ChainGnosis), ChainGnosis)
}
