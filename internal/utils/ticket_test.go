package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateTicketCode_LengthAndCharset(t *testing.T) {
	code, err := GenerateTicketCode(0)
	require.NoError(t, err)
	require.Len(t, code, TicketCodeLength)
	for _, r := range code {
		require.Contains(t, ticketCharset, string(r))
	}

	long, err := GenerateTicketCode(16)
	require.NoError(t, err)
	require.Len(t, long, 16)
}

func TestGenerateUniqueCodes_AvoidsExistingAndSelf(t *testing.T) {
	existing := []string{"AAAA1111", "BBBB2222"}
	codes, err := GenerateUniqueCodes(50, existing)
	require.NoError(t, err)
	require.Len(t, codes, 50)

	seen := map[string]struct{}{}
	for _, c := range existing {
		seen[c] = struct{}{}
	}
	for _, c := range codes {
		_, dup := seen[c]
		require.False(t, dup, "code %s collides", c)
		seen[c] = struct{}{}
	}
}

func TestCheckinURL(t *testing.T) {
	u := CheckinURL("https://events.example.com", 42, "ABC123")
	require.Equal(t, "https://events.example.com/checkin?event=42&code=ABC123", u)
}

func TestGuestQRCodePNG_ProducesPNG(t *testing.T) {
	png, err := GuestQRCodePNG("https://events.example.com", 42, "ABC123")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(png), "\x89PNG"), "output is a PNG image")
}
