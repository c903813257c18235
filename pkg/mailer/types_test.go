package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecipient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userName string
		email    string
		want     string
	}{
		{"bare address", "", "ada@example.com", "ada@example.com"},
		{"simple name", "Ada", "ada@example.com", `"Ada" <ada@example.com>`},
		{"name with comma", "Lovelace, Ada", "ada@example.com", `"Lovelace, Ada" <ada@example.com>`},
		{"name with quotes", `Ada "Countess"`, "ada@example.com", `"Ada \"Countess\"" <ada@example.com>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Recipient(tt.userName, tt.email))
		})
	}
}

func TestSimpleTags(t *testing.T) {
	t.Parallel()

	tags := SimpleTags("contact", "portfolio")
	require.Len(t, tags, 2)
	require.Equal(t, struct{}{}, tags["contact"])
	require.Contains(t, tags, "portfolio")

	require.Empty(t, SimpleTags())
}
