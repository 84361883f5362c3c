package identifier

import (
	"testing"

	"github.com/inkshelf/inkshelf/pkg/errcodes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind string
	}{
		{"ten digits", "0306406152", KindISBN10},
		{"ten digits with dashes", "0-306-40615-2", KindISBN10},
		{"valid ean13 checksum", "9780306406157", KindEAN13},
		{"valid ean13 with dashes", "978-0-306-40615-7", KindEAN13},
		{"comic barcode", "4006381333931", KindEAN13},
		{"thirteen digits failing checksum", "9780306406158", KindISBN13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := Classify(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestClassify_InvalidLength(t *testing.T) {
	for _, raw := range []string{"", "12345", "123456789", "12345678901", "123456789012345", "abc-def"} {
		t.Run(raw, func(t *testing.T) {
			kind, err := Classify(raw)
			assert.Empty(t, kind)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errcodes.InvalidIdentifier(raw)))
		})
	}
}
