package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentDisposition(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{
			name:     "ascii",
			filename: "customers-2025-06-11.csv",
			want:     `attachment; filename="customers-2025-06-11.csv"`,
		},
		{
			name:     "quote and backslash",
			filename: `Quotation-1-Sri "Ram" \ Co.pdf`,
			want:     `attachment; filename="Quotation-1-Sri _Ram_ _ Co.pdf"`,
		},
		{
			name:     "tamil",
			filename: "Quotation-SLI-Q-2025-9-அன்பு Sweets.pdf",
			want: `attachment; filename="Quotation-SLI-Q-2025-9-_____ Sweets.pdf"; ` +
				`filename*=UTF-8''Quotation-SLI-Q-2025-9-%E0%AE%85%E0%AE%A9%E0%AF%8D%E0%AE%AA%E0%AF%81%20Sweets.pdf`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contentDisposition(tt.filename))
		})
	}
}
