package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLink(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "ссылка общего доступа переписывается в прямую",
			in:   "https://drive.google.com/file/d/1AbC-dEf_123/view?usp=sharing",
			want: "https://drive.google.com/uc?export=download&id=1AbC-dEf_123",
		},
		{
			name: "ссылка без query тоже переписывается",
			in:   "https://drive.google.com/file/d/xyz/view",
			want: "https://drive.google.com/uc?export=download&id=xyz",
		},
		{
			name: "ссылка без схемы переписывается с https",
			in:   "drive.google.com/file/d/abc123/view",
			want: "https://drive.google.com/uc?export=download&id=abc123",
		},
		{
			name: "недопустимый символ в id не распознается",
			in:   "https://drive.google.com/file/d/abc%21/view",
			want: "https://drive.google.com/file/d/abc%21/view",
		},
		{
			name: "обычный URL проходит без изменений",
			in:   "https://cdn.example.com/images/photo.jpg",
			want: "https://cdn.example.com/images/photo.jpg",
		},
		{
			name: "уже прямая ссылка drive не трогается",
			in:   "https://drive.google.com/uc?export=download&id=xyz",
			want: "https://drive.google.com/uc?export=download&id=xyz",
		},
		{
			name: "пустая строка проходит без изменений",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLink(tt.in))
		})
	}
}
