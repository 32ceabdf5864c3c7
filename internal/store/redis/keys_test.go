package redis

import (
	"testing"

	"github.com/MrSnakeDoc/georepo/internal/domain"
)

func TestKeys(t *testing.T) {
	if got := SheetKey(domain.CategoryTools); got != "georepo:sheet:tools" {
		t.Errorf("SheetKey() = %q", got)
	}
	if got := FavoritesKey("jdoe"); got != "georepo:favorites:jdoe" {
		t.Errorf("FavoritesKey() = %q", got)
	}
}

func TestExtractCategory(t *testing.T) {
	tests := []struct {
		key     string
		want    domain.Category
		wantErr bool
	}{
		{key: "georepo:sheet:python-codes", want: domain.CategoryPythonCodes},
		{key: "georepo:sheet:", wantErr: true},
		{key: "georepo:sheet:recipes", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := ExtractCategory(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractCategory() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractCategory() = %q, want %q", got, tt.want)
			}
		})
	}
}
