package model

import "testing"

// TestAssetExt tests file extension mapping for asset media types.
func TestAssetExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mime string
		want string
	}{
		{name: "png", mime: "image/png", want: ".png"},
		{name: "jpeg", mime: "image/jpeg", want: ".jpg"},
		{name: "gif", mime: "image/gif", want: ".gif"},
		{name: "svg", mime: "image/svg+xml", want: ".svg"},
		{name: "unknown type falls back to bin", mime: "application/x-whatever", want: ".bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := Asset{MIME: tt.mime}
			if got := a.Ext(); got != tt.want {
				t.Errorf("Ext() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestCellImages tests binary asset extraction from cell outputs.
func TestCellImages(t *testing.T) {
	t.Parallel()

	t.Run("collects images in output order", func(t *testing.T) {
		t.Parallel()

		cell := Cell{
			Type: CellTypeCode,
			Outputs: []Output{
				{Kind: OutputStream, Text: "epoch 1\n"},
				{Kind: OutputDisplayData, Image: &Asset{MIME: "image/png", Data: []byte{1}}},
				{Kind: OutputExecuteResult, Image: &Asset{MIME: "image/jpeg", Data: []byte{2}}},
			},
		}

		images := cell.Images()
		if len(images) != 2 {
			t.Fatalf("expected 2 images, got %d", len(images))
		}
		if images[0].MIME != "image/png" || images[1].MIME != "image/jpeg" {
			t.Errorf("unexpected image order: %q, %q", images[0].MIME, images[1].MIME)
		}
	})

	t.Run("returns nil for cell without binary outputs", func(t *testing.T) {
		t.Parallel()

		cell := Cell{
			Type:    CellTypeCode,
			Outputs: []Output{{Kind: OutputStream, Text: "done\n"}},
		}

		if images := cell.Images(); images != nil {
			t.Errorf("expected no images, got %d", len(images))
		}
	})
}

// TestTrimmedSource tests whitespace trimming of cell sources.
func TestTrimmedSource(t *testing.T) {
	t.Parallel()

	cell := Cell{Source: "\n  import numpy as np  \n"}
	if got := cell.TrimmedSource(); got != "import numpy as np" {
		t.Errorf("TrimmedSource() = %q", got)
	}
}
