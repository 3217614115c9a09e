package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/praykar/autonotebook/internal/model"
)

// assetDirSuffix names the per-notebook asset directory, following the
// convention browsers use when saving pages ("<name>_files/").
const assetDirSuffix = "_files"

// assetFileName returns the stable on-disk name for an asset: the cell
// index and the asset's position within the cell fully determine it, so
// re-rendering an unchanged page rewrites the same files.
func assetFileName(cellIndex, n int, asset model.Asset) string {
	return fmt.Sprintf("cell-%d-%d%s", cellIndex, n, asset.Ext())
}

// writeAssets copies every binary asset of the page into the notebook's
// asset directory and returns the relative link target for each section's
// assets, keyed by cell index. Asset bytes are written exactly as they
// appeared in the source notebook.
func (b baseWriter) writeAssets(page *model.Page) (map[int][]string, error) {
	links := make(map[int][]string)
	if page.AssetCount() == 0 {
		return links, nil
	}

	dir := b.slug(page) + assetDirSuffix
	if err := os.MkdirAll(filepath.Join(b.outputDir, dir), 0750); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRender, dir, err)
	}

	for _, section := range page.Sections {
		for n, asset := range section.Assets {
			name := assetFileName(section.Cell.Index, n, asset)
			path := filepath.Join(b.outputDir, dir, name)
			if err := os.WriteFile(path, asset.Data, 0600); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrRender, path, err)
			}
			// Links are relative so the output directory can be moved
			// or served as-is.
			links[section.Cell.Index] = append(links[section.Cell.Index], dir+"/"+name)
		}
	}
	return links, nil
}
