package builder

import (
	"github.com/bmeg/sitebundle/logger"
	"github.com/bmeg/sitebundle/manifest"
	"github.com/bmeg/sitebundle/scan"
	"github.com/bmeg/sitebundle/util"
)

// GenerateSite scans bucket and builds the manifest and content records for
// every file kept by the ignore rules. A bucket with no files is an
// *EmptyBundleError.
func GenerateSite(bucket string) (*manifest.Site, error) {
	b := manifest.NewBuilder()
	err := scan.Walk(bucket, func(f scan.File) error {
		data, err := util.ReadFile(f.Path)
		if err != nil {
			return err
		}
		info, err := b.Add(f.Rel, data)
		if err != nil {
			return err
		}
		logger.Debug("bundled", "path", info.Path, "kind", info.Kind.String(), "size", info.Size, "type", info.ContentType)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if b.Len() == 0 {
		return nil, &EmptyBundleError{Bucket: bucket}
	}
	return b.Site(), nil
}
