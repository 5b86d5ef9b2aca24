package providers

import (
	"archive/tar"
	"bytes"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/codecanvas/studio/internal/types"
	"github.com/codecanvas/studio/internal/workspace"
)

// export packs the full workspace into a tar.gz archive, returned base64
// encoded so it travels inside a JSON tool result.
func (f *Files) export(w *workspace.Workspace) (*types.Result, error) {
	snap := w.FS.Snapshot()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	now := time.Now()
	for _, p := range snap.Paths() {
		file := snap.Files[p]
		hdr := &tar.Header{
			Name:    file.Path,
			Mode:    0o644,
			Size:    int64(len(file.Content)),
			ModTime: now,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return Failure(fmt.Sprintf("archive write failed: %v", err))
		}
		if _, err := tw.Write([]byte(file.Content)); err != nil {
			return Failure(fmt.Sprintf("archive write failed: %v", err))
		}
	}

	if err := tw.Close(); err != nil {
		return Failure(fmt.Sprintf("archive close failed: %v", err))
	}
	if err := gz.Close(); err != nil {
		return Failure(fmt.Sprintf("archive close failed: %v", err))
	}

	return Success(map[string]interface{}{
		"filename": w.Name + ".tar.gz",
		"files":    len(snap.Files),
		"archive":  base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
}
