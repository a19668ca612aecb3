package gtfs

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strings"
)

// Source is an opened GTFS dataset.
type Source struct {
	FS   fs.FS
	Name string

	zip     *zip.ReadCloser
	tmpPath string
}

// OpenSource opens a dataset from a directory, a zip archive, or an
// http(s) URL of a zip archive.
func OpenSource(ctx context.Context, src string) (*Source, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		path, err := download(ctx, src)
		if err != nil {
			return nil, err
		}
		s, err := openZip(src, path)
		if err != nil {
			os.Remove(path)
			return nil, err
		}
		s.tmpPath = path
		return s, nil
	}

	info, err := os.Stat(src)
	if err != nil {
		return nil, &Error{
			Kind:    InvalidDatasetPath,
			Message: fmt.Sprintf("dataset path %q is not accessible", src),
			Err:     err,
		}
	}
	if info.IsDir() {
		return &Source{FS: os.DirFS(src), Name: src}, nil
	}
	return openZip(src, src)
}

// Close releases the archive and any downloaded temp file.
func (s *Source) Close() error {
	var err error
	if s.zip != nil {
		err = s.zip.Close()
	}
	if s.tmpPath != "" {
		os.Remove(s.tmpPath)
	}
	return err
}

func openZip(name, path string) (*Source, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &Error{
			Kind:    InvalidDatasetPath,
			Message: fmt.Sprintf("failed to open ZIP file %q", name),
			Err:     err,
		}
	}

	fsys, err := datasetRoot(zr)
	if err != nil {
		zr.Close()
		return nil, err
	}
	return &Source{FS: fsys, Name: name, zip: zr}, nil
}

// datasetRoot returns fsys, or its only subdirectory when the archive wraps
// the dataset files in a single folder.
func datasetRoot(fsys fs.FS) (fs.FS, error) {
	if _, err := fs.Stat(fsys, AgencyFile.FileName()); err == nil {
		return fsys, nil
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, &Error{Kind: InvalidDatasetPath, Message: "cannot list dataset", Err: err}
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return fs.Sub(fsys, entries[0].Name())
	}
	return fsys, nil
}

// download fetches a zip archive into a temp file and returns its path.
func download(ctx context.Context, url string) (string, error) {
	log.Println("Downloading GTFS data from", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", &Error{Kind: InvalidDatasetPath, Message: "failed to download GTFS data", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{
			Kind:    InvalidDatasetPath,
			Message: fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
		}
	}

	tmpFile, err := os.CreateTemp("", "gtfs_*.zip")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tmpFile.Close()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to write GTFS data to temp file: %w", err)
	}
	return tmpFile.Name(), nil
}
