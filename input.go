package main

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/snabb/httpreaderat"

	bufra "github.com/avvmoto/buf-readerat"
)

func is_url(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

func is_zip(p string) bool {
	p = strings.SplitN(p, "?", 2)[0]
	return strings.HasSuffix(strings.ToLower(p), ".zip")
}

// returns the bytes of the first file in `zip_rdr` whose base name is `member`.
func read_zip_member(zip_rdr *zip.Reader, member string) ([]byte, error) {
	for _, zipped_file_entry := range zip_rdr.File {
		if path.Base(zipped_file_entry.Name) != member {
			continue
		}
		slog.Debug("found zipped file name match", "filename", zipped_file_entry.Name)

		fh, err := zipped_file_entry.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open zipped file entry: %w", err)
		}
		defer fh.Close()

		bl, err := io.ReadAll(fh)
		if err != nil {
			return nil, fmt.Errorf("failed to read zipped file entry: %w", err)
		}
		return bl, nil
	}
	return nil, fmt.Errorf("file %q not found in archive", member)
}

func read_local_zip(zip_path, member string) ([]byte, error) {
	zip_rdr, err := zip.OpenReader(zip_path)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip file: %w", err)
	}
	defer zip_rdr.Close()
	return read_zip_member(&zip_rdr.Reader, member)
}

// reads a single file from a remote zip file without downloading the whole archive.
func read_remote_zip(client *http.Client, url, member string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// a 'readerat' is an implementation of the built-in Go interface `io.ReaderAt`,
	// that provides a means to jump around within the bytes of a remote file using
	// HTTP Range requests.
	http_readerat, err := httpreaderat.New(client, req, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create a HTTPReaderAt: %w", err)
	}

	// a 'buffered readerat' remembers the bytes read of a `io.ReaderAt` implementation,
	// the zip directory and the member are usually near each other at the end of the file.
	buffer_size := 1024 * 1024 // 1MiB
	buffered_http_readerat := bufra.NewBufReaderAt(http_readerat, buffer_size)
	zip_rdr, err := zip.NewReader(buffered_http_readerat, http_readerat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to create a zip reader: %w", err)
	}
	return read_zip_member(zip_rdr, member)
}

func download(client *http.Client, url string) ([]byte, error) {
	slog.Debug("HTTP GET", "url", url)
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch '%s': %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch '%s': unexpected response %d", url, resp.StatusCode)
	}

	content_bytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return content_bytes, nil
}

// reads the contents of an input.
// `src` may be a path or a URL, to a plain file or to a zip file containing `member`.
// a byte-order mark is removed.
func read_input(client *http.Client, src, member string) ([]byte, error) {
	var bl []byte
	var err error
	switch {
	case is_url(src) && is_zip(src):
		bl, err = read_remote_zip(client, src, member)
	case is_url(src):
		bl, err = download(client, src)
	case is_zip(src):
		bl, err = read_local_zip(src, member)
	default:
		bl, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, err
	}
	if len(bl) == 0 {
		return bl, nil
	}
	return elide_bom(bl)
}
