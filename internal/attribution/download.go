package attribution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/mathcards/internal/logging"
)

// ErrStatus is returned when the image server answers with anything but 200.
var ErrStatus = errors.New("unexpected HTTP status")

// Failure records an item that could not be downloaded.
type Failure struct {
	Item Item
	Err  error
}

// Result summarizes a download run.
type Result struct {
	Downloaded []Item
	Failed     []Failure
}

// Downloader fetches manifest images into a directory, one at a time.
type Downloader struct {
	client *http.Client
	outDir string
	logger *zap.Logger
}

// NewDownloader creates a Downloader writing into outDir.
func NewDownloader(client *http.Client, outDir string, logger *zap.Logger) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Downloader{client: client, outDir: outDir, logger: logging.OrNop(logger)}
}

// Run downloads every item sequentially. A failed item is logged and
// skipped; Run only returns an error when the output directory is unusable
// or ctx is cancelled.
func (d *Downloader) Run(ctx context.Context, items []Item) (*Result, error) {
	if err := os.MkdirAll(d.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	res := &Result{}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		dest, err := d.destination(item.Name)
		if err == nil {
			d.logger.Info("downloading", zap.String("url", item.URL), zap.String("dest", dest))
			err = d.fetchToFile(ctx, item.URL, dest)
		}
		if err != nil {
			d.logger.Error("download failed", zap.String("url", item.URL), zap.Error(err))
			res.Failed = append(res.Failed, Failure{Item: item, Err: err})
			continue
		}

		d.logger.Info("downloaded", zap.String("name", item.Name))
		res.Downloaded = append(res.Downloaded, item)
	}
	return res, nil
}

func (d *Downloader) destination(name string) (string, error) {
	if name != filepath.Base(name) || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid image name %q", name)
	}
	return filepath.Join(d.outDir, name), nil
}

// fetchToFile streams url into a temp file next to dest and renames it into
// place, so a failed download never leaves a partial file behind.
func (d *Downloader) fetchToFile(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: HTTP %d for %s", ErrStatus, resp.StatusCode, url)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
