// Package download saves episodes and chapters to disk.
// Videos go through ffmpeg with explicit argument slices; comic chapters
// are fetched page by page over HTTP. Output paths are validated against
// directory traversal.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"reelhub/internal/httputil"
	"reelhub/internal/media"
)

// maxPageSize caps a single page image.
const maxPageSize = 20 * 1024 * 1024

// pageWorkers is how many pages are fetched at once.
const pageWorkers = 4

// Downloader saves resolved references under Dir.
type Downloader struct {
	Client *httputil.Client
	Dir    string
}

// New creates a Downloader writing to dir.
func New(client *httputil.Client, dir string) *Downloader {
	return &Downloader{Client: client, Dir: dir}
}

// Download saves ref and returns the path written: a file for a video, a
// directory of numbered pages for a comic chapter.
func (d *Downloader) Download(ctx context.Context, ref media.VideoRef, title string) (string, error) {
	absDir, err := filepath.Abs(d.Dir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	switch {
	case ref.IsImages():
		return d.downloadPages(ctx, ref.Images, title, absDir)
	case !ref.Empty():
		return downloadVideo(ctx, ref.URL, title, absDir)
	default:
		return "", fmt.Errorf("nothing to download")
	}
}

func downloadVideo(ctx context.Context, url, title, dir string) (string, error) {
	if err := httputil.ValidateURL(url); err != nil {
		return "", fmt.Errorf("invalid video URL: %w", err)
	}

	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	outputPath, err := httputil.SafeDownloadPath(dir, title, ".mp4")
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, ffmpegArgs(url, title, outputPath)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	fmt.Fprintf(os.Stderr, "Downloading to: %s\n", outputPath)

	if err := cmd.Run(); err != nil {
		// Clean up partial download on failure
		os.Remove(outputPath)
		return "", fmt.Errorf("ffmpeg download failed: %w", err)
	}

	return outputPath, nil
}

func ffmpegArgs(url, title, outputPath string) []string {
	return []string{
		"-y", // Overwrite output
		"-loglevel", "error",
		"-stats",
		"-i", url,
		"-c", "copy", // No re-encoding
		"-bsf:a", "aac_adtstoasc", // HLS audio into an MP4 container
		"-metadata", "title=" + title,
		outputPath,
	}
}

// downloadPages fetches every page into a temporary directory next to the
// target and renames it into place once all pages are written.
func (d *Downloader) downloadPages(ctx context.Context, pages []string, title, dir string) (string, error) {
	target, err := httputil.SafeDownloadPath(dir, title, "")
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	tmp, err := os.MkdirTemp(dir, ".reelhub-pages-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(pageWorkers)
	for i, page := range pages {
		name := pageName(i, len(pages), page)
		g.Go(func() error {
			return d.fetchPage(ctx, page, filepath.Join(tmp, name))
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	if err := os.RemoveAll(target); err != nil {
		return "", fmt.Errorf("replacing %s: %w", target, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return "", fmt.Errorf("moving pages into place: %w", err)
	}
	return target, nil
}

// pageName numbers pages with enough zero padding to sort correctly and
// keeps the image extension from the URL.
func pageName(i, total int, rawURL string) string {
	width := len(fmt.Sprint(total))
	if width < 3 {
		width = 3
	}

	ext := strings.ToLower(path.Ext(strings.SplitN(rawURL, "?", 2)[0]))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif", ".avif":
	default:
		ext = ".jpg"
	}
	return fmt.Sprintf("%0*d%s", width, i+1, ext)
}

func (d *Downloader) fetchPage(ctx context.Context, url, dest string) error {
	resp, err := d.Client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("downloading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("page download returned status %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating page file: %w", err)
	}

	if _, err := io.Copy(f, io.LimitReader(resp.Body, maxPageSize)); err != nil {
		f.Close()
		return fmt.Errorf("writing page file: %w", err)
	}
	return f.Close()
}
