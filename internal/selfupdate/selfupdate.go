// Package selfupdate swaps the running binary for the latest GitHub release.
// The tarball's checksum is verified against the release's checksums.txt
// while downloading; a release without checksums is never installed.
package selfupdate

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Updater locates and installs releases of one binary.
type Updater struct {
	Repo   string // GitHub "owner/name"
	Binary string // binary name, also the tarball asset prefix
	Client *http.Client
}

// Release is one published version with the assets Install needs.
type Release struct {
	Version string // without the leading "v"

	tarballName  string
	tarballURL   string
	checksumsURL string
}

// NewerThan reports whether the release is a newer semver than current.
// Leading "v" prefixes are accepted on either side.
func (r Release) NewerThan(current string) bool {
	return compareSemver(r.Version, current) > 0
}

func parseSemver(v string) [3]int {
	var out [3]int
	for i, part := range strings.SplitN(strings.TrimPrefix(v, "v"), ".", 3) {
		n, _ := strconv.Atoi(part) //nolint:errcheck // zero-value on parse failure is desired
		out[i] = n
	}
	return out
}

func compareSemver(a, b string) int {
	pa, pb := parseSemver(a), parseSemver(b)
	for i := range pa {
		if pa[i] != pb[i] {
			if pa[i] > pb[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Latest fetches the newest release and resolves the assets for the running
// platform.
func (u *Updater) Latest(ctx context.Context) (Release, error) {
	var payload struct {
		TagName string `json:"tag_name"`
		Assets  []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}

	url := "https://api.github.com/repos/" + u.Repo + "/releases/latest"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Release{}, fmt.Errorf("selfupdate: build request: %w", err)
	}
	resp, err := u.Client.Do(req)
	if err != nil {
		return Release{}, fmt.Errorf("selfupdate: check for updates: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return Release{}, fmt.Errorf("selfupdate: GitHub API returned %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Release{}, fmt.Errorf("selfupdate: parse release: %w", err)
	}

	rel := Release{
		Version:     strings.TrimPrefix(payload.TagName, "v"),
		tarballName: fmt.Sprintf("%s_%s_%s.tar.gz", u.Binary, runtime.GOOS, runtime.GOARCH),
	}
	for _, a := range payload.Assets {
		switch a.Name {
		case rel.tarballName:
			rel.tarballURL = a.BrowserDownloadURL
		case "checksums.txt":
			rel.checksumsURL = a.BrowserDownloadURL
		}
	}
	if rel.tarballURL == "" {
		return Release{}, fmt.Errorf("selfupdate: no asset %s in release %s", rel.tarballName, payload.TagName)
	}
	if rel.checksumsURL == "" {
		return Release{}, fmt.Errorf("selfupdate: release %s has no checksums.txt", payload.TagName)
	}
	return rel, nil
}

// Install downloads the release, verifies it, and atomically replaces the
// binary at execPath.
func (u *Updater) Install(ctx context.Context, rel Release, execPath string) error {
	checksums, err := u.fetch(ctx, rel.checksumsURL, 1<<20)
	if err != nil {
		return fmt.Errorf("selfupdate: download checksums: %w", err)
	}
	want, err := checksumFor(checksums, rel.tarballName)
	if err != nil {
		return fmt.Errorf("selfupdate: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", u.Binary+"-update-*")
	if err != nil {
		return fmt.Errorf("selfupdate: create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir) //nolint:errcheck

	tarballPath := filepath.Join(tmpDir, rel.tarballName)
	if err := u.downloadVerified(ctx, rel.tarballURL, tarballPath, want); err != nil {
		return fmt.Errorf("selfupdate: %w", err)
	}

	binPath := filepath.Join(tmpDir, u.Binary)
	if err := extract(tarballPath, u.Binary, binPath); err != nil {
		return fmt.Errorf("selfupdate: %w", err)
	}

	return replaceBinary(binPath, execPath)
}

// fetch downloads a small asset fully into memory.
func (u *Updater) fetch(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := u.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %s from %s", resp.Status, url)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// downloadVerified streams url to dest, hashing while writing, and fails when
// the digest does not match want.
func (u *Updater) downloadVerified(ctx context.Context, url, dest, want string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := u.Client.Do(req)
	if err != nil {
		return fmt.Errorf("download tarball: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %s from %s", resp.Status, url)
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	h := sha256.New()
	const maxDownloadSize = 100 << 20 // 100 MB
	if _, err := io.Copy(io.MultiWriter(f, h), io.LimitReader(resp.Body, maxDownloadSize)); err != nil {
		return fmt.Errorf("write tarball: %w", err)
	}
	if got := hex.EncodeToString(h.Sum(nil)); got != want {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", want, got)
	}
	return f.Close()
}

// checksumFor finds the digest recorded for fileName in a sha256sum-format
// checksums file.
func checksumFor(checksums []byte, fileName string) (string, error) {
	sc := bufio.NewScanner(bytes.NewReader(checksums))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 && fields[1] == fileName {
			return fields[0], nil
		}
	}
	return "", fmt.Errorf("no checksum found for %s", fileName)
}

// extract pulls the named binary out of a tar.gz, ignoring everything else.
func extract(tarballPath, binary, dest string) error {
	f, err := os.Open(tarballPath)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("gzip reader: %w", err)
	}
	defer gz.Close() //nolint:errcheck

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return fmt.Errorf("%s binary not found in tarball", binary)
		}
		if err != nil {
			return fmt.Errorf("tar read: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || filepath.Base(hdr.Name) != binary {
			continue
		}
		out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
		if err != nil {
			return err
		}
		const maxBinarySize = 200 << 20 // 200 MB
		if _, err := io.Copy(out, io.LimitReader(tr, maxBinarySize)); err != nil {
			out.Close() //nolint:errcheck
			return err
		}
		return out.Close()
	}
}

// replaceBinary stages src next to execPath and renames it into place, so a
// crash mid-write never leaves a torn binary.
func replaceBinary(src, execPath string) error {
	stagePath := execPath + ".new"
	defer os.Remove(stagePath) //nolint:errcheck

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("selfupdate: open extracted binary: %w", err)
	}
	defer in.Close() //nolint:errcheck

	out, err := os.OpenFile(stagePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("permission denied writing to %s — try with sudo", filepath.Dir(execPath))
		}
		return fmt.Errorf("selfupdate: create staged binary: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close() //nolint:errcheck
		return fmt.Errorf("selfupdate: write staged binary: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("selfupdate: close staged binary: %w", err)
	}

	if err := os.Rename(stagePath, execPath); err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("permission denied replacing %s — try with sudo", execPath)
		}
		return fmt.Errorf("selfupdate: replace binary: %w", err)
	}
	return nil
}
