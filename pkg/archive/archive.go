// Package archive builds the gzip-compressed tar stream uploaded when
// a project is published.
//
// [Build] writes entries in exactly the order given, with normalized
// headers (USTAR format, owner zeroed, second-resolution timestamps),
// so an unchanged project always produces byte-identical output. It
// writes to any io.Writer and holds only one file open at a time,
// which keeps memory flat no matter how large the project is.
package archive

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/surge-sh/surge-go/pkg/errors"
)

// maxEntrySize is the largest file a USTAR size field (11 octal
// digits) can represent.
const maxEntrySize = 1<<33 - 1

// Build streams a tar.gz archive of the given files to w. Paths are
// slash-relative to root and become the archive entry names verbatim;
// callers pass the output of project.Collect, which is already
// filtered, validated and sorted. Any error aborts the stream, leaving
// w with a truncated archive.
func Build(w io.Writer, root string, paths []string) error {
	// The gzip header carries no timestamp, which keeps rebuilds of
	// an unchanged tree byte-identical.
	gz, err := gzip.NewWriterLevel(w, gzip.DefaultCompression)
	if err != nil {
		return errors.Wrap(errors.ErrCodeArchive, err, "init gzip stream")
	}
	tw := tar.NewWriter(gz)

	for _, rel := range paths {
		if err := addEntry(tw, root, rel); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeArchive, err, "finalize tar stream")
	}
	if err := gz.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeArchive, err, "finalize gzip stream")
	}
	return nil
}

func addEntry(tw *tar.Writer, root, rel string) error {
	if err := errors.ValidateEntryPath(rel); err != nil {
		return err
	}

	f, err := os.Open(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "open %s", rel)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "stat %s", rel)
	}
	if !info.Mode().IsRegular() {
		return errors.New(errors.ErrCodeArchive, "%s is not a regular file", rel)
	}
	if info.Size() > maxEntrySize {
		return errors.New(errors.ErrCodeEntryTooLarge,
			"%s is %d bytes, above the %d byte archive entry limit", rel, info.Size(), maxEntrySize)
	}

	// USTAR cannot encode sub-second timestamps or file ownership, so
	// both are normalized away rather than left to chance.
	hdr := &tar.Header{
		Format:  tar.FormatUSTAR,
		Name:    rel,
		Size:    info.Size(),
		Mode:    int64(info.Mode().Perm()),
		ModTime: info.ModTime().Truncate(time.Second),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return errors.Wrap(errors.ErrCodeArchive, err, "write header for %s", rel)
	}

	n, err := io.Copy(tw, f)
	if err != nil {
		return errors.Wrap(errors.ErrCodeArchive, err, "write %s", rel)
	}
	if n != info.Size() {
		return errors.New(errors.ErrCodeArchive, "%s shrank while being archived", rel)
	}
	return nil
}
