package storage

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

// Folders inside the buckets.
const (
	FolderProjects = "projects"
	FolderTeam     = "team"
	FolderResumes  = "resumes"
)

// Progress milestones reported by Upload.
const (
	ProgressStarted  = 10
	ProgressUploaded = 80
	ProgressDone     = 100
	ProgressFailed   = 0
)

// Bucket stores objects that are publicly readable once written.
type Bucket interface {
	Name() string
	// Put writes body under key and fails with errs.ErrObjectExists when key is taken.
	Put(ctx context.Context, key string, body []byte, contentType string) error
	PublicURL(key string) string
}

// File is a binary staged for upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ProgressFunc receives upload progress as a percentage.
type ProgressFunc func(percent int)

// Uploader writes files under generated unique keys.
type Uploader struct {
	bucket Bucket
	now    func() time.Time
}

// NewUploader returns an Uploader over bucket. A nil bucket yields an Uploader whose
// uploads fail with a configuration error.
func NewUploader(bucket Bucket) *Uploader {
	return &Uploader{bucket: bucket, now: time.Now}
}

// Configured reports whether a bucket is attached.
func (u *Uploader) Configured() bool {
	return u != nil && u.bucket != nil
}

// Upload stores file under folder and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, file File, folder string, progress ProgressFunc) (string, error) {
	if progress == nil {
		progress = func(int) {}
	}
	if !u.Configured() {
		progress(ProgressFailed)
		return "", errs.NewConfigError("object storage")
	}

	progress(ProgressStarted)
	key, err := u.ObjectKey(folder, file.Name)
	if err != nil {
		progress(ProgressFailed)
		return "", err
	}

	if err := u.bucket.Put(ctx, key, file.Data, file.ContentType); err != nil {
		progress(ProgressFailed)
		log.Error().Err(err).Str("bucket", u.bucket.Name()).Str("key", key).Msg("upload failed")
		return "", err
	}
	progress(ProgressUploaded)

	url := u.bucket.PublicURL(key)
	progress(ProgressDone)
	return url, nil
}

// ObjectKey builds folder/<unix millis>-<random base36>.<ext>, keeping the file extension.
func (u *Uploader) ObjectKey(folder, filename string) (string, error) {
	suffix, err := randomBase36(7)
	if err != nil {
		return "", fmt.Errorf("generate object key: %w", err)
	}
	name := strconv.FormatInt(u.now().UnixMilli(), 10) + "-" + suffix
	if ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), ".")); ext != "" {
		name += "." + ext
	}
	return path.Join(strings.Trim(folder, "/"), name), nil
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(n int) (string, error) {
	var sb strings.Builder
	radix := big.NewInt(int64(len(base36)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, radix)
		if err != nil {
			return "", err
		}
		sb.WriteByte(base36[idx.Int64()])
	}
	return sb.String(), nil
}
