package helper

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/sirupsen/logrus"

	"studiotrack_backend/internals/configs"
	helper "studiotrack_backend/internals/helpers"
)

// ThumbnailStore persists encoded thumbnails and hands back the URL the
// dashboard displays in miniature_link.
type ThumbnailStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (publicURL string, err error)
	Delete(ctx context.Context, publicURL string) error
}

/* =======================================================================
   Aliyun OSS
======================================================================= */

type OSSStore struct {
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	PublicBase string
}

func NewOSSStore(cfg *configs.Config) (*OSSStore, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKeyID, cfg.OSSAccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}
	return &OSSStore{
		Bucket:     bkt,
		Endpoint:   cfg.OSSEndpoint,
		BucketName: cfg.OSSBucket,
		PublicBase: strings.TrimRight(cfg.OSSPublicBase, "/"),
	}, nil
}

func (s *OSSStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(data), opts...); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

func (s *OSSStore) Delete(ctx context.Context, publicURL string) error {
	key, err := s.KeyFromPublicURL(publicURL)
	if err != nil {
		return err
	}
	return s.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (s *OSSStore) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.PublicBase != "" {
		return s.PublicBase + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}

func (s *OSSStore) KeyFromPublicURL(publicURL string) (string, error) {
	if s.PublicBase != "" && strings.HasPrefix(publicURL, s.PublicBase+"/") {
		return strings.TrimPrefix(publicURL, s.PublicBase+"/"), nil
	}
	u := publicURL
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	if i := strings.Index(u, "/"); i >= 0 && i+1 < len(u) {
		return u[i+1:], nil
	}
	return "", fmt.Errorf("cannot extract key from url: %s", publicURL)
}

/* =======================================================================
   Local directory (served by app.Static)
======================================================================= */

type LocalStore struct {
	Dir        string
	PublicPath string
}

func NewLocalStore(dir, publicPath string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{Dir: dir, PublicPath: "/" + strings.Trim(publicPath, "/")}, nil
}

func (s *LocalStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	path := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return s.PublicPath + "/" + key, nil
}

func (s *LocalStore) Delete(_ context.Context, publicURL string) error {
	key := strings.TrimPrefix(publicURL, s.PublicPath+"/")
	if key == publicURL || strings.Contains(key, "..") {
		return fmt.Errorf("not a local upload: %s", publicURL)
	}
	err := os.Remove(filepath.Join(s.Dir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// NewStoreFromConfig prefers OSS and falls back to the local directory.
func NewStoreFromConfig(cfg *configs.Config, log *logrus.Logger) (ThumbnailStore, error) {
	if cfg.OSSEnabled() {
		s, err := NewOSSStore(cfg)
		if err != nil {
			return nil, err
		}
		log.Infof("🗂️ Thumbnails stored on OSS bucket %s", cfg.OSSBucket)
		return s, nil
	}
	log.Infof("🗂️ Thumbnails stored in %s (served at %s)", cfg.UploadDir, cfg.UploadPublicPath)
	return NewLocalStore(cfg.UploadDir, cfg.UploadPublicPath)
}

/* =======================================================================
   Keys
======================================================================= */

// BuildObjectKey -> <dir>/<slug>_<20060102_150405>_<6 hex>.<ext>
func BuildObjectKey(dir, filename, ext string, now time.Time) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	key := fmt.Sprintf("%s_%s_%s.%s", helper.Slugify(base, 60), now.UTC().Format("20060102_150405"), randHex(3), ext)
	if dir = strings.Trim(dir, "/"); dir != "" {
		key = dir + "/" + key
	}
	return key
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
