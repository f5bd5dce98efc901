package admin

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/database/dbtest"
	"github.com/rpupo63/portfolio-site-backend/storage"
)

type fixture struct {
	db     database.Database
	stores Stores
	modals *MemoryModalStore
	bucket *storage.MemoryBucket
	tables *Tables
	forms  *Forms
	ctx    context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := database.New(dbtest.New(t))
	stores := StoresFrom(db)
	bucket := storage.NewMemoryBucket("images", "https://site.supabase.co")
	modals := NewMemoryModalStore(time.Hour)
	tables := NewTables(stores)
	return &fixture{
		db:     db,
		stores: stores,
		modals: modals,
		bucket: bucket,
		tables: tables,
		forms:  NewForms(stores, modals, storage.NewUploader(bucket), tables),
		ctx:    context.Background(),
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 200, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func ptr[T any](v T) *T { return &v }
