package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	saved map[string][]byte
}

func (m *memoryStore) Save(_ context.Context, key string, data []byte, _ string) (string, error) {
	if m.saved == nil {
		m.saved = map[string][]byte{}
	}
	m.saved[key] = data
	return "/uploads/" + key, nil
}

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n%%EOF")
	pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
)

func TestUploadService_AcceptsAllowedFiles(t *testing.T) {
	store := &memoryStore{}
	svc := NewUploadService(store, 5*1024*1024)

	res, err := svc.Upload(context.Background(), UploadInput{Filename: "Asha CV.PDF", Folder: "resumes", Data: pdfBytes})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.URL, "/uploads/resumes/"))
	assert.True(t, strings.HasSuffix(res.URL, ".pdf"))
	assert.Equal(t, "application/pdf", res.MimeType)
	assert.Equal(t, "Asha CV.PDF", res.Name)
	assert.Equal(t, int64(len(pdfBytes)), res.Size)
	assert.Len(t, store.saved, 1)

	res, err = svc.Upload(context.Background(), UploadInput{Filename: "me.png", Data: pngBytes})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.URL, "/uploads/attachments/"))
}

func TestUploadService_Rejections(t *testing.T) {
	svc := NewUploadService(&memoryStore{}, 64)
	ctx := context.Background()

	cases := map[string]UploadInput{
		"empty":          {Filename: "a.pdf"},
		"too large":      {Filename: "a.pdf", Data: append(append([]byte{}, pdfBytes...), make([]byte, 64)...)},
		"bad extension":  {Filename: "a.exe", Data: pdfBytes},
		"spoofed type":   {Filename: "a.png", Data: pdfBytes},
		"unknown folder": {Filename: "a.pdf", Folder: "../etc", Data: pdfBytes},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Upload(ctx, in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
