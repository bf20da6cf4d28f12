package qrsvc

import (
	"os"
	"path"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/Yazi0/SmartTuitionManager/core"
)

const qrDir = "qr_codes"

// fileService renders QR codes as PNG files under MediaRoot and returns
// their public MediaURL path.
type fileService struct {
	mediaRoot string
	mediaURL  string
}

var _ core.QRRenderer = (*fileService)(nil)

func NewFileService(conf *core.Config) *fileService {
	return &fileService{
		mediaRoot: filepath.Join(conf.WorkDir, conf.MediaRoot),
		mediaURL:  conf.MediaURL,
	}
}

func (svc fileService) Render(token, filename string) (string, error) {
	dir := filepath.Join(svc.mediaRoot, qrDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := qrcode.WriteFile(token, qrcode.Medium, 256, filepath.Join(dir, filename)); err != nil {
		return "", err
	}
	return path.Join(svc.mediaURL, qrDir, filename), nil
}
