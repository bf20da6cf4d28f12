package qrsvc

import (
	"path"

	"github.com/Yazi0/SmartTuitionManager/core"
)

// dummyService skips rendering and only fabricates the URL. Used in tests.
type dummyService struct{}

var _ core.QRRenderer = (*dummyService)(nil)

func NewDummyService() core.QRRenderer {
	return &dummyService{}
}

func (dummyService) Render(token, filename string) (string, error) {
	return path.Join("/media", qrDir, filename), nil
}
