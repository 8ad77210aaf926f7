//go:build !dlib

package faces

import "errors"

func NewDlibDetector(modelsDir string, cnn bool) (Detector, error) {
	return nil, errors.New("dlib detector not available, rebuild with -tags dlib")
}
