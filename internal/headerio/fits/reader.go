package fits

import "darkmaster/internal/headerio"

// Reader implements headerio.Reader against real FITS files on disk.
type Reader struct{}

var _ headerio.Reader = Reader{}

// Read opens path and returns its parsed primary header.
func (Reader) Read(path string) (headerio.Header, error) {
	return Open(path)
}

// PixelReader opens FITS files on disk purely to decode their pixel data,
// for callers (the Validator) that never need the header accessors.
type PixelReader struct{}

// ReadPixels opens path and decodes its primary HDU's pixel array.
func (PixelReader) ReadPixels(path string) ([]float64, int, int, error) {
	f, err := Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	return f.ReadPixels()
}
