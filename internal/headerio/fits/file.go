package fits

import (
	"fmt"
	"os"
)

// File holds the parsed primary-HDU header of a FITS file plus enough
// bookkeeping (byte offset of the data unit, axis sizes, pixel encoding) to
// decode its pixel array on demand.
type File struct {
	path         string
	cards        []card
	headerBytes  int64 // size of the header unit, in whole 2880-byte blocks
	bitpix       int
	naxis1       int
	naxis2       int
	bzero        float64
	bscale       float64
}

// Open reads and parses the primary header of the FITS file at path. Pixel
// data is not read here; call ReadPixels for that.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fits: open %s: %w", path, err)
	}
	defer f.Close()

	var raw []byte
	block := make([]byte, blockSize)
	ended := false
	for !ended {
		n, err := f.Read(block)
		if n < blockSize || err != nil {
			return nil, fmt.Errorf("fits: %s: truncated header: %w", path, err)
		}
		raw = append(raw, block...)
		if hasEndCard(block) {
			ended = true
		}
		if len(raw) > 200*blockSize {
			return nil, fmt.Errorf("fits: %s: header exceeds sanity limit", path)
		}
	}

	cards := parseCards(raw)
	file := &File{
		path:        path,
		cards:       cards,
		headerBytes: int64(len(raw)),
		bzero:       0,
		bscale:      1,
	}
	if c, ok := lookup(cards, "BITPIX"); ok {
		if v, ok := c.intValue(); ok {
			file.bitpix = v
		}
	}
	if c, ok := lookup(cards, "NAXIS1"); ok {
		if v, ok := c.intValue(); ok {
			file.naxis1 = v
		}
	}
	if c, ok := lookup(cards, "NAXIS2"); ok {
		if v, ok := c.intValue(); ok {
			file.naxis2 = v
		}
	}
	if c, ok := lookup(cards, "BZERO"); ok {
		if v, ok := c.floatValue(); ok {
			file.bzero = v
		}
	}
	if c, ok := lookup(cards, "BSCALE"); ok {
		if v, ok := c.floatValue(); ok {
			file.bscale = v
		}
	}
	return file, nil
}

func hasEndCard(block []byte) bool {
	for i := 0; i+cardSize <= len(block); i += cardSize {
		keyword := string(block[i : i+8])
		if trimmed := trimTrailingSpace(keyword); trimmed == "END" {
			return true
		}
	}
	return false
}

func trimTrailingSpace(s string) string {
	end := len(s)
	for end > 0 && s[end-1] == ' ' {
		end--
	}
	return s[:end]
}
