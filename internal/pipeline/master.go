package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"darkmaster/internal/frame"
	"darkmaster/internal/groupkey"
)

// masterPathFor returns the library path a group's master would live at,
// whether or not it exists yet.
func (p *Pipeline) masterPathFor(key frame.GroupKey) string {
	return filepath.Join(p.params.Paths.LibraryDir, groupkey.Filename(key))
}

// existingMaster reads key's master from the library, if one is present.
// A missing file is not an error: it simply means no master exists yet,
// and UpdatePolicy treats that the same as rule 2 (build).
func (p *Pipeline) existingMaster(key frame.GroupKey) (*frame.Master, error) {
	path := p.masterPathFor(key)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat existing master %s: %w", path, err)
	}

	hdr, err := p.headerReader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read existing master header %s: %w", path, err)
	}

	createdAt, _ := hdr.AcquiredAt()
	nFramesUsed, _ := hdr.NFramesUsed()
	signature, _ := hdr.StackSignature()

	return &frame.Master{
		Path:           path,
		CreatedAt:      createdAt,
		NFramesUsed:    nFramesUsed,
		StackSignature: signature,
	}, nil
}
