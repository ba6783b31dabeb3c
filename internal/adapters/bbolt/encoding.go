// Per-file tag blobs.
//
// Each file's tags are stored as one gob-encoded []storedTag under the file
// path. Kind options are stored inline so a loaded tag needs no registry.
package bbolt

import (
	"bytes"
	"encoding/gob"

	"github.com/corey/ctags/internal/ports"
)

// storedTag is the persisted form of ports.Tag. File is implied by the key.
type storedTag struct {
	Name     string
	Kind     int
	Line     int
	Language string
	Letter   byte
	KindName string
	KindDesc string
}

func toStored(tags []ports.Tag) []storedTag {
	out := make([]storedTag, len(tags))
	for i, t := range tags {
		out[i] = storedTag{
			Name:     t.Name,
			Kind:     t.Kind,
			Line:     t.Line,
			Language: t.Language,
			Letter:   t.KindInfo.Letter,
			KindName: t.KindInfo.Name,
			KindDesc: t.KindInfo.Description,
		}
	}
	return out
}

func fromStored(file string, st []storedTag) []ports.Tag {
	out := make([]ports.Tag, len(st))
	for i, s := range st {
		out[i] = ports.Tag{
			Name:     s.Name,
			Kind:     s.Kind,
			File:     file,
			Line:     s.Line,
			Language: s.Language,
			KindInfo: ports.KindOption{
				Enabled:     true,
				Letter:      s.Letter,
				Name:        s.KindName,
				Description: s.KindDesc,
			},
		}
	}
	return out
}

// encodeGob encodes a value using gob.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob decodes gob-encoded data into target. Target must be a pointer.
func decodeGob(data []byte, target interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(target)
}
