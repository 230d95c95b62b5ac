package save

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Encode serialises the document as JSON and writes it to w zlib compressed
// at the maximum compression level. The whole document is compressed in one
// piece; any failure is fatal, there is no uncompressed fallback.
func (d *Document) Encode(w io.Writer) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("save: encoding document: %w", err)
	}

	zw, err := zlib.NewWriterLevel(w, zlib.BestCompression)
	if err != nil {
		return fmt.Errorf("save: compressing document: %w", err)
	}

	if _, err := zw.Write(b); err != nil {
		zw.Close()
		return fmt.Errorf("save: compressing document: %w", err)
	}

	return zw.Close()
}

// EncodeBytes is Encode into a byte slice.
func (d *Document) EncodeBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a compressed save document from r.
func Decode(r io.Reader) (*Document, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("save: decompressing document: %w", err)
	}
	defer zr.Close()

	b, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("save: decompressing document: %w", err)
	}

	d := new(Document)
	if err := json.Unmarshal(b, d); err != nil {
		return nil, fmt.Errorf("save: decoding document: %w", err)
	}
	return d, nil
}
