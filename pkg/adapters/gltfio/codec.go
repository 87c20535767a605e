// Package gltfio is thin glue over the external glTF codec. It only reads and
// writes whole documents; the wire format stays the codec's business.
package gltfio

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
)

// BinaryExt is the extension of self-contained binary output.
const BinaryExt = ".glb"

// TextExt is the extension of the text manifest inside a directory output.
const TextExt = ".gltf"

// Open reads a document from disk (.gltf or .glb, external buffers included).
func Open(path string) (*gltf.Document, error) {
	return gltf.Open(path)
}

// FromBytes parses a document from an in-memory blob. The codec sniffs the
// container, so both binary and JSON text payloads converge here.
func FromBytes(data []byte) (*gltf.Document, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SaveBinary writes a single self-contained <name>.glb file. The extension is
// appended when missing and the parent directory is created if absent.
func SaveBinary(doc *gltf.Document, path string) error {
	if !strings.EqualFold(filepath.Ext(path), BinaryExt) {
		path += BinaryExt
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return gltf.SaveBinary(doc, path)
}

// SaveText writes a directory <path>/ holding the <name>.gltf manifest plus
// one .bin file per in-memory buffer. Directory creation is idempotent.
// Data-URI buffers stay embedded in the manifest.
//
// Extracted buffers keep their data but get their URI rewritten to the .bin
// file name on the live document, so a later save references the same files.
func SaveText(doc *gltf.Document, path string) error {
	path = strings.TrimSuffix(path, TextExt)
	name := filepath.Base(path)

	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for i, buf := range doc.Buffers {
		if len(buf.Data) == 0 || strings.HasPrefix(buf.URI, "data:") {
			continue
		}
		binName := name + ".bin"
		if i > 0 {
			binName = fmt.Sprintf("%s_%d.bin", name, i)
		}
		if err := os.WriteFile(filepath.Join(path, binName), buf.Data, 0o644); err != nil {
			return fmt.Errorf("write buffer %d: %w", i, err)
		}
		buf.URI = binName
	}

	f, err := os.Create(filepath.Join(path, name+TextExt))
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}

	enc := gltf.NewEncoder(f)
	enc.AsBinary = false
	if err := enc.Encode(doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
