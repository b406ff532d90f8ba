package http

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// boundaryEntropy is the number of random bytes in a multipart boundary.
const boundaryEntropy = 16

// FormField is one part of a multipart body. A part with a Reader is a file
// part named Filename; otherwise Value is written as a scalar field.
type FormField struct {
	Name     string
	Value    string
	Filename string
	Reader   io.Reader
}

// EncodeMultipart serializes fields into a multipart/form-data body with a
// random hex boundary, preserving slice order: the submission endpoint
// requires the `_json` metadata field before the `file` field.
//
// File readers are drained in full. Field content is written as-is with no
// boundary collision detection or escaping; in practice a fresh 16-byte
// random boundary does not collide.
func EncodeMultipart(fields []FormField) ([]byte, string, error) {
	boundary, err := randomBoundary()
	if err != nil {
		return nil, "", err
	}

	var body bytes.Buffer

	for _, field := range fields {
		if field.Reader != nil {
			fmt.Fprintf(&body, "--%s\r\nContent-Disposition: form-data; filename=%q; name=%q\r\n\r\n",
				boundary, field.Filename, field.Name)

			_, err = io.Copy(&body, field.Reader)
			if err != nil {
				return nil, "", fmt.Errorf("reading file field %q: %w", field.Name, err)
			}

			body.WriteString("\r\n")

			continue
		}

		fmt.Fprintf(&body, "--%s\r\nContent-Disposition: form-data; name=%q\r\n\r\n%s\r\n",
			boundary, field.Name, field.Value)
	}

	fmt.Fprintf(&body, "--%s--\r\n", boundary)

	return body.Bytes(), "multipart/form-data; boundary=" + boundary, nil
}

// randomBoundary returns a hex-encoded boundary with 16 bytes of entropy.
func randomBoundary() (string, error) {
	raw := make([]byte, boundaryEntropy)

	_, err := rand.Read(raw)
	if err != nil {
		return "", fmt.Errorf("generating multipart boundary: %w", err)
	}

	return hex.EncodeToString(raw), nil
}
