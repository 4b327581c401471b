package store

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"remotefs-go/internal/encryption"
	"remotefs-go/internal/remotefs"
)

// EncryptedStore wraps another Store and encrypts file contents before
// they reach it. Directory records pass through unchanged. Encrypted
// files are stored as base64 octet-stream records regardless of their
// original format, since the ciphertext is opaque binary.
type EncryptedStore struct {
	inner     remotefs.Store
	encryptor encryption.Encryptor
}

// NewEncryptedStore wraps inner with at-rest encryption. The encryptor
// must already have its keys set up.
func NewEncryptedStore(inner remotefs.Store, encryptor encryption.Encryptor) (*EncryptedStore, error) {
	if !encryptor.IsConfigured() {
		return nil, fmt.Errorf("encryption keys not set up (run keys init first)")
	}
	return &EncryptedStore{inner: inner, encryptor: encryptor}, nil
}

// Save encrypts file contents and delegates to the inner store.
func (s *EncryptedStore) Save(ctx context.Context, rec remotefs.Record) error {
	file, ok := rec.(*remotefs.FileRecord)
	if !ok {
		return s.inner.Save(ctx, rec)
	}

	data, err := file.Bytes()
	if err != nil {
		return err
	}

	var ciphertext bytes.Buffer
	if err := s.encryptor.Encrypt(bytes.NewReader(data), &ciphertext); err != nil {
		return fmt.Errorf("encrypting %q: %w", file.Path, err)
	}

	encrypted := &remotefs.FileRecord{
		Name:     file.Name,
		Path:     file.Path,
		Format:   remotefs.FormatBase64,
		Mimetype: remotefs.MimeOctetStream,
		Content:  base64.StdEncoding.EncodeToString(ciphertext.Bytes()),
	}
	return s.inner.Save(ctx, encrypted)
}

var _ remotefs.Store = (*EncryptedStore)(nil)
