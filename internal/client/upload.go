package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/kanka-client/internal/http"
)

// uploadFile is one file part of a multipart form.
type uploadFile struct {
	field    string
	filename string
	data     []byte
}

// readUploadFile loads a local file fully so the request body can be
// replayed on a rate limit retry.
func readUploadFile(field, path string) (*uploadFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &uploadFile{
		field:    field,
		filename: filepath.Base(path),
		data:     data,
	}, nil
}

// fileStem returns the file name without directory and extension.
func fileStem(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// encodeMultipart writes the form fields in key order followed by the file.
func encodeMultipart(fields map[string]string, file *uploadFile) ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, key := range sortedKeys(fields) {
		err := writer.WriteField(key, fields[key])
		if err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", key, err)
		}
	}

	part, err := writer.CreateFormFile(file.field, file.filename)
	if err != nil {
		return nil, "", fmt.Errorf("creating form file: %w", err)
	}

	_, err = part.Write(file.data)
	if err != nil {
		return nil, "", fmt.Errorf("writing file to form: %w", err)
	}

	err = writer.Close()
	if err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

// uploadMultipartFile handles common multipart file upload logic.
func uploadMultipartFile(
	ctx context.Context,
	httpClient *http.Client,
	path string,
	fields map[string]string,
	file *uploadFile,
	resourceType string,
) ([]byte, error) {
	body, contentType, err := encodeMultipart(fields, file)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.PostRaw(ctx, path, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", resourceType, err)
	}

	return resp.Body, nil
}
