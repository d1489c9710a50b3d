package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"coinvest-service/src/pkg/log"

	"github.com/spf13/viper"
)

// CloudinaryUploader posts files to the cloudinary unsigned-upload endpoint
// and returns the secure URL.
type CloudinaryUploader struct {
	client       *http.Client
	uploadURL    string
	uploadPreset string
	log          log.Log
}

func NewCloudinaryUploader(v *viper.Viper, logger log.Log) *CloudinaryUploader {
	return &CloudinaryUploader{
		client: &http.Client{Timeout: 30 * time.Second},
		uploadURL: fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/auto/upload",
			v.GetString("storage.cloudinary.cloud_name")),
		uploadPreset: v.GetString("storage.cloudinary.upload_preset"),
		log:          logger,
	}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open upload source: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(localPath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.WriteField("upload_preset", u.uploadPreset); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		u.log.Error("gateway/storage", err.Error(), "Upload", localPath)
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		u.log.Error("gateway/storage", fmt.Sprintf("upload rejected: %s", payload), "Upload", resp.Status)
		return "", fmt.Errorf("upload rejected with status %d", resp.StatusCode)
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload response missing secure_url")
	}

	return result.SecureURL, nil
}
