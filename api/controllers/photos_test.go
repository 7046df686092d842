package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/contactdesk/contactdesk-backend/pkg/errors"
)

type testPhotoService struct {
	addFn func(data []byte) (string, error)
	getFn func(id string) ([]byte, string, error)
	max   int64
}

func (s *testPhotoService) Add(data []byte) (string, error) {
	if s.addFn != nil {
		return s.addFn(data)
	}
	return "", nil
}

func (s *testPhotoService) Get(id string) ([]byte, string, error) {
	if s.getFn != nil {
		return s.getFn(id)
	}
	return nil, "", pkgerrors.New(pkgerrors.CodeNotFound, "unknown photo")
}

func (s *testPhotoService) MaxBytes() int64 {
	if s.max > 0 {
		return s.max
	}
	return 1 << 20
}

func multipartPhotoRequest(t *testing.T, field string, payload []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, "photo.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/photos", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestPhotosUploadSuccess(t *testing.T) {
	payload := []byte("fake image bytes")
	svc := &testPhotoService{
		addFn: func(data []byte) (string, error) {
			if !bytes.Equal(data, payload) {
				t.Fatalf("unexpected upload payload %q", data)
			}
			return "photo-ref", nil
		},
	}

	resp := httptest.NewRecorder()
	PhotosUpload(svc, testLogger())(resp, multipartPhotoRequest(t, "photo", payload))

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["photo_id"] != "photo-ref" {
		t.Fatalf("unexpected payload %v", envelope.Data)
	}
}

func TestPhotosUploadMissingField(t *testing.T) {
	resp := httptest.NewRecorder()
	PhotosUpload(&testPhotoService{}, testLogger())(resp, multipartPhotoRequest(t, "attachment", []byte("x")))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestPhotosUploadRejectionPassesThrough(t *testing.T) {
	svc := &testPhotoService{
		addFn: func(data []byte) (string, error) {
			return "", pkgerrors.New(pkgerrors.CodeUnsupported, "The file must be an image.")
		},
	}

	resp := httptest.NewRecorder()
	PhotosUpload(svc, testLogger())(resp, multipartPhotoRequest(t, "photo", []byte("not an image")))

	if resp.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415 got %d", resp.Code)
	}
}

func TestPhotosServeReturnsContentType(t *testing.T) {
	svc := &testPhotoService{
		getFn: func(id string) ([]byte, string, error) {
			if id != "photo-ref" {
				t.Fatalf("unexpected id %q", id)
			}
			return []byte{0x89, 0x50}, "image/png", nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/photos/photo-ref", nil)
	req = addRouteParam(req, "photoId", "photo-ref")
	resp := httptest.NewRecorder()
	PhotosServe(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("unexpected content type %q", got)
	}
}

func TestPhotosServeUnknownReference(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/photos/missing", nil)
	req = addRouteParam(req, "photoId", "missing")
	resp := httptest.NewRecorder()
	PhotosServe(&testPhotoService{}, testLogger())(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
