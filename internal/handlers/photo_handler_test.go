package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lucasgarofolo/API-Mural/internal/apperrors"
	"github.com/lucasgarofolo/API-Mural/internal/models"
	"github.com/lucasgarofolo/API-Mural/internal/services"
)

type fakePhotoRepo struct {
	photos    []models.Photo
	createErr error
	listErr   error
	clock     time.Time
}

func (r *fakePhotoRepo) Create(photo *models.Photo) error {
	if r.createErr != nil {
		return r.createErr
	}
	photo.ID = uuid.New()
	r.clock = r.clock.Add(time.Second)
	photo.CreatedAt = r.clock
	r.photos = append([]models.Photo{*photo}, r.photos...)
	return nil
}

func (r *fakePhotoRepo) GetByID(id uuid.UUID) (*models.Photo, error) {
	for _, p := range r.photos {
		if p.ID == id {
			photo := p
			return &photo, nil
		}
	}
	return nil, apperrors.New(apperrors.NotFound, "foto não encontrada")
}

func (r *fakePhotoRepo) ListAll() ([]models.Photo, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.Photo, len(r.photos))
	copy(out, r.photos)
	return out, nil
}

type fakeBlobStore struct {
	objects  map[string][]byte
	storeErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (b *fakeBlobStore) Store(_ context.Context, key string, payload io.Reader, _ int64, _ string) error {
	if b.storeErr != nil {
		return b.storeErr
	}
	data, err := io.ReadAll(payload)
	if err != nil {
		return apperrors.Wrap(apperrors.Storage, "erro ao enviar arquivo", err)
	}
	b.objects[key] = data
	return nil
}

func (b *fakeBlobStore) PublicURL(key string) string {
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	return "https://cdn.test/mural/" + key
}

type fakeAI struct {
	caption string
	err     error
}

func (a *fakeAI) Caption(context.Context, string) (string, error) {
	return a.caption, a.err
}

func (a *fakeAI) Generate(context.Context, string) ([]byte, string, error) {
	if a.err != nil {
		return nil, "", a.err
	}
	return []byte("generated"), "image/png", nil
}

func newTestApp(repo *fakePhotoRepo, blobs *fakeBlobStore, allowURL bool) (*fiber.App, *services.PhotoService) {
	svc := services.NewPhotoService(repo, blobs, zap.NewNop())
	h := NewPhotoHandler(svc, zap.NewNop())
	h.AllowURLIngestion = allowURL

	app := fiber.New()
	app.Post("/photo", h.UploadPhoto)
	app.Get("/photos", h.ListPhotos)
	app.Post("/photo/:id/reimagine", h.ReimaginePhoto)
	return app, svc
}

func multipartBody(t *testing.T, fields map[string]string, fileField, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = part.Write(payload)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func decodeJSON(t *testing.T, res *http.Response, out any) {
	t.Helper()
	defer res.Body.Close()
	require.NoError(t, json.NewDecoder(res.Body).Decode(out))
}

func TestUploadPhotoCreated(t *testing.T) {
	repo := &fakePhotoRepo{}
	blobs := newFakeBlobStore()
	app, _ := newTestApp(repo, blobs, false)

	body, contentType := multipartBody(t,
		map[string]string{"latitude": "-23.55", "longitude": "-46.63"},
		"image", "a.jpg", []byte("jpeg-bytes"))
	req, _ := http.NewRequest(http.MethodPost, "/photo", body)
	req.Header.Set("Content-Type", contentType)

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)

	var created models.EnrichedPhoto
	decodeJSON(t, res, &created)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, -23.55, created.Latitude)
	assert.Equal(t, -46.63, created.Longitude)
	assert.True(t, strings.HasSuffix(created.ImageURL, ".jpg"))
	assert.Len(t, repo.photos, 1)
	assert.Len(t, blobs.objects, 1)
}

func TestUploadPhotoMissingFieldsIsBadRequest(t *testing.T) {
	cases := []struct {
		name      string
		fields    map[string]string
		fileField string
	}{
		{"no image", map[string]string{"latitude": "-23.55", "longitude": "-46.63"}, ""},
		{"no latitude", map[string]string{"longitude": "-46.63"}, "image"},
		{"no longitude", map[string]string{"latitude": "-23.55"}, "image"},
		{"malformed latitude", map[string]string{"latitude": "abc", "longitude": "-46.63"}, "image"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakePhotoRepo{}
			blobs := newFakeBlobStore()
			app, _ := newTestApp(repo, blobs, false)

			body, contentType := multipartBody(t, tc.fields, tc.fileField, "a.jpg", []byte("x"))
			req, _ := http.NewRequest(http.MethodPost, "/photo", body)
			req.Header.Set("Content-Type", contentType)

			res, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

			var errBody map[string]any
			decodeJSON(t, res, &errBody)
			assert.Contains(t, errBody, "error")
			assert.Contains(t, errBody, "details")

			// neither store was touched
			assert.Empty(t, repo.photos)
			assert.Empty(t, blobs.objects)
		})
	}
}

func TestUploadPhotoMetadataFailureIsServerFault(t *testing.T) {
	cause := apperrors.Wrap(apperrors.Store, "erro ao salvar foto", assert.AnError)
	repo := &fakePhotoRepo{createErr: cause}
	blobs := newFakeBlobStore()
	app, _ := newTestApp(repo, blobs, false)

	body, contentType := multipartBody(t,
		map[string]string{"latitude": "-23.55", "longitude": "-46.63"},
		"image", "a.jpg", []byte("x"))
	req, _ := http.NewRequest(http.MethodPost, "/photo", body)
	req.Header.Set("Content-Type", contentType)

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)

	var errBody map[string]any
	decodeJSON(t, res, &errBody)
	assert.Equal(t, "erro ao salvar foto", errBody["error"])
	assert.Contains(t, errBody["details"], assert.AnError.Error())

	// the blob was written before the insert failed and stays behind
	assert.Len(t, blobs.objects, 1)
}

func TestListPhotosNewestFirst(t *testing.T) {
	repo := &fakePhotoRepo{}
	blobs := newFakeBlobStore()
	app, svc := newTestApp(repo, blobs, false)

	first, err := svc.Ingest(context.Background(), models.PhotoSubmission{
		Filename: "a.jpg", Size: 1, Payload: strings.NewReader("1"),
		Latitude: "1", Longitude: "1",
	})
	require.NoError(t, err)
	second, err := svc.Ingest(context.Background(), models.PhotoSubmission{
		Filename: "b.jpg", Size: 1, Payload: strings.NewReader("2"),
		Latitude: "2", Longitude: "2",
	})
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/photos", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	var listed []models.EnrichedPhoto
	decodeJSON(t, res, &listed)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)
}

func TestListPhotosStoreFailure(t *testing.T) {
	repo := &fakePhotoRepo{listErr: apperrors.New(apperrors.Store, "erro ao buscar fotos")}
	app, _ := newTestApp(repo, newFakeBlobStore(), false)

	req, _ := http.NewRequest(http.MethodGet, "/photos", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)

	var errBody map[string]any
	decodeJSON(t, res, &errBody)
	assert.Equal(t, "erro ao buscar fotos", errBody["error"])
}

func TestUploadThenListEndToEnd(t *testing.T) {
	repo := &fakePhotoRepo{}
	app, _ := newTestApp(repo, newFakeBlobStore(), false)

	body, contentType := multipartBody(t,
		map[string]string{"latitude": "-23.55", "longitude": "-46.63"},
		"image", "a.jpg", []byte("jpeg-bytes"))
	req, _ := http.NewRequest(http.MethodPost, "/photo", body)
	req.Header.Set("Content-Type", contentType)

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, res.StatusCode)
	var created models.EnrichedPhoto
	decodeJSON(t, res, &created)

	listReq, _ := http.NewRequest(http.MethodGet, "/photos", nil)
	listRes, err := app.Test(listReq, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, listRes.StatusCode)

	var listed []models.EnrichedPhoto
	decodeJSON(t, listRes, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, -23.55, listed[0].Latitude)
	assert.Equal(t, -46.63, listed[0].Longitude)
	assert.True(t, strings.HasSuffix(listed[0].ImageURL, ".jpg"))
}

func TestUploadPhotoURLModeDisabled(t *testing.T) {
	repo := &fakePhotoRepo{}
	app, _ := newTestApp(repo, newFakeBlobStore(), false)

	body, contentType := multipartBody(t, map[string]string{
		"image_url": "https://images.example.com/x.jpg",
		"latitude":  "-23.55", "longitude": "-46.63",
	}, "", "", nil)
	req, _ := http.NewRequest(http.MethodPost, "/photo", body)
	req.Header.Set("Content-Type", contentType)

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Empty(t, repo.photos)
}

func TestUploadPhotoURLModeEnabled(t *testing.T) {
	repo := &fakePhotoRepo{}
	app, _ := newTestApp(repo, newFakeBlobStore(), true)

	body, contentType := multipartBody(t, map[string]string{
		"image_url": "https://images.example.com/x.jpg",
		"latitude":  "-23.55", "longitude": "-46.63",
	}, "", "", nil)
	req, _ := http.NewRequest(http.MethodPost, "/photo", body)
	req.Header.Set("Content-Type", contentType)

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)

	var created models.EnrichedPhoto
	decodeJSON(t, res, &created)
	assert.Equal(t, "https://images.example.com/x.jpg", created.ImageURL)
}

func TestReimagineInvalidUUID(t *testing.T) {
	app, _ := newTestApp(&fakePhotoRepo{}, newFakeBlobStore(), false)

	req, _ := http.NewRequest(http.MethodPost, "/photo/not-a-uuid/reimagine", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}

func TestReimagineNotFound(t *testing.T) {
	app, svc := newTestApp(&fakePhotoRepo{}, newFakeBlobStore(), false)
	svc.AI = &fakeAI{caption: "x"}

	req, _ := http.NewRequest(http.MethodPost, "/photo/"+uuid.NewString()+"/reimagine", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestReimagineUpstreamFailureIsBadGateway(t *testing.T) {
	repo := &fakePhotoRepo{}
	app, svc := newTestApp(repo, newFakeBlobStore(), false)
	svc.AI = &fakeAI{err: apperrors.New(apperrors.Upstream, "serviço de IA indisponível")}

	created, err := svc.Ingest(context.Background(), models.PhotoSubmission{
		Filename: "a.jpg", Size: 1, Payload: strings.NewReader("1"),
		Latitude: "1", Longitude: "1",
	})
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodPost, "/photo/"+created.ID.String()+"/reimagine", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, res.StatusCode)

	var errBody map[string]any
	decodeJSON(t, res, &errBody)
	assert.Equal(t, "serviço de IA indisponível", errBody["error"])
}

func TestReimagineCreatesNewPhoto(t *testing.T) {
	repo := &fakePhotoRepo{}
	blobs := newFakeBlobStore()
	app, svc := newTestApp(repo, blobs, false)
	svc.AI = &fakeAI{caption: "uma praia"}

	created, err := svc.Ingest(context.Background(), models.PhotoSubmission{
		Filename: "a.jpg", Size: 1, Payload: strings.NewReader("1"),
		Latitude: "-23.55", Longitude: "-46.63",
	})
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodPost, "/photo/"+created.ID.String()+"/reimagine", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, res.StatusCode)

	var reimagined models.EnrichedPhoto
	decodeJSON(t, res, &reimagined)
	assert.NotEqual(t, created.ID, reimagined.ID)
	assert.Equal(t, created.Latitude, reimagined.Latitude)
	assert.True(t, strings.HasSuffix(reimagined.ImageURL, ".png"))
	assert.Len(t, repo.photos, 2)
}
