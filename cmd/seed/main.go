// Command seed populates a running API instance with sample geolocated
// photos: it downloads a few example images and submits them through the
// public HTTP surface, then reports the resulting photo count.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

const defaultBaseURL = "https://api-mural.onrender.com"

type seedPhoto struct {
	URL       string
	Latitude  float64
	Longitude float64
}

var seedPhotos = []seedPhoto{
	{"https://images.unsplash.com/photo-1543059080-f9b1272213d5", -23.5505, -46.6333},
	{"https://images.unsplash.com/photo-1483729558449-99ef09a8c325", -22.9068, -43.1729},
	{"https://images.unsplash.com/photo-1575470522418-b88b692b8084", -19.9167, -43.9345},
}

func main() {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := &http.Client{Timeout: 2 * time.Minute}

	log.Printf("Iniciando seed via API: %s", baseURL)
	if err := checkAPI(client, baseURL); err != nil {
		log.Fatalf("API indisponível: %v", err)
	}

	for i, photo := range seedPhotos {
		log.Printf("Processando imagem %d de %d", i+1, len(seedPhotos))

		image, err := downloadImage(client, photo.URL)
		if err != nil {
			log.Printf("Erro ao baixar imagem %d: %v", i+1, err)
			continue
		}

		id, err := uploadPhoto(client, baseURL, photo, image, fmt.Sprintf("photo-%d.jpg", i+1))
		if err != nil {
			log.Printf("Falha ao adicionar imagem %d: %v", i+1, err)
			continue
		}
		log.Printf("Imagem %d adicionada com sucesso! ID: %s", i+1, id)
	}

	count, err := countPhotos(client, baseURL)
	if err != nil {
		log.Fatalf("Erro ao listar fotos: %v", err)
	}
	log.Printf("Total de fotos no sistema: %d", count)
	log.Println("Seed concluído!")
}

func checkAPI(client *http.Client, baseURL string) error {
	res, err := client.Get(baseURL + "/")
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", res.StatusCode)
	}
	return nil
}

func downloadImage(client *http.Client, url string) ([]byte, error) {
	res, err := client.Get(url + "?w=1200&auto=format&fit=crop")
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download status %d", res.StatusCode)
	}
	return io.ReadAll(res.Body)
}

func uploadPhoto(client *http.Client, baseURL string, photo seedPhoto, image []byte, filename string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(image); err != nil {
		return "", err
	}
	if err := writer.WriteField("latitude", fmt.Sprintf("%v", photo.Latitude)); err != nil {
		return "", err
	}
	if err := writer.WriteField("longitude", fmt.Sprintf("%v", photo.Longitude)); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/photo", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("upload status %d: %s", res.StatusCode, raw)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func countPhotos(client *http.Client, baseURL string) (int, error) {
	res, err := client.Get(baseURL + "/photos")
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("status %d", res.StatusCode)
	}
	var photos []json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&photos); err != nil {
		return 0, err
	}
	return len(photos), nil
}
