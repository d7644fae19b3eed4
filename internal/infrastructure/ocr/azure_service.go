// Package ocr adapta la API Azure Read v3.2 al puerto TextExtractor del
// pipeline de importación. El flujo de la API es asíncrono: se sube el
// archivo, la respuesta trae Operation-Location y el resultado se sondea
// hasta succeeded o failed.
package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sathler/bomlink/internal/application/importing"
	"golang.org/x/time/rate"
)

// Verificar en tiempo de compilación que AzureService implementa TextExtractor.
var _ importing.TextExtractor = (*AzureService)(nil)

const analyzePath = "/vision/v3.2/read/analyze"

// AzureService cliente del servicio Azure Read. Usa net/http de la librería
// estándar; no requiere el SDK oficial.
type AzureService struct {
	endpoint   string
	key        string
	maxPolls   int
	httpClient *http.Client
	// limiter espacia los sondeos del resultado para no agotar la cuota
	// del recurso compartido.
	limiter *rate.Limiter
}

// NewAzureService construye el adaptador. pollInterval separa los sondeos
// consecutivos; maxPolls acota la espera total.
func NewAzureService(endpoint, key string, pollInterval time.Duration, maxPolls int) *AzureService {
	if pollInterval <= 0 {
		pollInterval = 500 * time.Millisecond
	}
	if maxPolls <= 0 {
		maxPolls = 20
	}
	return &AzureService{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		maxPolls: maxPolls,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(pollInterval), 1),
	}
}

// ── Estructuras del protocolo Read v3.2 ───────────────────────────────────

type readResult struct {
	Status        string `json:"status"`
	AnalyzeResult struct {
		ReadResults []struct {
			Lines []struct {
				Text string `json:"text"`
			} `json:"lines"`
		} `json:"readResults"`
	} `json:"analyzeResult"`
}

// ExtractText sube la imagen o PDF y devuelve el texto extraído, una línea
// por renglón detectado, en orden de lectura.
func (s *AzureService) ExtractText(ctx context.Context, file io.Reader) (string, error) {
	if s.key == "" || s.endpoint == "" {
		return "", fmt.Errorf("ocr: servicio no configurado")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+analyzePath, file)
	if err != nil {
		return "", fmt.Errorf("ocr: crear request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", s.key)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr: subir archivo: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("ocr: el servicio respondió %d", resp.StatusCode)
	}
	operationURL := resp.Header.Get("Operation-Location")
	if operationURL == "" {
		return "", fmt.Errorf("ocr: respuesta sin Operation-Location")
	}

	result, err := s.pollResult(ctx, operationURL)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, page := range result.AnalyzeResult.ReadResults {
		for _, line := range page.Lines {
			b.WriteString(line.Text)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// pollResult sondea Operation-Location hasta que el análisis termina.
func (s *AzureService) pollResult(ctx context.Context, operationURL string) (*readResult, error) {
	for i := 0; i < s.maxPolls; i++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("ocr: %w", err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, operationURL, nil)
		if err != nil {
			return nil, fmt.Errorf("ocr: crear request de sondeo: %w", err)
		}
		req.Header.Set("Ocp-Apim-Subscription-Key", s.key)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("ocr: sondear resultado: %w", err)
		}
		var result readResult
		err = json.NewDecoder(resp.Body).Decode(&result)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("ocr: decodificar resultado: %w", err)
		}

		switch result.Status {
		case "succeeded":
			return &result, nil
		case "failed":
			return nil, fmt.Errorf("ocr: el análisis falló")
		}
		// notStarted / running: seguir sondeando
	}
	return nil, fmt.Errorf("ocr: el análisis no terminó tras %d sondeos", s.maxPolls)
}
