package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Respuestas de cortesia: el gateway nunca propaga errores, siempre
// entrega un texto presentable para persistir como respuesta del bot.
const (
	AnswerFallback    = "Sorry, I couldn't generate a response."
	AnswerUnavailable = "Sorry, the AI model service is currently unavailable. Please try again later."
	AnswerHTTPError   = "Sorry, there was an error processing your request. Please try again."
	AnswerUnexpected  = "Sorry, an unexpected error occurred. Please try again."
)

// Estados posibles del probe de salud del servicio de inferencia.
const (
	StatusHealthy     = "healthy"
	StatusUnhealthy   = "unhealthy"
	StatusUnavailable = "unavailable"
)

const (
	askTimeout   = 30 * time.Second
	probeTimeout = 5 * time.Second
)

// Gateway define la frontera con el servicio de inferencia externo.
type Gateway interface {
	Answer(ctx context.Context, question string) string
	Health(ctx context.Context) string
}

// HTTPGateway implementa Gateway contra el endpoint POST /ask del model
// API. Es seguro para uso concurrente.
type HTTPGateway struct {
	baseURL string
	asker   *http.Client
	prober  *http.Client
	logger  *zap.Logger
}

func NewHTTPGateway(baseURL string, logger *zap.Logger) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		asker:   &http.Client{Timeout: askTimeout},
		prober:  &http.Client{Timeout: probeTimeout},
		logger:  logger,
	}
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

// Answer consulta el servicio de inferencia y devuelve su respuesta.
// Cada camino de falla degrada a un texto fijo en lugar de error, para
// que el llamador siempre tenga algo que persistir como mensaje del bot.
func (g *HTTPGateway) Answer(ctx context.Context, question string) string {
	bodyBytes, err := json.Marshal(askRequest{Question: question})
	if err != nil {
		g.logger.Error("marshal ask request", zap.Error(err))
		return AnswerUnexpected
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/ask", bytes.NewReader(bodyBytes))
	if err != nil {
		g.logger.Error("create ask request", zap.Error(err))
		return AnswerUnexpected
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.asker.Do(req)
	if err != nil {
		g.logger.Warn("model api unreachable", zap.Error(err))
		return AnswerUnavailable
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		g.logger.Error("read ask response", zap.Error(err))
		return AnswerUnexpected
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.logger.Warn("model api error status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return AnswerHTTPError
	}

	var ar askResponse
	if err := json.Unmarshal(respBody, &ar); err != nil {
		g.logger.Error("unmarshal ask response", zap.Error(err))
		return AnswerUnexpected
	}
	if ar.Answer == "" {
		return AnswerFallback
	}
	return ar.Answer
}

// Health es un probe liviano de vida contra el servicio de inferencia.
func (g *HTTPGateway) Health(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/health", nil)
	if err != nil {
		return StatusUnavailable
	}

	resp, err := g.prober.Do(req)
	if err != nil {
		return StatusUnavailable
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusOK {
		return StatusHealthy
	}
	return StatusUnhealthy
}
