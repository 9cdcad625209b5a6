package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ay0711/AI/internal/api/shared"
	"github.com/ay0711/AI/internal/events"
	"github.com/ay0711/AI/internal/generation"
	"github.com/ay0711/AI/internal/platform/logger"
)

// GenerationHandler serves the generation and model listing endpoints.
type GenerationHandler struct {
	// generator is nil when the upstream client could not be initialized.
	generator generation.Generator
	catalog   *generation.ModelCatalog
	logger    *slog.Logger

	// exposeInternalErrors includes unclassified error details in responses.
	exposeInternalErrors bool
}

// HandlerOption customizes a GenerationHandler.
type HandlerOption func(*GenerationHandler)

// WithInternalErrors makes responses to unclassified errors carry the
// (redacted) error text. Intended for development only.
func WithInternalErrors(expose bool) HandlerOption {
	return func(h *GenerationHandler) {
		h.exposeInternalErrors = expose
	}
}

// NewGenerationHandler creates a handler. A nil generator puts the handler in
// degraded mode: generation requests answer 500 "AI service not available".
func NewGenerationHandler(
	generator generation.Generator,
	catalog *generation.ModelCatalog,
	logger *slog.Logger,
	opts ...HandlerOption,
) *GenerationHandler {
	if catalog == nil {
		catalog = generation.DefaultCatalog()
	}
	if logger == nil {
		logger = slog.Default()
	}
	h := &GenerationHandler{
		generator: generator,
		catalog:   catalog,
		logger:    logger.With("component", "generation_handler"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Ready reports whether generation requests can be served.
func (h *GenerationHandler) Ready() bool {
	return h.generator != nil
}

// Generate handles POST /api/ai/generate.
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)

	result, err := h.generator.Generate(r.Context(), req.Contents, req.Model)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	log.InfoContext(r.Context(), "content generated",
		"model", result.Model,
		"attempt", result.Attempt,
		"text_length", len(result.Text))

	shared.RespondWithJSON(w, r, http.StatusOK, newGenerateResponse(result))
}

// Stream handles POST /api/ai/generate/stream. Request errors are answered
// with plain JSON; once the request is accepted the response is an event
// stream of "retry" events followed by one "result" or "error" event.
func (h *GenerationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)
	stream := newEventStream(w)

	progress := generation.WithProgress(func(event *events.RetryEvent) {
		if err := stream.Send(eventRetry, event); err != nil {
			log.DebugContext(r.Context(), "failed to send retry event", "error", err)
		}
	})

	result, err := h.generator.Generate(r.Context(), req.Contents, req.Model, progress)
	if err != nil {
		status := MapErrorToStatusCode(err)
		body := shared.NewErrorResponse(r, status,
			GetErrorTitle(err), GetSafeErrorMessage(err, h.exposeInternalErrors),
			errorResponseOptions(err)...)
		log.WarnContext(r.Context(), "streamed generation failed",
			"status_code", status,
			"error", body.Message)
		if sendErr := stream.Send(eventError, body); sendErr != nil {
			log.DebugContext(r.Context(), "failed to send error event", "error", sendErr)
		}
		return
	}

	log.InfoContext(r.Context(), "content generated",
		"model", result.Model,
		"attempt", result.Attempt,
		"streamed", true)

	if err := stream.Send(eventResult, newGenerateResponse(result)); err != nil {
		log.DebugContext(r.Context(), "failed to send result event", "error", err)
	}
}

// Models handles GET /api/ai/models.
func (h *GenerationHandler) Models(w http.ResponseWriter, r *http.Request) {
	names := h.catalog.Models()
	models := make([]ModelInfo, 0, len(names))
	for _, name := range names {
		models = append(models, ModelInfo{Name: name, Default: name == h.catalog.Default()})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ModelsResponse{
		Success:      true,
		DefaultModel: h.catalog.Default(),
		Models:       models,
	})
}

// decodeRequest checks availability, decodes and validates the body.
// It writes the error response and returns false on failure.
func (h *GenerationHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (GenerateRequest, bool) {
	var req GenerateRequest

	if h.generator == nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			TitleServiceUnavailable, msgServiceUnavailable, generation.ErrMissingAPIKey)
		return req, false
	}

	if err := shared.DecodeJSON(r, &req); err != nil {
		h.respondWithError(w, r, err)
		return req, false
	}

	if err := shared.ValidateRequest(&req); err != nil {
		message := msgContentsRequired
		if req.Contents != "" {
			message = "Model must be at most 128 characters"
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, TitleInvalidRequest, message, err)
		return req, false
	}

	return req, true
}

func (h *GenerationHandler) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	var opts []shared.ResponseOption
	opts = append(opts, errorResponseOptions(err)...)
	if errors.Is(err, generation.ErrAuth) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r,
		MapErrorToStatusCode(err),
		GetErrorTitle(err),
		GetSafeErrorMessage(err, h.exposeInternalErrors),
		err,
		opts...)
}
