package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"attrition-risk-eval/backend/internal/ai"
	"attrition-risk-eval/backend/internal/form"
	"attrition-risk-eval/backend/internal/predict"
	"attrition-risk-eval/backend/internal/scoring"
	"attrition-risk-eval/backend/internal/util"
)

func (s *Server) handleHealth(c *gin.Context) {
	upstream := UpstreamHealth{}
	if status, err := s.client.Health(c.Request.Context()); err != nil {
		upstream.Error = err.Error()
	} else {
		upstream.Reachable = true
		upstream.ModelLoaded = status.ModelLoaded
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Upstream: upstream})
}

func (s *Server) handleFeatures(c *gin.Context) {
	fields := form.Fields()
	features := make(map[string]FeatureDTO, len(fields))
	order := make([]string, 0, len(fields))
	for _, f := range fields {
		features[f.Key] = FeatureFromDefinition(f)
		order = append(order, f.Key)
	}
	c.JSON(http.StatusOK, FeaturesResponse{Features: features, Order: order})
}

func (s *Server) handlePredict(c *gin.Context) {
	requestID := uuid.NewString()
	log := logrus.WithField("request_id", requestID)

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		s.renderError(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if len(body) == 0 {
		s.renderError(c, http.StatusBadRequest, fmt.Errorf("no data provided in request"))
		return
	}

	var missing []string
	values := make(map[string]string, len(form.Fields()))
	for _, f := range form.Fields() {
		raw, ok := body[f.Key]
		if !ok {
			missing = append(missing, f.Key)
			continue
		}
		values[f.Key] = stringify(raw)
	}
	if len(missing) > 0 {
		s.renderError(c, http.StatusBadRequest,
			fmt.Errorf("missing required fields: %s", strings.Join(missing, ", ")))
		return
	}

	timer := util.StartTimer()
	payload := form.BuildPayload(values)
	result, err := s.client.Predict(c.Request.Context(), payload)
	if err != nil {
		s.renderAttemptError(c, log, err)
		return
	}

	interp := scoring.Interpret(
		result.Probability.Stay,
		result.Probability.Leave,
		result.Confidence,
		result.Importances,
	)
	dto := FromResult(result, interp)

	if s.explainer != nil && s.explainer.Enabled() {
		advice, adviceErr := s.explainer.Explain(c.Request.Context(), ai.ExplanationInput{
			Fields:          values,
			PredictionLabel: result.PredictionLabel,
			Interpretation:  interp,
		})
		if adviceErr != nil {
			log.WithError(adviceErr).Warn("explanation unavailable")
		} else {
			dto.Explanation = advice.Narrative
			dto.Suggestions = advice.Suggestions
		}
	}

	dto.ProcessingTimeMs = timer.ElapsedMs()
	log.WithFields(logrus.Fields{
		"risk":          dto.Risk.Label,
		"leave_percent": dto.LeavePercent,
		"elapsed_ms":    dto.ProcessingTimeMs,
	}).Info("prediction served")
	c.JSON(http.StatusOK, dto)
}

// renderAttemptError maps the client taxonomy onto gateway responses: server
// failures keep the upstream status, connection and timeout failures become
// 502, anything else is a 500.
func (s *Server) renderAttemptError(c *gin.Context, log *logrus.Entry, err error) {
	attempt, ok := err.(*predict.AttemptError)
	if !ok {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}

	log.WithFields(logrus.Fields{
		"kind":     attempt.Kind,
		"status":   attempt.Status,
		"endpoint": attempt.Endpoint,
	}).Warn("upstream prediction failed")

	switch attempt.Kind {
	case predict.KindServer:
		status := attempt.Status
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		s.renderError(c, status, attempt)
	case predict.KindConnection, predict.KindTimeout:
		s.renderError(c, http.StatusBadGateway, attempt)
	default:
		s.renderError(c, http.StatusInternalServerError, attempt)
	}
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// stringify renders a decoded JSON value back to the raw string form the
// payload builder expects. Numbers keep a minimal representation so float64
// round-tripping does not grow trailing digits.
func stringify(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", value), "0"), ".")
	case bool:
		if value {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprint(value)
	}
}
