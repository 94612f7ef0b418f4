// Package api exposes the attrition evaluation gateway: field metadata,
// health and the prediction proxy that enriches model output with derived
// display values.
package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"attrition-risk-eval/backend/internal/ai"
	"attrition-risk-eval/backend/internal/predict"
)

// Config defines server dependencies.
type Config struct {
	UpstreamURL    string
	UpstreamTO     time.Duration
	AllowedOrigins []string
	AIConfig       ai.Config
	DisableAI      bool
}

// Server wires HTTP handlers with the model service client and the explainer.
type Server struct {
	client         *predict.Client
	explainer      ai.Explainer
	allowedOrigins []string
}

// NewServer constructs the gateway server.
func NewServer(cfg Config) (*Server, error) {
	client, err := predict.NewClient(predict.Config{
		BaseURL: cfg.UpstreamURL,
		Timeout: cfg.UpstreamTO,
	})
	if err != nil {
		return nil, fmt.Errorf("predict client: %w", err)
	}

	explainer := ai.Explainer(ai.NewTemplateExplainer())
	if cfg.DisableAI {
		logrus.Info("AI explainer disabled via configuration")
	} else {
		if aiClient, err := ai.NewClient(cfg.AIConfig); err == nil {
			explainer = ai.WithFallback(aiClient, ai.NewTemplateExplainer())
			logrus.WithField("model", cfg.AIConfig.Model).Info("AI explainer enabled")
		} else if errors.Is(err, ai.ErrDisabled) {
			logrus.Info("AI explainer disabled - no OpenAI credentials configured")
		} else {
			return nil, fmt.Errorf("ai client: %w", err)
		}
	}

	return &Server{
		client:         client,
		explainer:      explainer,
		allowedOrigins: cfg.AllowedOrigins,
	}, nil
}

// Router configures gin routes.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/features", s.handleFeatures)
		api.POST("/predict", s.handlePredict)
	}

	return r, nil
}
